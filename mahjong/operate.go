package mahjong

type EventType int

const (
	EventNone          EventType = iota - 1
	EventStartGame               // 对局开始
	EventStartKyoku              // 一局开始
	EventTsumo                   // 摸牌
	EventDahai                   // 出牌
	EventChi                     // 吃
	EventPon                     // 碰
	EventDaiminkan               // 大明杠
	EventKakan                   // 加杠
	EventAnkan                   // 暗杠
	EventDora                    // 翻宝牌指示牌
	EventReach                   // 立直宣言
	EventReachAccepted           // 立直成立
	EventHora                    // 和了
	EventRyukyoku                // 流局
	EventEndKyoku                // 一局结束
	EventEndGame                 // 对局结束
)

var EventNames = map[EventType]string{
	EventStartGame:     "start_game",
	EventStartKyoku:    "start_kyoku",
	EventTsumo:         "tsumo",
	EventDahai:         "dahai",
	EventChi:           "chi",
	EventPon:           "pon",
	EventDaiminkan:     "daiminkan",
	EventKakan:         "kakan",
	EventAnkan:         "ankan",
	EventDora:          "dora",
	EventReach:         "reach",
	EventReachAccepted: "reach_accepted",
	EventHora:          "hora",
	EventRyukyoku:      "ryukyoku",
	EventEndKyoku:      "end_kyoku",
	EventEndGame:       "end_game",
}

var EventIDs = map[string]EventType{
	"start_game":     EventStartGame,
	"start_kyoku":    EventStartKyoku,
	"tsumo":          EventTsumo,
	"dahai":          EventDahai,
	"chi":            EventChi,
	"pon":            EventPon,
	"daiminkan":      EventDaiminkan,
	"kakan":          EventKakan,
	"ankan":          EventAnkan,
	"dora":           EventDora,
	"reach":          EventReach,
	"reach_accepted": EventReachAccepted,
	"hora":           EventHora,
	"ryukyoku":       EventRyukyoku,
	"end_kyoku":      EventEndKyoku,
	"end_game":       EventEndGame,
}

func (e EventType) String() string {
	return GetEventName(e)
}

// IsCall reports whether the event is a meld formed by the actor.
func (e EventType) IsCall() bool {
	switch e {
	case EventChi, EventPon, EventDaiminkan, EventKakan, EventAnkan:
		return true
	}
	return false
}

// IsKan reports whether the event is any kind of kan.
func (e EventType) IsKan() bool {
	return e == EventDaiminkan || e == EventKakan || e == EventAnkan
}

func GetEventName(e EventType) string {
	if name, ok := EventNames[e]; ok {
		return name
	}
	return ""
}

func GetEventID(name string) EventType {
	if id, ok := EventIDs[name]; ok {
		return id
	}
	return EventNone
}
