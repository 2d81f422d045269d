package mahjong

import (
	"encoding/json"
	"fmt"
)

// Event is one entry of the canonical log. Type selects which of the other
// fields are meaningful; MarshalJSON writes only those.
type Event struct {
	Type EventType

	Actor     int32
	Target    int32
	Pai       Tile
	Consumed  []Tile
	Tsumogiri bool

	// start_game
	Names      []string
	KyokuFirst int
	AkaFlag    bool

	// start_kyoku
	Bakaze     Tile
	DoraMarker Tile // also used by dora
	Kyoku      int
	Honba      int
	Kyotaku    int
	Oya        int32
	Scores     []int
	Tehais     [][]Tile

	// hora, ryukyoku
	Deltas     []int
	UraMarkers []Tile
}

func NewStartGame(names []string, length RoundLength, aka bool) Event {
	return Event{Type: EventStartGame, Names: names, KyokuFirst: length.KyokuFirst(), AkaFlag: aka}
}

func NewTsumo(actor int32, pai Tile) Event {
	return Event{Type: EventTsumo, Actor: actor, Pai: pai}
}

func NewDahai(actor int32, pai Tile, tsumogiri bool) Event {
	return Event{Type: EventDahai, Actor: actor, Pai: pai, Tsumogiri: tsumogiri}
}

func NewDora(marker Tile) Event {
	return Event{Type: EventDora, DoraMarker: marker}
}

func NewReach(actor int32) Event {
	return Event{Type: EventReach, Actor: actor}
}

func NewReachAccepted(actor int32) Event {
	return Event{Type: EventReachAccepted, Actor: actor}
}

func NewEndKyoku() Event {
	return Event{Type: EventEndKyoku}
}

func NewEndGame() Event {
	return Event{Type: EventEndGame}
}

type seatEvent struct {
	Type  string `json:"type"`
	Actor int32  `json:"actor"`
}

type bareEvent struct {
	Type string `json:"type"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	name := GetEventName(e.Type)
	switch e.Type {
	case EventStartGame:
		return json.Marshal(struct {
			Type       string   `json:"type"`
			Names      []string `json:"names"`
			KyokuFirst int      `json:"kyoku_first"`
			AkaFlag    bool     `json:"aka_flag"`
		}{name, e.Names, e.KyokuFirst, e.AkaFlag})
	case EventStartKyoku:
		return json.Marshal(struct {
			Type       string   `json:"type"`
			Bakaze     Tile     `json:"bakaze"`
			DoraMarker Tile     `json:"dora_marker"`
			Kyoku      int      `json:"kyoku"`
			Honba      int      `json:"honba"`
			Kyotaku    int      `json:"kyotaku"`
			Oya        int32    `json:"oya"`
			Scores     []int    `json:"scores"`
			Tehais     [][]Tile `json:"tehais"`
		}{name, e.Bakaze, e.DoraMarker, e.Kyoku, e.Honba, e.Kyotaku, e.Oya, e.Scores, e.Tehais})
	case EventTsumo:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Actor int32  `json:"actor"`
			Pai   Tile   `json:"pai"`
		}{name, e.Actor, e.Pai})
	case EventDahai:
		return json.Marshal(struct {
			Type      string `json:"type"`
			Actor     int32  `json:"actor"`
			Pai       Tile   `json:"pai"`
			Tsumogiri bool   `json:"tsumogiri"`
		}{name, e.Actor, e.Pai, e.Tsumogiri})
	case EventChi, EventPon, EventDaiminkan:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Actor    int32  `json:"actor"`
			Target   int32  `json:"target"`
			Pai      Tile   `json:"pai"`
			Consumed []Tile `json:"consumed"`
		}{name, e.Actor, e.Target, e.Pai, e.Consumed})
	case EventKakan:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Actor    int32  `json:"actor"`
			Pai      Tile   `json:"pai"`
			Consumed []Tile `json:"consumed"`
		}{name, e.Actor, e.Pai, e.Consumed})
	case EventAnkan:
		return json.Marshal(struct {
			Type     string `json:"type"`
			Actor    int32  `json:"actor"`
			Consumed []Tile `json:"consumed"`
		}{name, e.Actor, e.Consumed})
	case EventDora:
		return json.Marshal(struct {
			Type       string `json:"type"`
			DoraMarker Tile   `json:"dora_marker"`
		}{name, e.DoraMarker})
	case EventReach, EventReachAccepted:
		return json.Marshal(seatEvent{name, e.Actor})
	case EventHora:
		return json.Marshal(struct {
			Type       string `json:"type"`
			Actor      int32  `json:"actor"`
			Target     int32  `json:"target"`
			Deltas     []int  `json:"deltas,omitempty"`
			UraMarkers []Tile `json:"ura_markers,omitempty"`
		}{name, e.Actor, e.Target, e.Deltas, e.UraMarkers})
	case EventRyukyoku:
		return json.Marshal(struct {
			Type   string `json:"type"`
			Deltas []int  `json:"deltas,omitempty"`
		}{name, e.Deltas})
	case EventEndKyoku, EventEndGame:
		return json.Marshal(bareEvent{name})
	}
	return nil, fmt.Errorf("unknown event type %d", int(e.Type))
}

func (e Event) String() string {
	data, err := e.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("{invalid event %d}", int(e.Type))
	}
	return string(data)
}
