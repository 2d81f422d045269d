package convlog

import (
	"strconv"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
)

// CallKind 副露类型
type CallKind int

const (
	CallChi       CallKind = iota // 吃
	CallPon                       // 碰
	CallDaiminkan                 // 大明杠
	CallKakan                     // 加杠
	CallAnkan                     // 暗杠
	CallReach                     // 立直
)

var callKindNames = map[CallKind]string{
	CallChi:       "chi",
	CallPon:       "pon",
	CallDaiminkan: "daiminkan",
	CallKakan:     "kakan",
	CallAnkan:     "ankan",
	CallReach:     "reach",
}

func (k CallKind) String() string {
	if name, ok := callKindNames[k]; ok {
		return name
	}
	return "call(" + strconv.Itoa(int(k)) + ")"
}

const tokenTsumogiri = "60"

// Call is a decoded call string. Target is the seat the tile came from, the
// actor itself for concealed kan and reach. Pai is TileNull for concealed
// kan and for a reach declared with the tile just drawn.
type Call struct {
	Kind      CallKind
	Actor     int32
	Target    int32
	Pai       mahjong.Tile
	Consumed  []mahjong.Tile
	Tsumogiri bool
}

type markerPos struct {
	offset int
	rel    int32
}

type grammar struct {
	kind    CallKind
	marker  byte
	length  int
	offsets []markerPos
}

// 摸牌列中的副露
var takeGrammars = []grammar{
	{CallChi, 'c', 7, []markerPos{{0, mahjong.RelLeft}}},
	{CallPon, 'p', 7, []markerPos{{0, mahjong.RelLeft}, {2, mahjong.RelAcross}, {4, mahjong.RelRight}}},
	{CallDaiminkan, 'm', 9, []markerPos{{0, mahjong.RelLeft}, {2, mahjong.RelAcross}, {6, mahjong.RelRight}}},
}

// 出牌列中的副露
var discardGrammars = []grammar{
	{CallKakan, 'k', 9, []markerPos{{0, mahjong.RelLeft}, {2, mahjong.RelAcross}, {4, mahjong.RelRight}}},
	{CallAnkan, 'a', 9, []markerPos{{6, mahjong.RelSelf}}},
	{CallReach, 'r', 3, []markerPos{{0, mahjong.RelSelf}}},
}

// ParseTakeCall decodes a call found in a draw array.
func ParseTakeCall(seat int32, token string) (*Call, error) {
	return parseCall(seat, token, takeGrammars)
}

// ParseDiscardCall decodes a call found in a discard array.
func ParseDiscardCall(seat int32, token string) (*Call, error) {
	return parseCall(seat, token, discardGrammars)
}

func parseCall(seat int32, token string, grammars []grammar) (*Call, error) {
	for _, g := range grammars {
		if len(token) != g.length {
			continue
		}
		for _, pos := range g.offsets {
			if token[pos.offset] == g.marker {
				return g.decode(seat, token, pos)
			}
		}
	}
	return nil, &TokenError{Token: token, Offset: -1}
}

func (g *grammar) decode(seat int32, token string, pos markerPos) (*Call, error) {
	call := &Call{
		Kind:   g.kind,
		Actor:  seat,
		Target: mahjong.RelativeSeat(seat, pos.rel),
		Pai:    mahjong.TileNull,
	}

	if g.kind == CallReach {
		sub := token[pos.offset+1 : pos.offset+3]
		if sub == tokenTsumogiri {
			call.Tsumogiri = true
			return call, nil
		}
		t, err := tokenTile(token, pos.offset+1)
		if err != nil {
			return nil, err
		}
		call.Pai = t
		return call, nil
	}

	for i := 0; i < len(token); {
		if i == pos.offset {
			t, err := tokenTile(token, i+1)
			if err != nil {
				return nil, err
			}
			call.Pai = t
			i += 3
			continue
		}
		t, err := tokenTile(token, i)
		if err != nil {
			return nil, err
		}
		call.Consumed = append(call.Consumed, t)
		i += 2
	}

	if g.kind == CallAnkan {
		call.Consumed = append(call.Consumed, call.Pai)
		call.Pai = mahjong.TileNull
	}
	return call, nil
}

func tokenTile(token string, offset int) (mahjong.Tile, error) {
	if offset+2 > len(token) {
		return mahjong.TileNull, &TokenError{Token: token, Offset: offset, Err: mahjong.ErrInvalidTile}
	}
	n, err := strconv.Atoi(token[offset : offset+2])
	if err != nil {
		return mahjong.TileNull, &TokenError{Token: token, Offset: offset, Err: err}
	}
	t, err := mahjong.TileFromTenhou(n)
	if err != nil {
		return mahjong.TileNull, &TokenError{Token: token, Offset: offset, Err: err}
	}
	return t, nil
}

// Event returns the meld event of a chi, pon or kan.
func (c *Call) Event() mahjong.Event {
	ev := mahjong.Event{
		Actor:    c.Actor,
		Target:   c.Target,
		Pai:      c.Pai,
		Consumed: c.Consumed,
	}
	switch c.Kind {
	case CallChi:
		ev.Type = mahjong.EventChi
	case CallPon:
		ev.Type = mahjong.EventPon
	case CallDaiminkan:
		ev.Type = mahjong.EventDaiminkan
	case CallKakan:
		ev.Type = mahjong.EventKakan
	case CallAnkan:
		ev.Type = mahjong.EventAnkan
	default:
		ev.Type = mahjong.EventNone
	}
	return ev
}
