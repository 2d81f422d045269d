package convlog

import (
	"fmt"
	"slices"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/kevin-chtw/tw_mjlog/tenhou"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

// queue is a read cursor over one fixed action array.
type queue struct {
	items []tenhou.ActionItem
	pos   int
}

func (q *queue) empty() bool {
	return q.pos >= len(q.items)
}

func (q *queue) peek() (tenhou.ActionItem, bool) {
	if q.empty() {
		return tenhou.ActionItem{}, false
	}
	return q.items[q.pos], true
}

func (q *queue) pop() (tenhou.ActionItem, bool) {
	item, ok := q.peek()
	if ok {
		q.pos++
	}
	return item, ok
}

// Play rebuilds the event order of one round from the per-seat arrays.
type Play struct {
	round     *tenhou.Round
	takes     [mahjong.NP4]queue
	discards  [mahjong.NP4]queue
	doraIdx   int
	doraOwed  bool
	reachSeat int32
	lastTsumo mahjong.Tile
	curSeat   int32
	events    []mahjong.Event

	// 最近一张仍可被鸣的舍牌, 摸牌或被鸣后清空
	lastDiscard   mahjong.Tile
	lastDiscarder int32
}

func NewPlay(round *tenhou.Round) *Play {
	p := &Play{
		round:     round,
		reachSeat: mahjong.SeatNull,
		lastTsumo: mahjong.TileNull,
		curSeat:   round.Dealer(),
		events:    make([]mahjong.Event, 0, 128),

		lastDiscard:   mahjong.TileNull,
		lastDiscarder: mahjong.SeatNull,
	}
	for i := range mahjong.NP4 {
		p.takes[i] = queue{items: round.Tables[i].Takes}
		p.discards[i] = queue{items: round.Tables[i].Discards}
	}
	return p
}

// ConvertRound reconstructs the events of a single round, from start_kyoku to
// end_kyoku.
func ConvertRound(round *tenhou.Round) ([]mahjong.Event, error) {
	return NewPlay(round).Run()
}

func (p *Play) Run() ([]mahjong.Event, error) {
	if err := p.start(); err != nil {
		return nil, err
	}
	for {
		done, err := p.step()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	logger.Log.Debugf("kyoku %d honba %d: %d events", p.round.Kyoku, p.round.Honba, len(p.events))
	return p.events, nil
}

func (p *Play) start() error {
	r := p.round
	if len(r.Dora) == 0 {
		return p.fail(mahjong.SeatNull, fmt.Errorf("%w: no dora indicator", ErrExhausted))
	}
	p.doraIdx = 1

	tehais := make([][]mahjong.Tile, mahjong.NP4)
	for i := range mahjong.NP4 {
		tehais[i] = slices.Clone(r.Tables[i].Haipai)
		mahjong.SortTiles(tehais[i])
	}
	p.addEvent(mahjong.Event{
		Type:       mahjong.EventStartKyoku,
		Bakaze:     r.Bakaze(),
		DoraMarker: r.Dora[0],
		Kyoku:      r.Kyoku%mahjong.NP4 + 1,
		Honba:      r.Honba,
		Kyotaku:    r.Kyotaku,
		Oya:        r.Dealer(),
		Scores:     slices.Clone(r.Scores),
		Tehais:     tehais,
	})
	return nil
}

// step runs one turn of the current seat. It reports true once end_kyoku has
// been emitted.
func (p *Play) step() (bool, error) {
	seat := p.curSeat

	item, ok := p.takes[seat].pop()
	if !ok {
		return false, p.fail(seat, fmt.Errorf("%w: no draw left", ErrExhausted))
	}
	switch item.Kind {
	case tenhou.ItemTile:
		p.lastTsumo = item.Tile
		p.lastDiscard = mahjong.TileNull
		p.addEvent(mahjong.NewTsumo(seat, item.Tile))
	case tenhou.ItemCall:
		call, err := ParseTakeCall(seat, item.Token)
		if err != nil {
			return false, p.fail(seat, err)
		}
		if call.Target != p.lastDiscarder || call.Pai != p.lastDiscard {
			return false, p.fail(seat, fmt.Errorf("%w: %s on %s from seat %d, last discard %s by seat %d",
				ErrInconsistentRound, call.Kind, call.Pai, call.Target, p.lastDiscard, p.lastDiscarder))
		}
		p.lastTsumo = mahjong.TileNull
		p.lastDiscard = mahjong.TileNull
		p.addEvent(call.Event())
		if call.Kind == CallDaiminkan {
			// 大明杠在出牌列留一个占位, 岭上牌在自己的摸牌列
			p.doraOwed = true
			if _, ok := p.discards[seat].pop(); !ok {
				return false, p.fail(seat, fmt.Errorf("%w: no slot after open kan", ErrExhausted))
			}
			return false, nil
		}
	default:
		return false, p.fail(seat, fmt.Errorf("%w: %s in draw slot", ErrInconsistentRound, item.Kind))
	}

	if p.reachSeat == seat {
		p.addEvent(mahjong.NewReachAccepted(seat))
		p.reachSeat = mahjong.SeatNull
	}

	if p.discards[seat].empty() {
		return true, p.finish(seat)
	}

	item, _ = p.discards[seat].pop()
	kind, err := p.discard(seat, item)
	if err != nil {
		return false, err
	}

	if p.allTakesEmpty() {
		return true, p.finish(mahjong.SeatNull)
	}

	switch kind {
	case CallAnkan:
		return false, p.revealDora(seat)
	case CallKakan:
		p.doraOwed = true
		return false, nil
	}

	next, err := p.nextSeat(seat)
	if err != nil {
		return false, err
	}
	p.curSeat = next
	return false, nil
}

// discard emits the events of one discard slot and any dora owed by an
// earlier open or added kan. It returns the call kind for kan slots and -1
// otherwise.
func (p *Play) discard(seat int32, item tenhou.ActionItem) (CallKind, error) {
	kind := CallKind(-1)
	switch item.Kind {
	case tenhou.ItemTile:
		p.dahai(seat, item.Tile, false)
	case tenhou.ItemTsumogiri:
		if err := p.tsumogiri(seat); err != nil {
			return kind, err
		}
	case tenhou.ItemCall:
		call, err := ParseDiscardCall(seat, item.Token)
		if err != nil {
			return kind, p.fail(seat, err)
		}
		switch call.Kind {
		case CallReach:
			p.addEvent(mahjong.NewReach(seat))
			if call.Tsumogiri {
				if err := p.tsumogiri(seat); err != nil {
					return kind, err
				}
			} else {
				p.dahai(seat, call.Pai, false)
			}
			p.reachSeat = seat
		default:
			kind = call.Kind
			p.addEvent(call.Event())
		}
	default:
		return kind, p.fail(seat, fmt.Errorf("%w: %s in discard slot", ErrInconsistentRound, item.Kind))
	}

	if p.doraOwed {
		if err := p.revealDora(seat); err != nil {
			return kind, err
		}
	}
	return kind, nil
}

func (p *Play) tsumogiri(seat int32) error {
	if p.lastTsumo == mahjong.TileNull {
		return p.fail(seat, fmt.Errorf("%w: tsumogiri without a drawn tile", ErrInconsistentRound))
	}
	p.dahai(seat, p.lastTsumo, true)
	return nil
}

func (p *Play) dahai(seat int32, pai mahjong.Tile, tsumogiri bool) {
	p.lastDiscard = pai
	p.lastDiscarder = seat
	p.addEvent(mahjong.NewDahai(seat, pai, tsumogiri))
}

func (p *Play) revealDora(seat int32) error {
	if p.doraIdx >= len(p.round.Dora) {
		return p.fail(seat, fmt.Errorf("%w: dora indicator %d of %d", ErrExhausted, p.doraIdx+1, len(p.round.Dora)))
	}
	p.addEvent(mahjong.NewDora(p.round.Dora[p.doraIdx]))
	p.doraIdx++
	p.doraOwed = false
	return nil
}

// nextSeat picks the seat whose next draw slot pons or kans the tile seat
// just discarded, falling back to the next seat in turn order. Chi is only
// taken by that next seat, so it never redirects the turn; a chi head that
// does not match the discard is rejected when it is popped.
func (p *Play) nextSeat(seat int32) (int32, error) {
	claimer := mahjong.SeatNull
	for step := int32(1); step < mahjong.NP4; step++ {
		other := mahjong.GetNextSeat(seat, step, mahjong.NP4)
		item, ok := p.takes[other].peek()
		if !ok || item.Kind != tenhou.ItemCall {
			continue
		}
		call, err := ParseTakeCall(other, item.Token)
		if err != nil {
			return mahjong.SeatNull, p.fail(other, err)
		}
		if call.Kind == CallChi || call.Target != seat || call.Pai != p.lastDiscard {
			continue
		}
		if claimer != mahjong.SeatNull {
			return mahjong.SeatNull, p.fail(other, fmt.Errorf("%w: seats %d and %d both claim %s",
				ErrInconsistentRound, claimer, other, call.Pai))
		}
		claimer = other
	}
	if claimer != mahjong.SeatNull {
		return claimer, nil
	}
	return mahjong.GetNextSeat(seat, 1, mahjong.NP4), nil
}

func (p *Play) allTakesEmpty() bool {
	for i := range p.takes {
		if !p.takes[i].empty() {
			return false
		}
	}
	return true
}

// finish emits the recorded result and end_kyoku. seat is the seat whose own
// turn ended the round, or SeatNull when it ended on a discard.
func (p *Play) finish(seat int32) error {
	res := &p.round.Result
	switch res.Kind {
	case tenhou.EndWin:
		if len(res.Wins) == 0 {
			return p.fail(seat, fmt.Errorf("%w: win recorded without winners", ErrInconsistentRound))
		}
		found := false
		for i := range res.Wins {
			w := &res.Wins[i]
			if seat != mahjong.SeatNull && w.Actor != seat {
				continue
			}
			p.addEvent(p.horaEvent(w))
			found = true
		}
		if !found {
			return p.fail(seat, fmt.Errorf("%w: round ended on a turn without a recorded win", ErrInconsistentRound))
		}
	default:
		p.addEvent(mahjong.Event{Type: mahjong.EventRyukyoku, Deltas: slices.Clone(res.Deltas)})
	}
	p.addEvent(mahjong.NewEndKyoku())
	return nil
}

func (p *Play) horaEvent(w *tenhou.Win) mahjong.Event {
	return mahjong.Event{
		Type:       mahjong.EventHora,
		Actor:      w.Actor,
		Target:     w.Target,
		Deltas:     slices.Clone(w.Deltas),
		UraMarkers: slices.Clone(p.round.Ura),
	}
}

func (p *Play) addEvent(ev mahjong.Event) {
	p.events = append(p.events, ev)
}

func (p *Play) fail(seat int32, err error) error {
	return &RoundError{
		Kyoku: p.round.Kyoku,
		Honba: p.round.Honba,
		Seat:  seat,
		Err:   err,
	}
}
