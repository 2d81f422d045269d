package tenhou

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidLog  = errors.New("invalid tenhou log")
	ErrUnsupported = errors.New("unsupported tenhou log")
)

const (
	tenhouTsumogiri = 60
	tenhouKanFiller = 0

	resultAgari = "和了"

	// [kyoku honba kyotaku], scores, dora, ura, 4 x (haipai takes discards), result
	roundFields = 4 + 3*mahjong.NP4 + 1
)

// Parse decodes a tenhou JSON log.
func Parse(data []byte) (*Log, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidLog)
	}
	root := gjson.ParseBytes(data)

	disp := root.Get("rule.disp").String()
	if strings.Contains(disp, "三") {
		return nil, fmt.Errorf("%w: three-player rule %q", ErrUnsupported, disp)
	}

	l := &Log{
		Names:  parseNames(root.Get("name")),
		Length: mahjong.RoundLengthEastSouth,
		Aka:    parseAka(root.Get("rule"), disp),
	}
	if strings.Contains(disp, "東") {
		l.Length = mahjong.RoundLengthEast
	}

	logs := root.Get("log")
	if !logs.IsArray() {
		return nil, fmt.Errorf("%w: missing log array", ErrInvalidLog)
	}
	for i, r := range logs.Array() {
		round, err := parseRound(r)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		l.Rounds = append(l.Rounds, *round)
	}
	return l, nil
}

func parseNames(v gjson.Result) []string {
	names := make([]string, mahjong.NP4)
	for i, n := range v.Array() {
		if i >= mahjong.NP4 {
			break
		}
		names[i] = n.String()
	}
	return names
}

func parseAka(rule gjson.Result, disp string) bool {
	for _, key := range []string{"aka", "aka51", "aka52", "aka53"} {
		if rule.Get(key).Int() > 0 {
			return true
		}
	}
	return strings.Contains(disp, "赤")
}

func parseRound(v gjson.Result) (*Round, error) {
	arr := v.Array()
	if len(arr) < roundFields {
		return nil, fmt.Errorf("%w: round has %d fields, want %d", ErrInvalidLog, len(arr), roundFields)
	}

	head, err := parseInts(arr[0])
	if err != nil || len(head) != 3 {
		return nil, fmt.Errorf("%w: bad round header %s", ErrInvalidLog, arr[0].Raw)
	}
	r := &Round{Kyoku: head[0], Honba: head[1], Kyotaku: head[2]}

	if r.Scores, err = parseInts(arr[1]); err != nil || len(r.Scores) != mahjong.NP4 {
		return nil, fmt.Errorf("%w: bad scores %s", ErrInvalidLog, arr[1].Raw)
	}
	if r.Dora, err = parseTiles(arr[2]); err != nil {
		return nil, fmt.Errorf("dora: %w", err)
	}
	if r.Ura, err = parseTiles(arr[3]); err != nil {
		return nil, fmt.Errorf("ura: %w", err)
	}

	for seat := range mahjong.NP4 {
		base := 4 + 3*seat
		t := &r.Tables[seat]
		if t.Haipai, err = parseTiles(arr[base]); err != nil {
			return nil, fmt.Errorf("seat %d haipai: %w", seat, err)
		}
		if t.Takes, err = parseItems(arr[base+1], false); err != nil {
			return nil, fmt.Errorf("seat %d takes: %w", seat, err)
		}
		if t.Discards, err = parseItems(arr[base+2], true); err != nil {
			return nil, fmt.Errorf("seat %d discards: %w", seat, err)
		}
	}

	res, err := parseResult(arr[roundFields-1])
	if err != nil {
		return nil, err
	}
	r.Result = *res
	return r, nil
}

func parseInts(v gjson.Result) ([]int, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidLog, v.Raw)
	}
	var res []int
	for _, n := range v.Array() {
		if n.Type != gjson.Number {
			return nil, fmt.Errorf("%w: expected number, got %s", ErrInvalidLog, n.Raw)
		}
		res = append(res, int(n.Int()))
	}
	return res, nil
}

func parseTiles(v gjson.Result) ([]mahjong.Tile, error) {
	nums, err := parseInts(v)
	if err != nil {
		return nil, err
	}
	tiles := make([]mahjong.Tile, 0, len(nums))
	for _, n := range nums {
		t, err := mahjong.TileFromTenhou(n)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func parseItems(v gjson.Result, discard bool) ([]ActionItem, error) {
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrInvalidLog, v.Raw)
	}
	var items []ActionItem
	for i, e := range v.Array() {
		switch e.Type {
		case gjson.String:
			items = append(items, CallItem(e.String()))
		case gjson.Number:
			n := int(e.Int())
			switch {
			case discard && n == tenhouTsumogiri:
				items = append(items, TsumogiriItem())
			case discard && n == tenhouKanFiller:
				items = append(items, KanFillerItem())
			default:
				t, err := mahjong.TileFromTenhou(n)
				if err != nil {
					return nil, fmt.Errorf("slot %d: %w", i, err)
				}
				items = append(items, TileItem(t))
			}
		default:
			return nil, fmt.Errorf("%w: slot %d holds %s", ErrInvalidLog, i, e.Raw)
		}
	}
	return items, nil
}

func parseResult(v gjson.Result) (*Result, error) {
	arr := v.Array()
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: empty result", ErrInvalidLog)
	}
	res := &Result{Reason: arr[0].String()}
	if res.Reason != resultAgari {
		res.Kind = EndDraw
		if len(arr) > 1 {
			deltas, err := parseInts(arr[1])
			if err != nil {
				return nil, err
			}
			res.Deltas = deltas
		}
		return res, nil
	}

	res.Kind = EndWin
	rest := arr[1:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("%w: unpaired win entry %s", ErrInvalidLog, v.Raw)
	}
	for i := 0; i < len(rest); i += 2 {
		deltas, err := parseInts(rest[i])
		if err != nil {
			return nil, err
		}
		info := rest[i+1].Array()
		if len(info) < 3 {
			return nil, fmt.Errorf("%w: bad win info %s", ErrInvalidLog, rest[i+1].Raw)
		}
		for _, seat := range info[:3] {
			if seat.Type != gjson.Number || seat.Int() < 0 || seat.Int() >= mahjong.NP4 {
				return nil, fmt.Errorf("%w: bad seat %s in win info %s", ErrInvalidLog, seat.Raw, rest[i+1].Raw)
			}
		}
		w := Win{
			Actor:  int32(info[0].Int()),
			Target: int32(info[1].Int()),
			Pao:    int32(info[2].Int()),
			Deltas: deltas,
		}
		for _, y := range info[3:] {
			w.Yaku = append(w.Yaku, y.String())
		}
		res.Wins = append(res.Wins, w)
	}
	return res, nil
}
