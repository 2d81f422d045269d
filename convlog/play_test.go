package convlog_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kevin-chtw/tw_mjlog/convlog"
	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/kevin-chtw/tw_mjlog/tenhou"
)

func mustTile(n int) mahjong.Tile {
	t, err := mahjong.TileFromTenhou(n)
	if err != nil {
		panic(err)
	}
	return t
}

func tiles(nums ...int) []mahjong.Tile {
	res := make([]mahjong.Tile, 0, len(nums))
	for _, n := range nums {
		res = append(res, mustTile(n))
	}
	return res
}

func actions(discard bool, vals ...any) []tenhou.ActionItem {
	res := make([]tenhou.ActionItem, 0, len(vals))
	for _, v := range vals {
		switch x := v.(type) {
		case string:
			res = append(res, tenhou.CallItem(x))
		case int:
			switch {
			case discard && x == 60:
				res = append(res, tenhou.TsumogiriItem())
			case discard && x == 0:
				res = append(res, tenhou.KanFillerItem())
			default:
				res = append(res, tenhou.TileItem(mustTile(x)))
			}
		}
	}
	return res
}

func takes(vals ...any) []tenhou.ActionItem {
	return actions(false, vals...)
}

func discards(vals ...any) []tenhou.ActionItem {
	return actions(true, vals...)
}

func newRound(kyoku int, dora []int, result tenhou.Result) *tenhou.Round {
	return &tenhou.Round{
		Kyoku:  kyoku,
		Scores: []int{25000, 25000, 25000, 25000},
		Dora:   tiles(dora...),
		Result: result,
	}
}

func drawResult() tenhou.Result {
	return tenhou.Result{Kind: tenhou.EndDraw, Reason: "流局"}
}

func winResult(wins ...tenhou.Win) tenhou.Result {
	return tenhou.Result{Kind: tenhou.EndWin, Reason: "和了", Wins: wins}
}

// lines renders every event after start_kyoku as JSON.
func lines(t *testing.T, events []mahjong.Event) []string {
	t.Helper()
	if len(events) == 0 || events[0].Type != mahjong.EventStartKyoku {
		t.Fatalf("round does not begin with start_kyoku: %v", events)
	}
	res := make([]string, 0, len(events)-1)
	for _, ev := range events[1:] {
		res = append(res, ev.String())
	}
	return res
}

func checkLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d\ngot:  %q\nwant: %q", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStartKyoku(t *testing.T) {
	r := newRound(5, []int{47}, winResult(tenhou.Win{Actor: 1, Target: 1}))
	r.Honba = 2
	r.Kyotaku = 1
	r.Tables[1].Haipai = tiles(16, 51, 15, 14, 47, 41, 11, 21, 31, 19, 29, 39, 45)
	r.Tables[1].Takes = takes(22)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	start := events[0]
	if start.Bakaze != mahjong.TileSouth || start.Kyoku != 2 || start.Oya != 1 {
		t.Errorf("bakaze/kyoku/oya = %s/%d/%d, want S/2/1", start.Bakaze, start.Kyoku, start.Oya)
	}
	if start.Honba != 2 || start.Kyotaku != 1 || start.DoraMarker != mahjong.TileChun {
		t.Errorf("honba/kyotaku/dora = %d/%d/%s", start.Honba, start.Kyotaku, start.DoraMarker)
	}
	want := "1m, 4m, 5m, 5mr, 6m, 9m, 1p, 9p, 1s, 9s, E, P, C"
	if got := mahjong.TilesName(start.Tehais[1]); got != want {
		t.Errorf("tehai = %s, want %s", got, want)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":1,"pai":"2p"}`,
		`{"type":"hora","actor":1,"target":1}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestRonAfterTsumogiri(t *testing.T) {
	r := newRound(0, []int{11}, winResult(tenhou.Win{Actor: 2, Target: 1, Deltas: []int{0, -1000, 1000, 0}}))
	r.Ura = tiles(22)
	r.Tables[0].Takes = takes(11)
	r.Tables[0].Discards = discards(60)
	r.Tables[1].Takes = takes(12)
	r.Tables[1].Discards = discards(21)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"1m","tsumogiri":true}`,
		`{"type":"tsumo","actor":1,"pai":"2m"}`,
		`{"type":"dahai","actor":1,"pai":"1p","tsumogiri":false}`,
		`{"type":"hora","actor":2,"target":1,"deltas":[0,-1000,1000,0],"ura_markers":["2p"]}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestDoubleRon(t *testing.T) {
	r := newRound(0, []int{11}, winResult(
		tenhou.Win{Actor: 1, Target: 0},
		tenhou.Win{Actor: 3, Target: 0},
	))
	r.Tables[0].Takes = takes(11)
	r.Tables[0].Discards = discards(15)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"5m","tsumogiri":false}`,
		`{"type":"hora","actor":1,"target":0}`,
		`{"type":"hora","actor":3,"target":0}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestOpenKanDoraAfterDiscard(t *testing.T) {
	r := newRound(0, []int{11, 41}, drawResult())
	r.Tables[0].Takes = takes(11)
	r.Tables[0].Discards = discards(13)
	r.Tables[2].Takes = takes("13m131313", 14)
	r.Tables[2].Discards = discards(0, 15)
	r.Tables[3].Takes = takes(16)
	r.Tables[3].Discards = discards(60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"3m","tsumogiri":false}`,
		`{"type":"daiminkan","actor":2,"target":0,"pai":"3m","consumed":["3m","3m","3m"]}`,
		`{"type":"tsumo","actor":2,"pai":"4m"}`,
		`{"type":"dahai","actor":2,"pai":"5m","tsumogiri":false}`,
		`{"type":"dora","dora_marker":"E"}`,
		`{"type":"tsumo","actor":3,"pai":"6m"}`,
		`{"type":"dahai","actor":3,"pai":"6m","tsumogiri":true}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestRinshanTsumoAfterOpenKan(t *testing.T) {
	r := newRound(0, []int{11, 41}, winResult(tenhou.Win{Actor: 1, Target: 1}))
	r.Tables[0].Takes = takes(11)
	r.Tables[0].Discards = discards(13)
	r.Tables[1].Takes = takes("m13131313", 14)
	r.Tables[1].Discards = discards(0)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"3m","tsumogiri":false}`,
		`{"type":"daiminkan","actor":1,"target":0,"pai":"3m","consumed":["3m","3m","3m"]}`,
		`{"type":"tsumo","actor":1,"pai":"4m"}`,
		`{"type":"hora","actor":1,"target":1}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestAnkanRevealsDoraAtOnce(t *testing.T) {
	r := newRound(0, []int{11, 42}, drawResult())
	r.Tables[0].Takes = takes(11, 21)
	r.Tables[0].Discards = discards("111111a11", 60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"ankan","actor":0,"consumed":["1m","1m","1m","1m"]}`,
		`{"type":"dora","dora_marker":"S"}`,
		`{"type":"tsumo","actor":0,"pai":"1p"}`,
		`{"type":"dahai","actor":0,"pai":"1p","tsumogiri":true}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestPonThenKakan(t *testing.T) {
	r := newRound(0, []int{11, 41}, drawResult())
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards(33, 60)
	r.Tables[1].Takes = takes("p333333", 33, 35)
	r.Tables[1].Discards = discards(44, "k33333333", 60)
	r.Tables[2].Takes = takes(45)
	r.Tables[2].Discards = discards(60)
	r.Tables[3].Takes = takes(46)
	r.Tables[3].Discards = discards(60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"3s","tsumogiri":false}`,
		`{"type":"pon","actor":1,"target":0,"pai":"3s","consumed":["3s","3s"]}`,
		`{"type":"dahai","actor":1,"pai":"N","tsumogiri":false}`,
		`{"type":"tsumo","actor":2,"pai":"P"}`,
		`{"type":"dahai","actor":2,"pai":"P","tsumogiri":true}`,
		`{"type":"tsumo","actor":3,"pai":"F"}`,
		`{"type":"dahai","actor":3,"pai":"F","tsumogiri":true}`,
		`{"type":"tsumo","actor":0,"pai":"2m"}`,
		`{"type":"dahai","actor":0,"pai":"2m","tsumogiri":true}`,
		`{"type":"tsumo","actor":1,"pai":"3s"}`,
		`{"type":"kakan","actor":1,"pai":"3s","consumed":["3s","3s","3s"]}`,
		`{"type":"tsumo","actor":1,"pai":"5s"}`,
		`{"type":"dahai","actor":1,"pai":"5s","tsumogiri":true}`,
		`{"type":"dora","dora_marker":"E"}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestReachAcceptedOnNextTurn(t *testing.T) {
	r := newRound(0, []int{11}, drawResult())
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards("r60", 60)
	r.Tables[1].Takes = takes(21)
	r.Tables[1].Discards = discards(22)
	r.Tables[2].Takes = takes(31)
	r.Tables[2].Discards = discards(32)
	r.Tables[3].Takes = takes(41)
	r.Tables[3].Discards = discards(42)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"reach","actor":0}`,
		`{"type":"dahai","actor":0,"pai":"1m","tsumogiri":true}`,
		`{"type":"tsumo","actor":1,"pai":"1p"}`,
		`{"type":"dahai","actor":1,"pai":"2p","tsumogiri":false}`,
		`{"type":"tsumo","actor":2,"pai":"1s"}`,
		`{"type":"dahai","actor":2,"pai":"2s","tsumogiri":false}`,
		`{"type":"tsumo","actor":3,"pai":"E"}`,
		`{"type":"dahai","actor":3,"pai":"S","tsumogiri":false}`,
		`{"type":"tsumo","actor":0,"pai":"2m"}`,
		`{"type":"reach_accepted","actor":0}`,
		`{"type":"dahai","actor":0,"pai":"2m","tsumogiri":true}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestReachAcceptedAfterCallElsewhere(t *testing.T) {
	r := newRound(0, []int{11}, drawResult())
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards("r60", 60)
	r.Tables[2].Takes = takes("11p1111")
	r.Tables[2].Discards = discards(45)
	r.Tables[3].Takes = takes(46)
	r.Tables[3].Discards = discards(60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"reach","actor":0}`,
		`{"type":"dahai","actor":0,"pai":"1m","tsumogiri":true}`,
		`{"type":"pon","actor":2,"target":0,"pai":"1m","consumed":["1m","1m"]}`,
		`{"type":"dahai","actor":2,"pai":"P","tsumogiri":false}`,
		`{"type":"tsumo","actor":3,"pai":"F"}`,
		`{"type":"dahai","actor":3,"pai":"F","tsumogiri":true}`,
		`{"type":"tsumo","actor":0,"pai":"2m"}`,
		`{"type":"reach_accepted","actor":0}`,
		`{"type":"dahai","actor":0,"pai":"2m","tsumogiri":true}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestReachThenRonSkipsAcceptance(t *testing.T) {
	r := newRound(0, []int{11}, winResult(tenhou.Win{Actor: 1, Target: 0, Deltas: []int{-2000, 2000, 0, 0}}))
	r.Tables[0].Takes = takes(11)
	r.Tables[0].Discards = discards("r15")

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"reach","actor":0}`,
		`{"type":"dahai","actor":0,"pai":"5m","tsumogiri":false}`,
		`{"type":"hora","actor":1,"target":0,"deltas":[-2000,2000,0,0]}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestAbortiveDrawOnOwnTurn(t *testing.T) {
	r := newRound(0, []int{11}, tenhou.Result{Kind: tenhou.EndDraw, Reason: "九種九牌"})
	r.Tables[0].Takes = takes(19)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"9m"}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestRobbedKanEndsBeforeDora(t *testing.T) {
	r := newRound(0, []int{11, 41}, winResult(tenhou.Win{Actor: 2, Target: 1}))
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards(33, 60)
	r.Tables[1].Takes = takes("p333333", 33)
	r.Tables[1].Discards = discards(44, "k33333333")
	r.Tables[2].Takes = takes(45)
	r.Tables[2].Discards = discards(60)
	r.Tables[3].Takes = takes(46)
	r.Tables[3].Discards = discards(60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"3s","tsumogiri":false}`,
		`{"type":"pon","actor":1,"target":0,"pai":"3s","consumed":["3s","3s"]}`,
		`{"type":"dahai","actor":1,"pai":"N","tsumogiri":false}`,
		`{"type":"tsumo","actor":2,"pai":"P"}`,
		`{"type":"dahai","actor":2,"pai":"P","tsumogiri":true}`,
		`{"type":"tsumo","actor":3,"pai":"F"}`,
		`{"type":"dahai","actor":3,"pai":"F","tsumogiri":true}`,
		`{"type":"tsumo","actor":0,"pai":"2m"}`,
		`{"type":"dahai","actor":0,"pai":"2m","tsumogiri":true}`,
		`{"type":"tsumo","actor":1,"pai":"3s"}`,
		`{"type":"kakan","actor":1,"pai":"3s","consumed":["3s","3s","3s"]}`,
		`{"type":"hora","actor":2,"target":1}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestDiscardAfterKakanCalled(t *testing.T) {
	r := newRound(0, []int{11, 41}, drawResult())
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards(33, 60)
	r.Tables[1].Takes = takes("p333333", 33, 35)
	r.Tables[1].Discards = discards(44, "k33333333", 36)
	r.Tables[2].Takes = takes(45, "p363636")
	r.Tables[2].Discards = discards(60, 47)
	r.Tables[3].Takes = takes(46)
	r.Tables[3].Discards = discards(60)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	got := lines(t, events)
	if len(got) < 11 {
		t.Fatalf("round stopped early: %q", got)
	}
	checkLines(t, got[11:], []string{
		`{"type":"kakan","actor":1,"pai":"3s","consumed":["3s","3s","3s"]}`,
		`{"type":"tsumo","actor":1,"pai":"5s"}`,
		`{"type":"dahai","actor":1,"pai":"6s","tsumogiri":false}`,
		`{"type":"dora","dora_marker":"E"}`,
		`{"type":"pon","actor":2,"target":1,"pai":"6s","consumed":["6s","6s"]}`,
		`{"type":"dahai","actor":2,"pai":"C","tsumogiri":false}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

// 每个杠恰好翻一张新宝牌指示牌
func kanRound(dora ...int) *tenhou.Round {
	r := newRound(0, dora, drawResult())
	r.Tables[0].Takes = takes(11, 21, 25)
	r.Tables[0].Discards = discards("111111a11", 22, 60)
	r.Tables[1].Takes = takes("m22222222", 31, 36)
	r.Tables[1].Discards = discards(0, 33, 60)
	r.Tables[2].Takes = takes("p333333", 33, 37)
	r.Tables[2].Discards = discards(34, "k33333333", 60)
	r.Tables[3].Takes = takes(41)
	r.Tables[3].Discards = discards(60)
	return r
}

func TestDoraCountMatchesKans(t *testing.T) {
	events, err := convlog.ConvertRound(kanRound(11, 12, 13, 14))
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	kans := 0
	var markers []string
	for _, ev := range events {
		switch {
		case ev.Type.IsKan():
			kans++
		case ev.Type == mahjong.EventDora:
			markers = append(markers, ev.DoraMarker.String())
		}
	}
	if kans != 3 || !reflect.DeepEqual(markers, []string{"2m", "3m", "4m"}) {
		t.Errorf("kans/dora = %d/%v, want 3/[2m 3m 4m]", kans, markers)
	}
}

func TestStaleChiHead(t *testing.T) {
	r := newRound(0, []int{11}, drawResult())
	r.Tables[0].Takes = takes(11, 12)
	r.Tables[0].Discards = discards(15, 16)
	r.Tables[1].Takes = takes("c161718")
	r.Tables[1].Discards = discards(19)
	r.Tables[2].Takes = takes("15p1515")
	r.Tables[2].Discards = discards(21)
	r.Tables[3].Takes = takes(31)
	r.Tables[3].Discards = discards(32)

	events, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	checkLines(t, lines(t, events), []string{
		`{"type":"tsumo","actor":0,"pai":"1m"}`,
		`{"type":"dahai","actor":0,"pai":"5m","tsumogiri":false}`,
		`{"type":"pon","actor":2,"target":0,"pai":"5m","consumed":["5m","5m"]}`,
		`{"type":"dahai","actor":2,"pai":"1p","tsumogiri":false}`,
		`{"type":"tsumo","actor":3,"pai":"1s"}`,
		`{"type":"dahai","actor":3,"pai":"2s","tsumogiri":false}`,
		`{"type":"tsumo","actor":0,"pai":"2m"}`,
		`{"type":"dahai","actor":0,"pai":"6m","tsumogiri":false}`,
		`{"type":"chi","actor":1,"target":0,"pai":"6m","consumed":["7m","8m"]}`,
		`{"type":"dahai","actor":1,"pai":"9m","tsumogiri":false}`,
		`{"type":"ryukyoku"}`,
		`{"type":"end_kyoku"}`,
	})
}

func TestRoundErrors(t *testing.T) {
	testCases := []struct {
		name  string
		round func() *tenhou.Round
		want  error
		seat  int32
	}{
		{
			name: "dora exhausted by ankan",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11, 21)
				r.Tables[0].Discards = discards("111111a11", 60)
				return r
			},
			want: convlog.ErrExhausted,
			seat: 0,
		},
		{
			name: "dora exhausted by open kan",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards(13)
				r.Tables[2].Takes = takes("13m131313", 14)
				r.Tables[2].Discards = discards(0, 15)
				r.Tables[3].Takes = takes(16)
				return r
			},
			want: convlog.ErrExhausted,
			seat: 2,
		},
		{
			name: "dora exhausted by added kan",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11, 12)
				r.Tables[0].Discards = discards(33, 60)
				r.Tables[1].Takes = takes("p333333", 33, 35)
				r.Tables[1].Discards = discards(44, "k33333333", 60)
				r.Tables[2].Takes = takes(45)
				r.Tables[2].Discards = discards(60)
				r.Tables[3].Takes = takes(46)
				r.Tables[3].Discards = discards(60)
				return r
			},
			want: convlog.ErrExhausted,
			seat: 1,
		},
		{
			name:  "one dora short of the kans",
			round: func() *tenhou.Round { return kanRound(11, 12, 13) },
			want:  convlog.ErrExhausted,
			seat:  2,
		},
		{
			name: "no dora indicator",
			round: func() *tenhou.Round {
				r := newRound(0, nil, drawResult())
				r.Tables[0].Takes = takes(11)
				return r
			},
			want: convlog.ErrExhausted,
			seat: mahjong.SeatNull,
		},
		{
			name: "draws exhausted",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards(12)
				r.Tables[1].Takes = takes(21)
				r.Tables[1].Discards = discards(22)
				r.Tables[3].Takes = takes(41)
				r.Tables[3].Discards = discards(42)
				return r
			},
			want: convlog.ErrExhausted,
			seat: 2,
		},
		{
			name: "malformed draw token",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes("p1111")
				return r
			},
			want: convlog.ErrMalformedToken,
			seat: 0,
		},
		{
			name: "malformed discard token",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards("k1111")
				return r
			},
			want: convlog.ErrMalformedToken,
			seat: 0,
		},
		{
			name: "draw-slot call in discard slot",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards("p111111")
				return r
			},
			want: convlog.ErrMalformedToken,
			seat: 0,
		},
		{
			name: "chi on a different tile",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards(15)
				r.Tables[1].Takes = takes("c161718")
				r.Tables[1].Discards = discards(19)
				return r
			},
			want: convlog.ErrInconsistentRound,
			seat: 1,
		},
		{
			name: "two seats claim one discard",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, drawResult())
				r.Tables[0].Takes = takes(11)
				r.Tables[0].Discards = discards(15)
				r.Tables[2].Takes = takes("15p1515")
				r.Tables[3].Takes = takes("1515p15")
				return r
			},
			want: convlog.ErrInconsistentRound,
			seat: 3,
		},
		{
			name: "win without winners",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, winResult())
				r.Tables[0].Takes = takes(11)
				return r
			},
			want: convlog.ErrInconsistentRound,
			seat: 0,
		},
		{
			name: "own-turn end for a seat that did not win",
			round: func() *tenhou.Round {
				r := newRound(0, []int{11}, winResult(tenhou.Win{Actor: 2, Target: 0}))
				r.Tables[0].Takes = takes(11)
				return r
			},
			want: convlog.ErrInconsistentRound,
			seat: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.round()
			r.Kyoku, r.Honba = 0, 3
			_, err := convlog.ConvertRound(r)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ConvertRound error = %v, want %v", err, tc.want)
			}
			var re *convlog.RoundError
			if !errors.As(err, &re) {
				t.Fatalf("error %v is not a RoundError", err)
			}
			if re.Honba != 3 || re.Seat != tc.seat {
				t.Errorf("RoundError honba/seat = %d/%d, want 3/%d", re.Honba, re.Seat, tc.seat)
			}
		})
	}
}

func TestConvertRoundDeterministic(t *testing.T) {
	build := func() *tenhou.Round {
		r := newRound(0, []int{11, 41}, drawResult())
		r.Tables[0].Takes = takes(11, 12)
		r.Tables[0].Discards = discards(33, 60)
		r.Tables[1].Takes = takes("p333333", 33, 35)
		r.Tables[1].Discards = discards(44, "k33333333", 60)
		r.Tables[2].Takes = takes(45)
		r.Tables[2].Discards = discards(60)
		r.Tables[3].Takes = takes(46)
		r.Tables[3].Discards = discards(60)
		return r
	}
	r := build()
	first, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	second, err := convlog.ConvertRound(r)
	if err != nil {
		t.Fatalf("ConvertRound: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("converting the same round twice gave different events")
	}
	if !reflect.DeepEqual(r, build()) {
		t.Fatal("ConvertRound modified its input")
	}

	for _, ev := range first {
		if ev.Type == mahjong.EventDahai && !ev.Pai.IsValid() {
			t.Errorf("dahai without a concrete tile: %s", ev)
		}
	}
}
