// Package tenhou decodes tenhou JSON match logs into per-seat action tables.
//
// Call strings are kept raw; interpreting them is left to the converter.
package tenhou

import (
	"github.com/kevin-chtw/tw_mjlog/mahjong"
)

type ItemKind int

const (
	ItemTile      ItemKind = iota // 普通摸牌/出牌
	ItemTsumogiri                 // 摸切, 牌值由上一张摸牌补全
	ItemKanFiller                 // 大明杠后出牌列的占位
	ItemCall                      // 副露/立直字符串
)

var itemKindNames = map[ItemKind]string{
	ItemTile:      "tile",
	ItemTsumogiri: "tsumogiri",
	ItemKanFiller: "kan filler",
	ItemCall:      "call",
}

func (k ItemKind) String() string {
	return itemKindNames[k]
}

// ActionItem is one slot of a draw or discard array.
type ActionItem struct {
	Kind  ItemKind
	Tile  mahjong.Tile
	Token string
}

func TileItem(t mahjong.Tile) ActionItem {
	return ActionItem{Kind: ItemTile, Tile: t}
}

func CallItem(token string) ActionItem {
	return ActionItem{Kind: ItemCall, Tile: mahjong.TileNull, Token: token}
}

func TsumogiriItem() ActionItem {
	return ActionItem{Kind: ItemTsumogiri, Tile: mahjong.TileNull}
}

func KanFillerItem() ActionItem {
	return ActionItem{Kind: ItemKanFiller, Tile: mahjong.TileNull}
}

// ActionTable holds one seat's arrays for one round.
type ActionTable struct {
	Haipai   []mahjong.Tile
	Takes    []ActionItem
	Discards []ActionItem
}

type EndKind int

const (
	EndWin  EndKind = iota // 和了
	EndDraw                // 流局(含中途流局)
)

// Win is one winner/target pair of a win result.
type Win struct {
	Actor  int32
	Target int32
	Pao    int32
	Deltas []int
	Yaku   []string
}

func (w *Win) IsTsumo() bool {
	return w.Actor == w.Target
}

type Result struct {
	Kind   EndKind
	Reason string
	Wins   []Win
	Deltas []int
}

// Round is the decoded form of one entry of the "log" array.
type Round struct {
	Kyoku   int
	Honba   int
	Kyotaku int
	Scores  []int
	Dora    []mahjong.Tile
	Ura     []mahjong.Tile
	Tables  [mahjong.NP4]ActionTable
	Result  Result
}

func (r *Round) Dealer() int32 {
	return int32(r.Kyoku % mahjong.NP4)
}

func (r *Round) Bakaze() mahjong.Tile {
	return mahjong.MakeTile(mahjong.ColorWind, (r.Kyoku/mahjong.NP4)%mahjong.NP4)
}

// Log is a decoded match.
type Log struct {
	Names  []string
	Length mahjong.RoundLength
	Aka    bool
	Rounds []Round
}
