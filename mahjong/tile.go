package mahjong

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var ErrInvalidTile = errors.New("invalid tile")

var (
	TileNull    Tile = -1
	TileUnknown Tile = MakeTile(ColorEnd, 0)    // 未知牌
	TileEast    Tile = MakeTile(ColorWind, 0)   // 东
	TileSouth   Tile = MakeTile(ColorWind, 1)   // 南
	TileWest    Tile = MakeTile(ColorWind, 2)   // 西
	TileNorth   Tile = MakeTile(ColorWind, 3)   // 北
	TileHaku    Tile = MakeTile(ColorDragon, 0) // 白
	TileHatsu   Tile = MakeTile(ColorDragon, 1) // 发
	TileChun    Tile = MakeTile(ColorDragon, 2) // 中
)

var (
	windNames   = []string{"E", "S", "W", "N"}
	dragonNames = []string{"P", "F", "C"}
	suitNames   = [ColorWind]string{"m", "p", "s"}
)

// 静态表: 规范名 -> 牌
var tileByName = func() map[string]Tile {
	m := make(map[string]Tile, 38)
	for _, t := range AllTiles() {
		m[t.Name()] = t
	}
	m[TileUnknown.Name()] = TileUnknown
	return m
}()

// Tile packs color, point and flag the same way for every kind; red fives
// carry FlagRed so they order directly after the plain five.
type Tile int32

func MakeTile(color EColor, point int) Tile {
	return Tile(int(color)<<8 | (point << 4) | FlagNormal)
}

func MakeSpecialTile(color EColor, point int, flag int) Tile {
	return Tile(int(color)<<8 | (point << 4) | flag)
}

func MakeRedTile(color EColor) Tile {
	return MakeSpecialTile(color, 4, FlagRed)
}

func (t Tile) Color() EColor {
	return EColor((t >> 8) & 0x0F)
}

func (t Tile) Point() int {
	return int((t >> 4) & 0x0F)
}

func (t Tile) Info() (EColor, int) {
	return t.Color(), t.Point()
}

func (t Tile) Flag() int {
	return int(t & 0x0F)
}

// IsValid reports whether t is one of the 37 concrete identities.
func (t Tile) IsValid() bool {
	if t < 0 {
		return false
	}
	c, p := t.Info()
	if c < ColorBegin || c >= ColorEnd || p >= PointCountByColor[c] {
		return false
	}
	switch t.Flag() {
	case FlagNormal:
		return true
	case FlagRed:
		return c < ColorWind && p == 4
	}
	return false
}

func (t Tile) IsUnknown() bool {
	return t == TileUnknown
}

func (t Tile) IsSuit() bool { // 数牌
	return t.IsValid() && t.Color() < ColorWind
}

func (t Tile) IsHonor() bool { // 字牌
	return t.IsValid() && (t.Color() == ColorWind || t.Color() == ColorDragon)
}

func (t Tile) IsRed() bool {
	return t.IsValid() && t.Flag() == FlagRed
}

// Deaka returns the plain counterpart of a red five.
func (t Tile) Deaka() Tile {
	if t.IsRed() {
		return MakeTile(t.Color(), t.Point())
	}
	return t
}

func (t Tile) Name() string {
	if t == TileUnknown {
		return "?"
	}
	if !t.IsValid() {
		return ""
	}
	c, p := t.Info()
	switch c {
	case ColorWind:
		return windNames[p]
	case ColorDragon:
		return dragonNames[p]
	}
	name := strconv.Itoa(p+1) + suitNames[c]
	if t.Flag() == FlagRed {
		name += "r"
	}
	return name
}

func (t Tile) String() string {
	return t.Name()
}

// Tenhou returns the numeric encoding used by tenhou logs; 0 for anything
// that has no encoding.
func (t Tile) Tenhou() int {
	if !t.IsValid() {
		return 0
	}
	c, p := t.Info()
	switch {
	case t.Flag() == FlagRed:
		return 51 + int(c)
	case c == ColorWind:
		return 41 + p
	case c == ColorDragon:
		return 45 + p
	}
	return (int(c)+1)*10 + p + 1
}

func (t Tile) MarshalText() ([]byte, error) {
	if t != TileUnknown && !t.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTile, int32(t))
	}
	return []byte(t.Name()), nil
}

func (t *Tile) UnmarshalText(text []byte) error {
	tile, err := ParseTile(string(text))
	if err != nil {
		return err
	}
	*t = tile
	return nil
}

// TileFromTenhou decodes a tenhou numeric tile.
func TileFromTenhou(n int) (Tile, error) {
	switch {
	case n >= 11 && n <= 39 && n%10 != 0:
		return MakeTile(EColor(n/10-1), n%10-1), nil
	case n >= 41 && n <= 44:
		return MakeTile(ColorWind, n-41), nil
	case n >= 45 && n <= 47:
		return MakeTile(ColorDragon, n-45), nil
	case n >= 51 && n <= 53:
		return MakeRedTile(EColor(n - 51)), nil
	}
	return TileNull, fmt.Errorf("%w: %d", ErrInvalidTile, n)
}

func ParseTile(name string) (Tile, error) {
	if t, ok := tileByName[name]; ok {
		return t, nil
	}
	return TileNull, fmt.Errorf("%w: %q", ErrInvalidTile, name)
}

// AllTiles lists the 37 concrete identities in sort order.
func AllTiles() []Tile {
	res := make([]Tile, 0, 37)
	for c := ColorBegin; c < ColorEnd; c++ {
		for p := range PointCountByColor[c] {
			res = append(res, MakeTile(c, p))
			if c < ColorWind && p == 4 {
				res = append(res, MakeRedTile(c))
			}
		}
	}
	return res
}

func (t Tile) Less(o Tile) bool {
	return t < o
}

func SortTiles(tiles []Tile) {
	slices.Sort(tiles)
}

func TilesName(tiles []Tile) string {
	var tileNames []string
	for _, tile := range tiles {
		tileNames = append(tileNames, tile.Name())
	}
	return strings.Join(tileNames, ", ")
}
