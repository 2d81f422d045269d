package mahjong

const (
	SeatNull int32 = -1
)

const (
	NP4 = 4
)

type EColor int

const (
	ColorUndefined EColor = -1
	ColorMan       EColor = iota - 1 // 万
	ColorPin                         // 筒
	ColorSou                         // 索
	ColorWind                        // 风牌
	ColorDragon                      // 三元牌
	ColorEnd
	ColorBegin = ColorMan
)

var PointCountByColor = [ColorEnd]int{9, 9, 9, 4, 3}

// 牌标记
const (
	FlagNormal = 1
	FlagRed    = 2 // 赤五
)

// 相对座位, 以行动者为基准
const (
	RelSelf   int32 = 0
	RelRight  int32 = 1 // 下家
	RelAcross int32 = 2 // 对家
	RelLeft   int32 = 3 // 上家
)

// RoundLength 对局长度
type RoundLength int

const (
	RoundLengthEast      RoundLength = iota // 东风战
	RoundLengthEastSouth                    // 半庄战
)

// KyokuFirst returns the kyoku index at which the final wind of the match starts.
func (l RoundLength) KyokuFirst() int {
	if l == RoundLengthEast {
		return 0
	}
	return 4
}

func GetNextSeat(seat, step, seatCount int32) int32 {
	return (seat + step) % seatCount
}

// RelativeSeat maps a relative position back to an absolute seat.
func RelativeSeat(seat, rel int32) int32 {
	return GetNextSeat(seat, rel, NP4)
}
