package convlog

import (
	"errors"
	"fmt"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
)

var (
	ErrMalformedToken    = errors.New("malformed call token")
	ErrExhausted         = errors.New("exhausted sequence")
	ErrInconsistentRound = errors.New("inconsistent round")
)

// TokenError names the call string that failed to decode. Offset is -1 when
// the token shape itself is wrong.
type TokenError struct {
	Token  string
	Offset int
	Err    error
}

func (e *TokenError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%v %q", ErrMalformedToken, e.Token)
	}
	return fmt.Sprintf("%v %q at offset %d: %v", ErrMalformedToken, e.Token, e.Offset, e.Err)
}

func (e *TokenError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedToken}
	}
	return []error{ErrMalformedToken, e.Err}
}

// RoundError locates a reconstruction failure in the source log.
type RoundError struct {
	Kyoku int
	Honba int
	Seat  int32
	Err   error
}

func (e *RoundError) Error() string {
	if e.Seat == mahjong.SeatNull {
		return fmt.Sprintf("kyoku %d honba %d: %v", e.Kyoku, e.Honba, e.Err)
	}
	return fmt.Sprintf("kyoku %d honba %d seat %d: %v", e.Kyoku, e.Honba, e.Seat, e.Err)
}

func (e *RoundError) Unwrap() error {
	return e.Err
}
