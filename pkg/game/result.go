package game

import "fmt"

// Result is the outcome of one round, transmitted as a single byte.
// Result-1 indexes the display name table.
type Result uint8

// The four outcomes.
const (
	InitiatorWins Result = 1
	ResponderWins Result = 2
	Tie           Result = 3
	Invalid       Result = 4
)

var resultNames = [4]string{"Initiator wins", "Responder wins", "A tie", "Error occurred"}

// String renders the result for logging.
func (r Result) String() string {
	if r >= InitiatorWins && r <= Invalid {
		return resultNames[r-1]
	}
	return fmt.Sprintf("Result(%d)", uint8(r))
}

// EncodeResult encodes the result as a 1-byte payload.
func EncodeResult(r Result) byte {
	return byte(r)
}

// DecodeResult decodes a 1-byte payload into a result.
func DecodeResult(b byte) (Result, error) {
	if b < byte(InitiatorWins) || b > byte(Invalid) {
		return Result(b), &ErrBadEncoding{What: "result", Value: b}
	}
	return Result(b), nil
}

// Resolve computes the outcome of a pair of hands. It is total: any
// hand outside the three-value domain yields Invalid rather than
// trusting the caller to have range-checked its input.
func Resolve(initiator, responder Hand) Result {
	if initiator > Scissors || responder > Scissors {
		return Invalid
	}
	if initiator == responder {
		return Tie
	}
	// each hand loses to its successor mod 3
	if (initiator+1)%3 == responder {
		return ResponderWins
	}
	return InitiatorWins
}
