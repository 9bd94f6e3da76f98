// Package game defines the rock-paper-scissors domain: hands, results,
// their single-byte wire encoding and the frame identifier table the
// two nodes agree on.
package game

import "fmt"

// Hand is a player's pick, transmitted as a single byte.
type Hand uint8

// The three hands.
const (
	Rock     Hand = 0
	Paper    Hand = 1
	Scissors Hand = 2
)

var handNames = [3]string{"Rock", "Paper", "Scissors"}

// String renders the hand for logging.
func (h Hand) String() string {
	if int(h) < len(handNames) {
		return handNames[h]
	}
	return fmt.Sprintf("Hand(%d)", uint8(h))
}

// ErrBadEncoding indicates a payload byte outside its value domain.
type ErrBadEncoding struct {
	What  string
	Value byte
}

// Error implements error.
func (e *ErrBadEncoding) Error() string {
	return fmt.Sprintf("invalid %s encoding: %d", e.What, e.Value)
}

// EncodeHand encodes the hand as a 1-byte payload.
func EncodeHand(h Hand) byte {
	return byte(h)
}

// DecodeHand decodes a 1-byte payload into a hand.
func DecodeHand(b byte) (Hand, error) {
	if b > byte(Scissors) {
		return Hand(b), &ErrBadEncoding{What: "hand", Value: b}
	}
	return Hand(b), nil
}
