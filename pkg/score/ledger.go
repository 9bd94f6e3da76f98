// Package score keeps the rolling game tally and its serialized form
// in the durable region. The in-memory ledger is the authoritative
// copy while the system runs; the durable mirror is only ever a
// lagging snapshot.
package score

import (
	"fmt"

	"github.com/moe2code/twoboards.go/pkg/game"
)

// Ledger holds the four round counters.
type Ledger struct {
	InitiatorWins uint8
	ResponderWins uint8
	Ties          uint8
	Invalid       uint8
}

// Apply folds one result into the ledger. Results outside the table
// leave the ledger untouched and report false.
func (l *Ledger) Apply(r game.Result) bool {
	switch r {
	case game.InitiatorWins:
		l.InitiatorWins++
	case game.ResponderWins:
		l.ResponderWins++
	case game.Tie:
		l.Ties++
	case game.Invalid:
		l.Invalid++
	default:
		return false
	}
	return true
}

// StatsPayload returns the counters as the stats-response payload, in
// fixed wire order.
func (l *Ledger) StatsPayload() []byte {
	return []byte{l.InitiatorWins, l.ResponderWins, l.Ties, l.Invalid}
}

// LedgerFromStats rebuilds a ledger from a stats-response payload.
func LedgerFromStats(payload []byte) (Ledger, error) {
	if len(payload) != 4 {
		return Ledger{}, fmt.Errorf("stats payload must be 4 bytes, got %d", len(payload))
	}
	return Ledger{
		InitiatorWins: payload[0],
		ResponderWins: payload[1],
		Ties:          payload[2],
		Invalid:       payload[3],
	}, nil
}

// String renders the ledger for logging.
func (l Ledger) String() string {
	return fmt.Sprintf("Initiator Wins: %d, Responder Wins: %d, Ties: %d, Errors: %d",
		l.InitiatorWins, l.ResponderWins, l.Ties, l.Invalid)
}
