package node

import (
	"github.com/moe2code/twoboards.go/pkg/bus"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/game"
)

// DefaultRoundTicks is the number of loop ticks between rounds once
// the send cycle is armed: 4 seconds at the 1 kHz tick.
const DefaultRoundTicks = 4000

// Initiator originates rounds and keeps the authoritative ledger.
type Initiator struct {
	// RoundTicks overrides the round period; zero means
	// DefaultRoundTicks.
	RoundTicks int

	running bool
	ticks   int
}

// Name implements Behavior.
func (b *Initiator) Name() string { return "initiator" }

// HandleTrigger implements Behavior: the button press arms the
// periodic send cycle. Further presses are no-ops.
func (b *Initiator) HandleTrigger(cc fx.ControlContext, n *Node) {
	if b.running {
		return
	}
	b.running = true
	b.ticks = 0
	n.Console.Printf("User button pressed; timer started")
}

// HandleTick implements Behavior: once armed, every round period
// draws a random hand and announces it.
func (b *Initiator) HandleTick(cc fx.ControlContext, n *Node) {
	if !b.running {
		return
	}
	period := b.RoundTicks
	if period == 0 {
		period = DefaultRoundTicks
	}
	b.ticks++
	if b.ticks < period {
		return
	}
	b.ticks = 0
	hand := n.Pick()
	n.Console.Printf("Sent message containing our hand (%s)", hand)
	n.send(bus.Frame{ID: game.HandAnnounceID, Data: []byte{game.EncodeHand(hand)}})
}

// HandleFrame implements Behavior.
func (b *Initiator) HandleFrame(cc fx.ControlContext, n *Node, t game.MsgType, f bus.Frame) {
	switch t {
	case game.MsgResultAnnounce:
		result := b.decodeResult(n, f)
		n.Console.Printf("Received message with game result: %s", result)
		n.Ledger.Apply(result)
		n.persistLedger()
	case game.MsgStatsRequest:
		n.send(bus.Frame{ID: game.StatsID, Data: n.Ledger.StatsPayload()})
		n.Console.Printf("Sent game stats to peer")
	}
	// the initiator originates the sleep command, it does not obey it
}

// decodeResult range-checks the announced result; an out-of-domain
// byte is counted as an invalid outcome rather than rejected.
func (b *Initiator) decodeResult(n *Node, f bus.Frame) game.Result {
	raw := byte(0)
	if len(f.Data) > 0 {
		raw = f.Data[0]
	}
	result, err := game.DecodeResult(raw)
	if err != nil {
		n.Console.Printf("Invalid result encoding received: %v", err)
		return game.Invalid
	}
	return result
}
