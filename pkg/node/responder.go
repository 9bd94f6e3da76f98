package node

import (
	"time"

	"github.com/moe2code/twoboards.go/pkg/bus"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/game"
	"github.com/moe2code/twoboards.go/pkg/input"
	"github.com/moe2code/twoboards.go/pkg/score"
)

// Responder answers announced hands and requests statistics on its
// debounced button.
type Responder struct {
	// Line is the stats-request button, sampled every tick through
	// the debouncer. Nil disables the button path.
	Line     input.Line
	Debounce input.Debouncer

	// Indicator mirrors each round's result, one lamp per outcome.
	Indicator Indicator

	// Clock stamps the received statistics log line. Nil means
	// time.Now.
	Clock func() time.Time
}

// Name implements Behavior.
func (b *Responder) Name() string { return "responder" }

// HandleTick implements Behavior: one debounce sample per tick.
func (b *Responder) HandleTick(cc fx.ControlContext, n *Node) {
	if b.Line == nil {
		return
	}
	if b.Debounce.Sample(b.Line.Read()) {
		b.HandleTrigger(cc, n)
	}
}

// HandleTrigger implements Behavior: ask the peer for game stats.
func (b *Responder) HandleTrigger(cc fx.ControlContext, n *Node) {
	n.Console.Printf("Sent remote frame to ask for game stats")
	n.send(bus.Frame{ID: game.StatsID, Remote: true})
}

// HandleFrame implements Behavior.
func (b *Responder) HandleFrame(cc fx.ControlContext, n *Node, t game.MsgType, f bus.Frame) {
	switch t {
	case game.MsgHandAnnounce:
		b.playRound(n, f)
	case game.MsgStatsResponse:
		b.logStats(n, f)
	case game.MsgSleepCommand:
		n.Console.Printf("Light lost; gone to sleep")
		n.Power.SleepNow()
	}
}

func (b *Responder) playRound(n *Node, f bus.Frame) {
	raw := byte(0xFF)
	if len(f.Data) > 0 {
		raw = f.Data[0]
	}
	peer, err := game.DecodeHand(raw)
	if err != nil {
		n.Console.Printf("Invalid hand encoding received: %v", err)
	} else {
		n.Console.Printf("Message received. Peer's hand is %s", peer)
	}

	// the second draw only perturbs the sequence, it does not
	// prevent picking the peer's hand
	mine := n.Pick()
	mine = n.Pick()
	n.Console.Printf("Our hand is %s", mine)

	result := game.Resolve(peer, mine)
	if b.Indicator != nil {
		b.Indicator.Show(result)
	}
	n.Console.Printf("Sent message with game result: %s", result)
	n.send(bus.Frame{ID: game.ResultAnnounceID, Data: []byte{game.EncodeResult(result)}})
}

func (b *Responder) logStats(n *Node, f bus.Frame) {
	ledger, err := score.LedgerFromStats(f.Data)
	if err != nil {
		n.Console.Printf("Malformed stats response: %v", err)
		return
	}
	n.Console.Printf("%s - STATS: %s", b.now().Format("2006-01-02 03:04:05 PM"), ledger)
}

func (b *Responder) now() time.Time {
	if b.Clock != nil {
		return b.Clock()
	}
	return time.Now()
}
