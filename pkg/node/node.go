// Package node is the protocol core: one state machine per role,
// driven purely by loop messages (received frames, debounced triggers)
// and loop ticks. All mutable game state lives in the Node context
// object and is touched only from loop controllers.
package node

import (
	"math/rand"
	"time"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/console"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/game"
	"github.com/moe2code/twoboards.go/pkg/nvram"
	"github.com/moe2code/twoboards.go/pkg/power"
	"github.com/moe2code/twoboards.go/pkg/score"
)

// FrameMsg is posted by the bus receive callback.
type FrameMsg struct {
	Frame bus.Frame
}

// TriggerMsg is posted by an edge input, the button press analogue.
type TriggerMsg struct{}

// SleepReqMsg is posted by the ambient-condition-lost input and makes
// the node request peer sleep before halting itself.
type SleepReqMsg struct{}

// BusErrMsg is posted when the transport reports an asynchronous
// error.
type BusErrMsg struct {
	Err error
}

// Behavior is the role capability: which frames a node reacts to and
// which it originates. Both roles share the Node context and the
// identifier table; only the behavior differs.
type Behavior interface {
	Name() string
	HandleFrame(cc fx.ControlContext, n *Node, t game.MsgType, f bus.Frame)
	HandleTrigger(cc fx.ControlContext, n *Node)
	HandleTick(cc fx.ControlContext, n *Node)
}

// Node owns the shared state of one protocol endpoint.
type Node struct {
	Bus      bus.Bus
	Console  *console.Console
	Power    *power.Choreographer
	Behavior Behavior

	// Record and Region hold the ledger's durable mirror; both are
	// configured on the initiator only.
	Record score.RecordCodec
	Region nvram.Region

	// Pick draws one hand. Defaults to a uniform draw; tests
	// script it.
	Pick func() game.Hand

	// Ledger is authoritative while running; the region only ever
	// holds a lagging snapshot.
	Ledger score.Ledger
}

// New creates a Node for a behavior with a seeded hand source.
func New(behavior Behavior) *Node {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Node{
		Behavior: behavior,
		Record:   score.TextRecord{},
		Console:  console.New(),
		Pick:     func() game.Hand { return game.Hand(rng.Intn(3)) },
	}
}

// Name implements Named.
func (n *Node) Name() string {
	return n.Behavior.Name()
}

// Boot runs once before the bus starts. It clears the latched power
// flags first, then reconstructs the ledger from the durable region
// and wakes the peer when resuming from standby.
func (n *Node) Boot() error {
	resumed, err := n.Power.Boot()
	if err != nil {
		return err
	}
	if !resumed {
		n.Console.Printf("Fresh start; no scores available")
		return nil
	}
	n.Console.Printf("Woke up from Standby mode")
	if n.Region != nil {
		b, err := n.Region.Load()
		if err != nil {
			return err
		}
		n.Ledger = n.Record.Unmarshal(b)
		n.Console.Printf("Loaded Stats - %s", n.Ledger)
	}
	return n.Power.WakePeer()
}

// Control implements Controller. It consumes this iteration's
// messages, then gives the behavior its per-tick slot.
func (n *Node) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		switch msg := mc.CurrentMessage().(type) {
		case FrameMsg:
			mc.MessageTaken()
			n.handleFrame(cc, msg.Frame)
		case TriggerMsg:
			mc.MessageTaken()
			n.Behavior.HandleTrigger(cc, n)
		case SleepReqMsg:
			mc.MessageTaken()
			n.Console.Printf("Light lost; gone to sleep")
			if err := n.Power.RequestSleep(); err != nil {
				glog.Errorf("sleep request transmit failed: %v", err)
			}
		case BusErrMsg:
			mc.MessageTaken()
			n.Console.Printf("Bus error occurred: %v", msg.Err)
		}
	}))
	n.Behavior.HandleTick(cc, n)
	return nil
}

func (n *Node) handleFrame(cc fx.ControlContext, f bus.Frame) {
	t := game.Classify(f)
	if t == game.MsgUnknown {
		// unrecognized traffic is expected on a shared bus
		glog.V(2).Infof("ignore %s", f.String())
		return
	}
	n.Behavior.HandleFrame(cc, n, t, f)
}

// AddToLoop implements LoopAdder: the bus feeds the message queue,
// the node runs at bus priority and the console drains at idle.
func (n *Node) AddToLoop(loop *fx.Loop) {
	n.Bus.Notify(func(f bus.Frame) {
		loop.PostMessage(FrameMsg{Frame: f})
		loop.TriggerNext()
	})
	if notifier, ok := n.Bus.(bus.ErrorNotifier); ok {
		notifier.NotifyError(func(err error) {
			loop.PostMessage(BusErrMsg{Err: err})
			loop.TriggerNext()
		})
	}
	if adder, ok := n.Bus.(fx.LoopAdder); ok {
		loop.Add(adder)
	} else if runnable, ok := n.Bus.(fx.Runnable); ok {
		loop.AddRunnable(runnable)
	}
	loop.AddController(fx.PrLvBus, n)
	n.Console.AddToLoop(loop)
}

// send transmits a frame; transmit failures are logged and the round
// is lost, the bus-level retransmission of unacknowledged frames is
// the transport's business.
func (n *Node) send(f bus.Frame) {
	if err := n.Bus.Send(f); err != nil {
		glog.Errorf("transmit %s: %v", f.String(), err)
	}
}

// persistLedger mirrors the ledger into the durable region.
func (n *Node) persistLedger() {
	n.Console.Printf("%s", n.Ledger)
	if n.Region == nil {
		return
	}
	if err := n.Region.Store(n.Record.Marshal(n.Ledger)); err != nil {
		glog.Errorf("store score record: %v", err)
	}
}
