package node

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/console"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
	"github.com/moe2code/twoboards.go/pkg/game"
	"github.com/moe2code/twoboards.go/pkg/input"
	"github.com/moe2code/twoboards.go/pkg/nvram"
	"github.com/moe2code/twoboards.go/pkg/power"
	"github.com/moe2code/twoboards.go/pkg/score"
)

// testIter drives a Node the way a loop iteration would, without a
// running loop.
type testIter struct {
	msgs   []fx.Message
	posted []fx.Message
}

func (t *testIter) Context() context.Context { return context.Background() }
func (t *testIter) Time() time.Time          { return time.Time{} }
func (t *testIter) PriorityLevel() int       { return fx.PrLvBus }
func (t *testIter) Messages() fx.MessageStore {
	return t
}
func (t *testIter) PostMessage(msg fx.Message) { t.posted = append(t.posted, msg) }
func (t *testIter) TriggerNext()               {}

type testMsgCtx struct {
	msg   fx.Message
	taken bool
}

func (c *testMsgCtx) CurrentMessage() fx.Message { return c.msg }
func (c *testMsgCtx) MessageTaken()              { c.taken = true }

func (t *testIter) ProcessMessages(proc fx.MessageProcessor) {
	remains := t.msgs[:0]
	for _, msg := range t.msgs {
		mctx := &testMsgCtx{msg: msg}
		proc.ProcessMessage(mctx)
		if !mctx.taken {
			remains = append(remains, msg)
		}
	}
	t.msgs = remains
}

func (t *testIter) AddMessages(msgs ...fx.Message) {
	t.msgs = append(t.msgs, msgs...)
}

// testNode pairs a Node with its pending message queue fed by the bus.
type testNode struct {
	n       *Node
	pending []fx.Message
	halted  bool
	flags   *power.MemFlags
	out     *bytes.Buffer
}

func (tn *testNode) step(t *testing.T, ticks int) {
	t.Helper()
	for i := 0; i < ticks; i++ {
		iter := &testIter{msgs: tn.pending}
		tn.pending = nil
		require.NoError(t, tn.n.Control(iter))
		tn.pending = append(tn.pending, iter.msgs...)
		tn.pending = append(tn.pending, iter.posted...)
	}
}

func (tn *testNode) inject(msg fx.Message) {
	tn.pending = append(tn.pending, msg)
}

func pickQueue(hands ...game.Hand) func() game.Hand {
	i := 0
	return func() game.Hand {
		h := hands[i]
		if i+1 < len(hands) {
			i++
		}
		return h
	}
}

func newTestNode(behavior Behavior, port *bus.Port) *testNode {
	tn := &testNode{flags: &power.MemFlags{}, out: &bytes.Buffer{}}
	n := New(behavior)
	n.Bus = port
	n.Console = console.NewWithSink(console.WriterSink{W: tn.out})
	n.Power = &power.Choreographer{
		Bus:   port,
		Flags: tn.flags,
		Halt:  func() { tn.halted = true },
	}
	port.Notify(func(f bus.Frame) {
		tn.pending = append(tn.pending, FrameMsg{Frame: f})
	})
	tn.n = n
	return tn
}

// gamePair wires an initiator and a responder to one shared bus plus
// a tap recording all traffic.
func gamePair() (ini, resp *testNode, tap *[]bus.Frame) {
	mem := bus.NewMem()
	frames := &[]bus.Frame{}
	tapPort := mem.Join()
	tapPort.Notify(func(f bus.Frame) { *frames = append(*frames, f) })

	ini = newTestNode(&Initiator{RoundTicks: 4}, mem.Join())
	ini.n.Region = &nvram.Mem{}
	resp = newTestNode(&Responder{}, mem.Join())
	return ini, resp, frames
}

func TestRoundResponderWins(t *testing.T) {
	ini, resp, tap := gamePair()
	ini.n.Pick = pickQueue(game.Rock)
	resp.n.Pick = pickQueue(game.Scissors, game.Paper) // second draw is used

	ini.inject(TriggerMsg{})
	ini.step(t, 4) // arm plus round period
	resp.step(t, 1)
	ini.step(t, 1)

	require.Equal(t, score.Ledger{ResponderWins: 1}, ini.n.Ledger)

	b, err := ini.n.Region.Load()
	require.NoError(t, err)
	require.Equal(t, []byte("0,1,0,0\n"), b)

	// hand then result on the wire
	require.Len(t, *tap, 2)
	require.Equal(t, game.HandAnnounceID, (*tap)[0].ID)
	require.Equal(t, []byte{byte(game.Rock)}, (*tap)[0].Data)
	require.Equal(t, game.ResultAnnounceID, (*tap)[1].ID)
	require.Equal(t, []byte{byte(game.ResponderWins)}, (*tap)[1].Data)
}

func TestRoundTie(t *testing.T) {
	ini, resp, tap := gamePair()
	ini.n.Pick = pickQueue(game.Scissors)
	resp.n.Pick = pickQueue(game.Rock, game.Scissors)

	ini.inject(TriggerMsg{})
	ini.step(t, 4)
	resp.step(t, 1)
	ini.step(t, 1)

	require.Equal(t, score.Ledger{Ties: 1}, ini.n.Ledger)
	require.Equal(t, []byte{byte(game.Tie)}, (*tap)[1].Data)
}

func TestRoundPeriodAndRepeat(t *testing.T) {
	ini, resp, tap := gamePair()
	ini.n.Pick = pickQueue(game.Rock)
	resp.n.Pick = pickQueue(game.Paper, game.Paper)

	// not armed: no traffic no matter how long
	ini.step(t, 10)
	require.Empty(t, *tap)

	ini.inject(TriggerMsg{})
	ini.step(t, 3)
	require.Empty(t, *tap) // one tick short of the period

	ini.step(t, 1)
	require.Len(t, *tap, 1)

	// a second press while running is a no-op
	ini.inject(TriggerMsg{})
	ini.step(t, 4)
	require.Len(t, *tap, 2)

	resp.step(t, 1)
	ini.step(t, 1)
	require.Equal(t, score.Ledger{ResponderWins: 2}, ini.n.Ledger)
}

func TestStatsRequestResponse(t *testing.T) {
	ini, resp, tap := gamePair()
	ini.n.Ledger = score.Ledger{InitiatorWins: 3, ResponderWins: 5, Ties: 2, Invalid: 1}
	resp.n.Behavior.(*Responder).Clock = func() time.Time {
		return time.Date(2020, 2, 1, 16, 2, 0, 0, time.UTC)
	}

	resp.inject(TriggerMsg{})
	resp.step(t, 1)
	ini.step(t, 1)
	resp.step(t, 1)

	require.Len(t, *tap, 2)
	require.True(t, (*tap)[0].Remote)
	require.Equal(t, game.StatsID, (*tap)[0].ID)
	require.Equal(t, []byte{3, 5, 2, 1}, (*tap)[1].Data)

	resp.n.Console.Control(nil)
	require.Contains(t, resp.out.String(),
		"2020-02-01 04:02:00 PM - STATS: Initiator Wins: 3, Responder Wins: 5, Ties: 2, Errors: 1")
}

func TestStatsButtonDebounce(t *testing.T) {
	ini, resp, tap := gamePair()
	_ = ini

	active := false
	behavior := resp.n.Behavior.(*Responder)
	behavior.Line = input.LineFunc(func() bool { return active })
	behavior.Debounce.Threshold = 5

	resp.step(t, 10)
	require.Empty(t, *tap)

	active = true
	resp.step(t, 4)
	require.Empty(t, *tap)
	resp.step(t, 1)
	require.Len(t, *tap, 1)
	require.True(t, (*tap)[0].Remote)
}

func TestInvalidResultCountedNotRejected(t *testing.T) {
	ini, _, _ := gamePair()

	ini.inject(FrameMsg{Frame: bus.Frame{ID: game.ResultAnnounceID, Data: []byte{9}}})
	ini.step(t, 1)
	require.Equal(t, score.Ledger{Invalid: 1}, ini.n.Ledger)

	// empty payload counts the same way
	ini.inject(FrameMsg{Frame: bus.Frame{ID: game.ResultAnnounceID}})
	ini.step(t, 1)
	require.Equal(t, score.Ledger{Invalid: 2}, ini.n.Ledger)
}

func TestInvalidHandYieldsInvalidResult(t *testing.T) {
	_, resp, tap := gamePair()
	resp.n.Pick = pickQueue(game.Rock, game.Rock)
	lamps := &Lamps{}
	resp.n.Behavior.(*Responder).Indicator = lamps

	resp.inject(FrameMsg{Frame: bus.Frame{ID: game.HandAnnounceID, Data: []byte{7}}})
	resp.step(t, 1)

	require.Len(t, *tap, 1)
	require.Equal(t, []byte{byte(game.Invalid)}, (*tap)[0].Data)
	require.Equal(t, game.Invalid, lamps.Lit())
}

func TestUnknownTrafficIgnored(t *testing.T) {
	ini, resp, _ := gamePair()
	for _, f := range []bus.Frame{
		{ID: 0x123, Data: []byte{1, 2}},
		{ID: game.HandAnnounceID, Remote: true},
		{ID: game.SleepID, Remote: true},
	} {
		ini.inject(FrameMsg{Frame: f})
		resp.inject(FrameMsg{Frame: f})
	}
	ini.step(t, 1)
	resp.step(t, 1)
	require.Equal(t, score.Ledger{}, ini.n.Ledger)
	require.False(t, ini.halted)
	require.False(t, resp.halted)
}

func TestSleepCommandHaltsResponder(t *testing.T) {
	_, resp, _ := gamePair()
	resp.inject(FrameMsg{Frame: bus.Frame{ID: game.SleepID, Data: []byte{0}}})
	resp.step(t, 1)
	require.True(t, resp.halted)
	set, _ := resp.flags.IsSet(power.FlagStandby)
	require.True(t, set)
}

func TestSleepRequestTellsPeerThenHalts(t *testing.T) {
	ini, resp, tap := gamePair()
	ini.inject(SleepReqMsg{})
	ini.step(t, 1)
	require.True(t, ini.halted)
	require.Len(t, *tap, 1)
	require.Equal(t, game.SleepID, (*tap)[0].ID)

	resp.step(t, 1)
	require.True(t, resp.halted)
}

func TestInitiatorIgnoresSleepCommand(t *testing.T) {
	ini, _, _ := gamePair()
	ini.inject(FrameMsg{Frame: bus.Frame{ID: game.SleepID, Data: []byte{0}}})
	ini.step(t, 1)
	require.False(t, ini.halted)
}

type fakeWake struct {
	pulses int
}

func (w *fakeWake) Pulse() error {
	w.pulses++
	return nil
}

func TestBootResumeRestoresLedger(t *testing.T) {
	mem := bus.NewMem()
	ini := newTestNode(&Initiator{}, mem.Join())
	ini.n.Region = &nvram.Mem{Bytes: []byte("3,5,2,1\n")}
	wake := &fakeWake{}
	ini.n.Power.Wake = wake
	require.NoError(t, ini.flags.Set(power.FlagStandby))
	require.NoError(t, ini.flags.Set(power.FlagWakeup))

	require.NoError(t, ini.n.Boot())
	require.Equal(t, score.Ledger{InitiatorWins: 3, ResponderWins: 5, Ties: 2, Invalid: 1}, ini.n.Ledger)
	require.Equal(t, 1, wake.pulses)

	set, _ := ini.flags.IsSet(power.FlagStandby)
	require.False(t, set)
	set, _ = ini.flags.IsSet(power.FlagWakeup)
	require.False(t, set)
}

func TestBootFreshStartsZeroed(t *testing.T) {
	mem := bus.NewMem()
	ini := newTestNode(&Initiator{}, mem.Join())
	ini.n.Region = &nvram.Mem{Bytes: []byte("3,5,2,1\n")}
	wake := &fakeWake{}
	ini.n.Power.Wake = wake

	require.NoError(t, ini.n.Boot())
	require.Equal(t, score.Ledger{}, ini.n.Ledger)
	require.Equal(t, 0, wake.pulses)
}

func TestBootResumeBlankRegion(t *testing.T) {
	mem := bus.NewMem()
	ini := newTestNode(&Initiator{}, mem.Join())
	ini.n.Region = &nvram.Mem{}
	require.NoError(t, ini.flags.Set(power.FlagStandby))

	require.NoError(t, ini.n.Boot())
	require.Equal(t, score.Ledger{}, ini.n.Ledger)
}

func TestLampsShowOnePerResult(t *testing.T) {
	var buf bytes.Buffer
	c := console.NewWithSink(console.WriterSink{W: &buf})
	lamps := &Lamps{Console: c}

	lamps.Show(game.ResponderWins)
	require.Equal(t, game.ResponderWins, lamps.Lit())
	lamps.Show(game.Tie)
	require.Equal(t, game.Tie, lamps.Lit())
	lamps.Show(game.Result(9)) // off-table results leave the lamps alone
	require.Equal(t, game.Tie, lamps.Lit())

	c.Control(nil)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, []string{"LED orange on", "LED red on"}, lines)
}
