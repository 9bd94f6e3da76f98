package power

import (
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/bus"
	"github.com/moe2code/twoboards.go/pkg/game"
)

// WakeLine is the dedicated line pulsed to wake the sleeping peer.
type WakeLine interface {
	Pulse() error
}

// FileWakeLine pulses by creating a sentinel file and removing it
// after the hold time; the peer's supervisor watches for it.
type FileWakeLine struct {
	Path string
	// Hold is the pulse width. Zero means 50ms.
	Hold time.Duration
}

// Pulse implements WakeLine.
func (w *FileWakeLine) Pulse() error {
	file, err := os.Create(w.Path)
	if err != nil {
		return err
	}
	file.Close()
	hold := w.Hold
	if hold == 0 {
		hold = 50 * time.Millisecond
	}
	time.Sleep(hold)
	return os.Remove(w.Path)
}

// Choreographer owns the sleep/wake protocol for one node.
type Choreographer struct {
	Bus   bus.Bus
	Flags FlagStore
	// Halt enters standby. It is unconditional once called and
	// does not return in production; execution resumes only as a
	// fresh process start.
	Halt func()
	// Wake is the peer wake line, configured on the initiator only.
	Wake WakeLine
}

// RequestSleep reacts to the local "ambient condition lost" signal:
// tell the peer to sleep, then halt ourselves. The transmit error is
// returned without halting so the caller can trap visibly.
func (c *Choreographer) RequestSleep() error {
	err := c.Bus.Send(bus.Frame{ID: game.SleepID, Data: []byte{0}})
	if err != nil {
		return err
	}
	c.enterStandby()
	return nil
}

// SleepNow reacts to a received sleep command: halt without replying.
func (c *Choreographer) SleepNow() {
	c.enterStandby()
}

func (c *Choreographer) enterStandby() {
	// latch before halting: the restarted process only knows it is
	// resuming by finding these set
	if err := c.Flags.Set(FlagStandby); err != nil {
		glog.Errorf("latch standby flag: %v", err)
	}
	if err := c.Flags.Set(FlagWakeup); err != nil {
		glog.Errorf("latch wakeup flag: %v", err)
	}
	c.Halt()
}

// Boot runs first after every start and reports whether the node is
// resuming from standby. When resuming, both latched flags are
// cleared before anything else: a stale flag makes the next standby
// attempt resume instantly.
func (c *Choreographer) Boot() (resumed bool, err error) {
	resumed, err = c.Flags.IsSet(FlagStandby)
	if err != nil || !resumed {
		return
	}
	if err = c.Flags.Clear(FlagStandby); err != nil {
		return
	}
	err = c.Flags.Clear(FlagWakeup)
	return
}

// WakePeer asserts the wake pulse if this node owns the wake line.
func (c *Choreographer) WakePeer() error {
	if c.Wake == nil {
		return nil
	}
	return c.Wake.Pulse()
}
