// Package console is the write-only side channel describing protocol
// events. The original design transmitted log lines from inside frame
// handlers over a blocking serial port, stalling every equal-priority
// interrupt for the duration; here handlers enqueue without blocking
// and an idle-priority controller drains the buffer once the
// protocol work of the iteration is done.
package console

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/moe2code/twoboards.go/pkg/framework"
)

// DefaultCapacity is the number of pending lines held before new
// lines are dropped (and counted) instead of blocking the caller.
const DefaultCapacity = 64

// Sink receives drained lines.
type Sink interface {
	Line(string)
}

// GlogSink writes lines through glog.
type GlogSink struct{}

// Line implements Sink.
func (GlogSink) Line(s string) { glog.Info(s) }

// WriterSink writes lines to an io.Writer.
type WriterSink struct {
	W io.Writer
}

// Line implements Sink.
func (s WriterSink) Line(line string) { fmt.Fprintln(s.W, line) }

// Console buffers log lines from event handlers.
type Console struct {
	Sink Sink

	lines   chan string
	dropped uint64
}

// New creates a Console draining into glog.
func New() *Console {
	return NewWithSink(GlogSink{})
}

// NewWithSink creates a Console with a specific sink.
func NewWithSink(sink Sink) *Console {
	return &Console{
		Sink:  sink,
		lines: make(chan string, DefaultCapacity),
	}
}

// Printf enqueues a formatted line. It never blocks: when the buffer
// is full the line is dropped and counted.
func (c *Console) Printf(format string, args ...interface{}) {
	select {
	case c.lines <- fmt.Sprintf(format, args...):
	default:
		atomic.AddUint64(&c.dropped, 1)
	}
}

// Dropped reports how many lines were lost to a full buffer.
func (c *Console) Dropped() uint64 {
	return atomic.LoadUint64(&c.dropped)
}

// Control implements Controller, draining all pending lines.
func (c *Console) Control(fx.ControlContext) error {
	for {
		select {
		case line := <-c.lines:
			c.Sink.Line(line)
		default:
			return nil
		}
	}
}

// AddToLoop implements LoopAdder, installing the drain at the lowest
// priority so it never delays protocol controllers.
func (c *Console) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvDrain, c)
}
