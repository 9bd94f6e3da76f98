package input

import (
	"context"
	"os"
	"os/signal"

	fx "github.com/moe2code/twoboards.go/pkg/framework"
)

// FileLine reads a digital line from the filesystem: the line is
// active while the file exists. It is the process-world stand-in for
// a GPIO input pin; holding the "button" is creating the file.
type FileLine struct {
	Path string
}

// Read implements Line.
func (f *FileLine) Read() bool {
	_, err := os.Stat(f.Path)
	return err == nil
}

// SignalEdge posts a message to the loop whenever an OS signal
// arrives, standing in for an edge-triggered interrupt line.
type SignalEdge struct {
	Signal  os.Signal
	Message fx.Message

	loop *fx.Loop
}

// AddToLoop implements LoopAdder.
func (s *SignalEdge) AddToLoop(loop *fx.Loop) {
	s.loop = loop
	loop.AddRunnable(s)
}

// Run implements Runnable.
func (s *SignalEdge) Run(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, s.Signal)
	defer signal.Stop(sigCh)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigCh:
			s.loop.PostMessage(s.Message)
			s.loop.TriggerNext()
		}
	}
}
