package mqtt

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/bus"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
)

// FrameTopic is the topic segment all frames travel under. One frame
// topic is one bus.
const FrameTopic = "frames"

// Bus implements bus.Bus over a Queue.
type Bus struct {
	Queue  *Queue
	Origin string

	handler    bus.Handler
	errHandler bus.ErrorHandler
}

// NewBus creates a Bus from a broker URL and an origin identity.
func NewBus(brokerURL, origin string) (*Bus, error) {
	if origin == "" || strings.ContainsAny(origin, "/+#") {
		return nil, fmt.Errorf("invalid origin %q", origin)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if opts.ClientID == "" {
		opts.SetClientID("twoboards:" + origin)
	}
	return &Bus{Queue: NewQueue(opts, topicPrefix), Origin: origin}, nil
}

// Name implements Named.
func (b *Bus) Name() string {
	return "bus/" + b.Origin
}

// Send implements bus.Bus.
func (b *Bus) Send(f bus.Frame) error {
	payload, err := f.Marshal()
	if err != nil {
		return err
	}
	token := b.Queue.Pub(FrameTopic+"/"+b.Origin, payload)
	token.Wait()
	return token.Error()
}

// Notify implements bus.Bus.
func (b *Bus) Notify(h bus.Handler) {
	b.handler = h
}

// NotifyError implements bus.ErrorNotifier.
func (b *Bus) NotifyError(h bus.ErrorHandler) {
	b.errHandler = h
}

// Run implements Runnable. It connects the client, subscribes all
// origins but its own and holds the subscription until canceled.
func (b *Bus) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("bus connect: %v", err)
	}
	b.Queue.Sub(FrameTopic+"/+", b.dispatch)
	<-ctx.Done()
	b.Queue.Close()
	return ctx.Err()
}

// AddToLoop implements LoopAdder.
func (b *Bus) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(b)
}

func (b *Bus) dispatch(topic string, payload []byte) {
	if topic == FrameTopic+"/"+b.Origin {
		// own transmission echoed back by the broker
		return
	}
	var f bus.Frame
	if err := f.Unmarshal(payload); err != nil {
		glog.Warningf("drop malformed frame on %q: %v", topic, err)
		if h := b.errHandler; h != nil {
			h(err)
		}
		return
	}
	if h := b.handler; h != nil {
		h(f)
	}
}
