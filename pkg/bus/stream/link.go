package stream

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"

	"github.com/golang/glog"

	"github.com/moe2code/twoboards.go/pkg/bus"
	fx "github.com/moe2code/twoboards.go/pkg/framework"
)

// ErrNotReady indicates the link is not connected yet.
var ErrNotReady = errors.New("link not ready")

// Link is a bus.Bus over one point-to-point byte stream. One side
// listens and the other dials; the protocol on top is symmetric.
type Link struct {
	Addr   string
	Listen bool

	handler    bus.Handler
	errHandler bus.ErrorHandler

	lock sync.Mutex
	conn net.Conn
}

// Dial creates a Link connecting to the peer's address. The connection
// is established when the link runs.
func Dial(addr string) *Link {
	return &Link{Addr: addr}
}

// NewListener creates a Link waiting for the peer to dial in.
func NewListener(addr string) *Link {
	return &Link{Addr: addr, Listen: true}
}

// Name implements Named.
func (l *Link) Name() string {
	return "link/" + l.Addr
}

// Send implements bus.Bus.
func (l *Link) Send(f bus.Frame) error {
	b, err := Encode(f)
	if err != nil {
		return err
	}
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.conn == nil {
		return ErrNotReady
	}
	_, err = l.conn.Write(b)
	return err
}

// Notify implements bus.Bus.
func (l *Link) Notify(h bus.Handler) {
	l.handler = h
}

// NotifyError implements bus.ErrorNotifier.
func (l *Link) NotifyError(h bus.ErrorHandler) {
	l.errHandler = h
}

// Run implements Runnable. It establishes the stream, then reads and
// parses until the context is canceled or the peer goes away.
func (l *Link) Run(ctx context.Context) error {
	conn, err := l.connect(ctx)
	if err != nil {
		return err
	}
	l.lock.Lock()
	l.conn = conn
	l.lock.Unlock()
	defer func() {
		l.lock.Lock()
		l.conn = nil
		l.lock.Unlock()
	}()
	return fx.RunWithContextCloser(ctx, conn, func() error {
		return l.readLoop(conn)
	})
}

// AddToLoop implements LoopAdder.
func (l *Link) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(l)
}

func (l *Link) connect(ctx context.Context) (net.Conn, error) {
	if !l.Listen {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", l.Addr)
	}
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		return nil, err
	}
	defer ln.Close()
	glog.Infof("waiting for peer on %s", l.Addr)
	var conn net.Conn
	err = fx.RunWithContextCloser(ctx, ln, func() (acceptErr error) {
		conn, acceptErr = ln.Accept()
		return
	})
	return conn, err
}

func (l *Link) readLoop(conn net.Conn) error {
	var parser Parser
	r := bufio.NewReader(conn)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if h := l.errHandler; h != nil {
				h(err)
			}
			return err
		}
		if f := parser.Parse(b); f != nil {
			if h := l.handler; h != nil {
				h(*f)
			}
		}
	}
}
