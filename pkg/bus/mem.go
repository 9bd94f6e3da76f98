package bus

import "sync"

// Mem is an in-process broadcast bus. Every frame sent from one port
// is delivered synchronously to all other ports, which is what a
// shared two-node bus looks like without a transport in between.
// It exists for tests and loopback runs.
type Mem struct {
	lock  sync.Mutex
	ports []*Port
}

// NewMem creates a Mem bus.
func NewMem() *Mem {
	return &Mem{}
}

// Join attaches a new port to the bus.
func (m *Mem) Join() *Port {
	p := &Port{mem: m}
	m.lock.Lock()
	m.ports = append(m.ports, p)
	m.lock.Unlock()
	return p
}

// Port is one node's attachment to a Mem bus.
type Port struct {
	mem     *Mem
	handler Handler
}

// Send implements Bus. The frame is validated against bus limits and
// delivered to every other port.
func (p *Port) Send(f Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	p.mem.lock.Lock()
	ports := append([]*Port(nil), p.mem.ports...)
	p.mem.lock.Unlock()
	for _, peer := range ports {
		if peer == p || peer.handler == nil {
			continue
		}
		peer.handler(f)
	}
	return nil
}

// Notify implements Bus.
func (p *Port) Notify(h Handler) {
	p.handler = h
}
