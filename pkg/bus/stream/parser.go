// Package stream carries bus frames over a point-to-point byte stream,
// the direct-wire alternative to the brokered transport. The receive
// side is a resynchronizing byte parser: a corrupted length or header
// drops the current frame and hunts for the next lead byte instead of
// tearing the link down.
package stream

import (
	"github.com/moe2code/twoboards.go/pkg/bus"
)

// FrameLead marks the start of an encoded frame on the stream.
const FrameLead byte = 0x7E

// encoded frame length bounds, lead and length bytes excluded
const (
	minBody = 2
	maxBody = 2 + bus.MaxDataLen
)

type parseState int

const (
	stateLead parseState = iota // hunting for the lead byte
	stateLen                    // waiting for the body length
	stateBody                   // accumulating body bytes
)

// Parser parses bytes received from the stream.
type Parser struct {
	state   parseState
	body    []byte
	recvLen int
}

// Parse consumes one byte and returns a complete frame when one ends
// on this byte. A body that fails to unmarshal is dropped silently;
// the parser is already back at the lead hunt.
func (p *Parser) Parse(b byte) *bus.Frame {
	switch p.state {
	case stateLead:
		if b == FrameLead {
			p.state = stateLen
		}
	case stateLen:
		if b < minBody || b > maxBody {
			return p.resync(b)
		}
		p.body, p.recvLen = make([]byte, b), 0
		p.state = stateBody
	case stateBody:
		p.body[p.recvLen] = b
		p.recvLen++
		if p.recvLen >= len(p.body) {
			return p.frameReady()
		}
	}
	return nil
}

// Reset returns the parser to the lead hunt, used after stream errors.
func (p *Parser) Reset() {
	p.state, p.body = stateLead, nil
}

// resync restarts the hunt; the offending byte may itself be a lead.
func (p *Parser) resync(b byte) *bus.Frame {
	p.Reset()
	return p.Parse(b)
}

func (p *Parser) frameReady() *bus.Frame {
	body := p.body
	p.Reset()
	var f bus.Frame
	if err := f.Unmarshal(body); err != nil {
		return nil
	}
	return &f
}

// Encode prefixes a marshaled frame with the lead and length bytes.
func Encode(f bus.Frame) ([]byte, error) {
	body, err := f.Marshal()
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(body)+2)
	b = append(b, FrameLead, byte(len(body)))
	return append(b, body...), nil
}
