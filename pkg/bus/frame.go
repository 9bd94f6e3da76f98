// Package bus models the shared broadcast bus the two nodes play over.
// A frame carries an 11-bit identifier, a kind (data vs. remote
// request) and up to 8 payload bytes, matching the classic CAN layout
// the protocol was designed against.
package bus

import (
	"errors"
	"fmt"
)

// Frame limits.
const (
	// MaxID is the ceiling for standard identifiers.
	MaxID uint16 = 0x7FF
	// MaxDataLen is the payload size limit per frame.
	MaxDataLen = 8
)

var (
	// ErrIDRange indicates the identifier exceeds MaxID.
	ErrIDRange = errors.New("identifier out of range")
	// ErrDataLen indicates the payload exceeds MaxDataLen.
	ErrDataLen = errors.New("payload too long")
)

// Frame is one discrete message on the bus.
type Frame struct {
	// ID is the identifier, at most MaxID.
	ID uint16
	// Remote marks a request-only frame carrying no data.
	Remote bool
	// Data is the payload, at most MaxDataLen bytes.
	Data []byte
}

// Validate checks the frame against bus limits.
func (f *Frame) Validate() error {
	if f.ID > MaxID {
		return ErrIDRange
	}
	if len(f.Data) > MaxDataLen {
		return ErrDataLen
	}
	return nil
}

// String renders the frame for logging.
func (f *Frame) String() string {
	kind := "data"
	if f.Remote {
		kind = "remote"
	}
	return fmt.Sprintf("frame id=0x%03X %s dlc=%d % X", f.ID, kind, len(f.Data), f.Data)
}
