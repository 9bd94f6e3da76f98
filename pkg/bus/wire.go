package bus

import "errors"

// Wire layout: a 2-byte header followed by the payload.
//
//	b0: r dddd iii   r = remote flag, dddd = dlc, iii = id bits 10..8
//	b1: id bits 7..0
//
// The header packs the remote flag and the length the same way the
// identifier field packs its high bits, so a frame is self-describing
// without any outer envelope.
const (
	headerLen  = 2
	remoteFlag = 0x80
	dlcShift   = 3
	dlcMask    = 0x0F
	idHiMask   = 0x07
)

var (
	// ErrShortFrame indicates the buffer ends inside the header.
	ErrShortFrame = errors.New("short frame")
	// ErrFrameLength indicates the buffer length disagrees with dlc.
	ErrFrameLength = errors.New("frame length mismatch")
)

// Marshal encodes the frame into wire bytes.
func (f *Frame) Marshal() ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	b := make([]byte, headerLen+len(f.Data))
	b[0] = byte(len(f.Data))<<dlcShift | byte(f.ID>>8)&idHiMask
	if f.Remote {
		b[0] |= remoteFlag
	}
	b[1] = byte(f.ID)
	copy(b[headerLen:], f.Data)
	return b, nil
}

// Unmarshal decodes wire bytes into the frame.
func (f *Frame) Unmarshal(b []byte) error {
	if len(b) < headerLen {
		return ErrShortFrame
	}
	dlc := int(b[0] >> dlcShift & dlcMask)
	if dlc > MaxDataLen {
		return ErrDataLen
	}
	if len(b) != headerLen+dlc {
		return ErrFrameLength
	}
	f.ID = uint16(b[0]&idHiMask)<<8 | uint16(b[1])
	f.Remote = b[0]&remoteFlag != 0
	f.Data = nil
	if dlc > 0 {
		f.Data = append([]byte(nil), b[headerLen:]...)
	}
	return nil
}
