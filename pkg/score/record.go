package score

import "fmt"

// RecordCodec maps a ledger to and from its durable byte form. The
// protocol node only depends on this interface, so the ad-hoc text
// record below can be swapped for a checked binary layout without
// touching the node.
type RecordCodec interface {
	Marshal(Ledger) []byte
	Unmarshal([]byte) Ledger
}

// Text record layout constants.
const (
	// RecordSeparator joins the four decimal counters.
	RecordSeparator = ','
	// RecordTerminator ends the record.
	RecordTerminator = '\n'
	// MaxRecordScan bounds the deserialization scan. A region with
	// no terminator within the bound reads as a fresh device.
	MaxRecordScan = 256
)

// TextRecord is the reference codec: four decimal counters joined by
// commas and terminated by a newline. It carries no length prefix, no
// checksum and no version; corruption is indistinguishable from a
// blank region and reads back as zeros. That absence of validation is
// kept on purpose.
type TextRecord struct{}

// Marshal implements RecordCodec.
func (TextRecord) Marshal(l Ledger) []byte {
	return []byte(fmt.Sprintf("%d%c%d%c%d%c%d%c",
		l.InitiatorWins, RecordSeparator,
		l.ResponderWins, RecordSeparator,
		l.Ties, RecordSeparator,
		l.Invalid, RecordTerminator))
}

// Unmarshal implements RecordCodec. It scans from the start of the
// region accumulating decimal digits; a separator pushes the running
// value into the next slot, the terminator pushes the last value and
// stops. Without a terminator inside the scan bound the whole record
// is discarded and every counter defaults to zero.
func (TextRecord) Unmarshal(b []byte) Ledger {
	bound := len(b)
	if bound > MaxRecordScan {
		bound = MaxRecordScan
	}
	end := -1
	for i := 0; i < bound; i++ {
		if b[i] == RecordTerminator {
			end = i
			break
		}
	}
	if end < 0 {
		return Ledger{}
	}

	var slots [4]uint8
	var num uint32
	slot := 0
	for i := 0; i <= end && slot < len(slots); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + uint32(c-'0')
		case c == RecordSeparator || c == RecordTerminator:
			slots[slot] = uint8(num)
			num = 0
			slot++
		}
	}
	return Ledger{
		InitiatorWins: slots[0],
		ResponderWins: slots[1],
		Ties:          slots[2],
		Invalid:       slots[3],
	}
}
