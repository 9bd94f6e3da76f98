package game

import "github.com/moe2code/twoboards.go/pkg/bus"

// Frame identifiers. All stay within the standard 11-bit ceiling.
const (
	// HandAnnounceID carries the initiator's hand, 1 data byte.
	HandAnnounceID uint16 = 0x49F
	// ResultAnnounceID carries the round result, 1 data byte.
	ResultAnnounceID uint16 = 0x111
	// StatsID is a remote frame when requesting statistics and a
	// 4-byte data frame when answering.
	StatsID uint16 = 0x633
	// SleepID tells the peer to enter standby, 1 data byte whose
	// value is irrelevant.
	SleepID uint16 = 0x77B
)

// MsgType classifies a frame against the identifier table.
type MsgType int

// The four logical messages plus the unknown bucket. Traffic outside
// the table is expected on a shared bus and silently ignored.
const (
	MsgUnknown MsgType = iota
	MsgHandAnnounce
	MsgResultAnnounce
	MsgStatsRequest
	MsgStatsResponse
	MsgSleepCommand
)

var msgNames = [...]string{
	"unknown",
	"hand-announcement",
	"result-announcement",
	"stats-request",
	"stats-response",
	"sleep-command",
}

// String renders the message type for logging.
func (t MsgType) String() string {
	if int(t) < len(msgNames) {
		return msgNames[t]
	}
	return "unknown"
}

// Classify resolves a frame's identifier/kind pair against the table.
func Classify(f bus.Frame) MsgType {
	switch {
	case f.ID == HandAnnounceID && !f.Remote:
		return MsgHandAnnounce
	case f.ID == ResultAnnounceID && !f.Remote:
		return MsgResultAnnounce
	case f.ID == StatsID && f.Remote:
		return MsgStatsRequest
	case f.ID == StatsID && !f.Remote:
		return MsgStatsResponse
	case f.ID == SleepID && !f.Remote:
		return MsgSleepCommand
	}
	return MsgUnknown
}
