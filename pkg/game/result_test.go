package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moe2code/twoboards.go/pkg/bus"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name      string
		initiator Hand
		responder Hand
		expect    Result
	}{
		{"rock vs paper", Rock, Paper, ResponderWins},
		{"rock vs scissors", Rock, Scissors, InitiatorWins},
		{"paper vs rock", Paper, Rock, InitiatorWins},
		{"paper vs scissors", Paper, Scissors, ResponderWins},
		{"scissors vs rock", Scissors, Rock, ResponderWins},
		{"scissors vs paper", Scissors, Paper, InitiatorWins},
		{"rock tie", Rock, Rock, Tie},
		{"paper tie", Paper, Paper, Tie},
		{"scissors tie", Scissors, Scissors, Tie},
		{"initiator off-domain", Hand(3), Rock, Invalid},
		{"responder off-domain", Rock, Hand(200), Invalid},
		{"both off-domain", Hand(7), Hand(9), Invalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Resolve(tc.initiator, tc.responder))
		})
	}
}

func TestResolveSymmetry(t *testing.T) {
	hands := []Hand{Rock, Paper, Scissors}
	for _, a := range hands {
		for _, b := range hands {
			got := Resolve(a, b)
			swapped := Resolve(b, a)
			require.NotEqual(t, Invalid, got)
			if a == b {
				require.Equal(t, Tie, got)
				require.Equal(t, Tie, swapped)
				continue
			}
			// the winner keeps winning under swap-and-relabel
			require.NotEqual(t, Tie, got)
			switch got {
			case InitiatorWins:
				require.Equal(t, ResponderWins, swapped)
			case ResponderWins:
				require.Equal(t, InitiatorWins, swapped)
			}
		}
	}
}

func TestHandCodec(t *testing.T) {
	for _, h := range []Hand{Rock, Paper, Scissors} {
		got, err := DecodeHand(EncodeHand(h))
		require.NoError(t, err)
		require.Equal(t, h, got)
	}
	for _, b := range []byte{3, 4, 0xFF} {
		_, err := DecodeHand(b)
		require.Error(t, err)
	}
}

func TestResultCodec(t *testing.T) {
	for _, r := range []Result{InitiatorWins, ResponderWins, Tie, Invalid} {
		got, err := DecodeResult(EncodeResult(r))
		require.NoError(t, err)
		require.Equal(t, r, got)
	}
	for _, b := range []byte{0, 5, 0xFF} {
		_, err := DecodeResult(b)
		require.Error(t, err)
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		frame  bus.Frame
		expect MsgType
	}{
		{"hand", bus.Frame{ID: HandAnnounceID, Data: []byte{0}}, MsgHandAnnounce},
		{"result", bus.Frame{ID: ResultAnnounceID, Data: []byte{2}}, MsgResultAnnounce},
		{"stats request", bus.Frame{ID: StatsID, Remote: true}, MsgStatsRequest},
		{"stats response", bus.Frame{ID: StatsID, Data: []byte{3, 5, 2, 1}}, MsgStatsResponse},
		{"sleep", bus.Frame{ID: SleepID, Data: []byte{0}}, MsgSleepCommand},
		{"hand as remote", bus.Frame{ID: HandAnnounceID, Remote: true}, MsgUnknown},
		{"sleep as remote", bus.Frame{ID: SleepID, Remote: true}, MsgUnknown},
		{"foreign id", bus.Frame{ID: 0x123, Data: []byte{1}}, MsgUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expect, Classify(tc.frame))
		})
	}
}
