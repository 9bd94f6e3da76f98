package stream

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moe2code/twoboards.go/pkg/bus"
)

func feed(t *testing.T, p *Parser, b []byte) (frames []bus.Frame) {
	t.Helper()
	for _, c := range b {
		if f := p.Parse(c); f != nil {
			frames = append(frames, *f)
		}
	}
	return
}

func encode(t *testing.T, f bus.Frame) []byte {
	t.Helper()
	b, err := Encode(f)
	require.NoError(t, err)
	return b
}

func TestParseSingleFrame(t *testing.T) {
	var p Parser
	sent := bus.Frame{ID: 0x49F, Data: []byte{2}}
	frames := feed(t, &p, encode(t, sent))
	require.Equal(t, []bus.Frame{sent}, frames)
}

func TestParseBackToBackFrames(t *testing.T) {
	var p Parser
	a := bus.Frame{ID: 0x111, Data: []byte{3}}
	b := bus.Frame{ID: 0x633, Remote: true}
	c := bus.Frame{ID: 0x633, Data: []byte{1, 2, 3, 4}}
	stream := append(encode(t, a), encode(t, b)...)
	stream = append(stream, encode(t, c)...)
	require.Equal(t, []bus.Frame{a, b, c}, feed(t, &p, stream))
}

func TestParseSkipsLeadingGarbage(t *testing.T) {
	var p Parser
	sent := bus.Frame{ID: 0x77B, Data: []byte{0}}
	stream := append([]byte{0x00, 0x42, 0x13}, encode(t, sent)...)
	require.Equal(t, []bus.Frame{sent}, feed(t, &p, stream))
}

func TestParseResyncOnBadLength(t *testing.T) {
	var p Parser
	sent := bus.Frame{ID: 0x49F, Data: []byte{1}}

	// length byte out of bounds drops the frame and resumes hunting
	stream := append([]byte{FrameLead, 0xC8}, encode(t, sent)...)
	require.Equal(t, []bus.Frame{sent}, feed(t, &p, stream))

	// the offending byte may itself be the next lead
	stream = append([]byte{FrameLead, FrameLead}, encode(t, sent)[1:]...)
	require.Equal(t, []bus.Frame{sent}, feed(t, &p, stream))
}

func TestParseDropsMalformedBody(t *testing.T) {
	var p Parser
	// declared body length disagrees with the header's data length
	frames := feed(t, &p, []byte{FrameLead, 3, 0x0C, 0x9F, 0x00})
	require.Empty(t, frames)

	// the parser recovers for the next frame
	sent := bus.Frame{ID: 0x49F, Data: []byte{0}}
	require.Equal(t, []bus.Frame{sent}, feed(t, &p, encode(t, sent)))
}

func TestParseResetMidBody(t *testing.T) {
	var p Parser
	feed(t, &p, []byte{FrameLead, 3, 0x0C})
	p.Reset()
	sent := bus.Frame{ID: 0x111, Data: []byte{2}}
	require.Equal(t, []bus.Frame{sent}, feed(t, &p, encode(t, sent)))
}
