package log

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent(runID string, cat Category) Event {
	e := Event{
		Timestamp: time.Now().UTC(),
		RunID:     runID,
		Device:    "884x (0x8842)",
		Category:  cat,
	}
	switch cat {
	case CategoryPacket:
		e.Packet = NewPacketEvent([]byte{0x03, 0xfd, 0x01, 0x01, 0x01, 0x00, 0x01, 0x00}, 1)
	case CategoryState:
		e.StateChange = &StateChangeEvent{OldState: "opening", NewState: "programming"}
	case CategoryError:
		e.Error = &ErrorEventData{Message: "write failed", Context: "packet 3", Attempt: 2}
	}
	return e
}

func TestEventRoundTrip(t *testing.T) {
	e := sampleEvent("run-1", CategoryPacket)

	data, err := EncodeEvent(e)
	require.NoError(t, err)

	got, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, e.RunID, got.RunID)
	assert.Equal(t, e.Device, got.Device)
	assert.Equal(t, CategoryPacket, got.Category)
	require.NotNil(t, got.Packet)
	assert.Equal(t, uint8(0xfd), got.Packet.Opcode)
	assert.Equal(t, uint8(0x01), got.Packet.Position)
	assert.True(t, e.Timestamp.Equal(got.Timestamp))
}

func TestEncodeDeterministic(t *testing.T) {
	e := sampleEvent("run-1", CategoryState)
	a, err := EncodeEvent(e)
	require.NoError(t, err)
	b, err := EncodeEvent(e)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewPacketEvent(t *testing.T) {
	data := make([]byte, 65)
	data[0] = 0x03
	data[1] = 0xfd
	data[2] = 0x10
	data[3] = 0x02

	e := NewPacketEvent(data, 3)
	assert.Equal(t, uint8(0xfd), e.Opcode)
	assert.Equal(t, uint8(0x10), e.Position)
	assert.Equal(t, uint8(0x02), e.Layer)
	assert.Equal(t, 3, e.Attempt)
	assert.Equal(t, 65, e.Size)
	assert.True(t, e.Truncated)
	assert.Len(t, e.Data, maxPacketData)

	small := NewPacketEvent([]byte{0x03, 0xaa}, 1)
	assert.False(t, small.Truncated)
	assert.Equal(t, []byte{0x03, 0xaa}, small.Data)
}

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.mlog")

	l, err := NewFileLogger(path)
	require.NoError(t, err)
	l.Log(sampleEvent("run-1", CategoryState))
	l.Log(sampleEvent("run-1", CategoryPacket))
	l.Log(sampleEvent("run-2", CategoryError))
	require.NoError(t, l.Close())

	// Logging after close is a no-op.
	l.Log(sampleEvent("run-3", CategoryState))
	require.NoError(t, l.Close())

	r, err := NewReader(path)
	require.NoError(t, err)
	defer r.Close()

	var events []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, e)
	}
	require.Len(t, events, 3)
	assert.Equal(t, "run-1", events[0].RunID)
	assert.Equal(t, "run-2", events[2].RunID)
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.mlog")

	l, err := NewFileLogger(path)
	require.NoError(t, err)
	l.Log(sampleEvent("run-1", CategoryState))
	l.Log(sampleEvent("run-1", CategoryPacket))
	l.Log(sampleEvent("run-2", CategoryPacket))
	require.NoError(t, l.Close())

	cat := CategoryPacket
	r, err := NewFilteredReader(path, Filter{RunID: "run-1", Category: &cat})
	require.NoError(t, err)
	defer r.Close()

	e, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, CategoryPacket, e.Category)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestMultiLogger(t *testing.T) {
	var a, b recorder
	m := NewMultiLogger(&a, &b)
	m.Log(sampleEvent("run-1", CategoryState))

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

// recorder collects events in memory for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) Log(e Event) { r.events = append(r.events, e) }

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	a.Log(sampleEvent("run-1", CategoryPacket))
	out := buf.String()
	assert.Contains(t, out, "run_id=run-1")
	assert.Contains(t, out, "opcode=0xfd")

	buf.Reset()
	a.Log(sampleEvent("run-1", CategoryError))
	assert.Contains(t, buf.String(), "write failed")
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "PACKET", CategoryPacket.String())
	assert.Equal(t, "STATE", CategoryState.String())
	assert.Equal(t, "ERROR", CategoryError.String())
	assert.Equal(t, "UNKNOWN", Category(9).String())
}
