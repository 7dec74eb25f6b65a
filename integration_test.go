package macropad_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropad-tool/macropad-go/pkg/compile"
	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/log"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/session"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

const mappingDoc = `
device:
  orientation: clockwise
  rows: 2
  cols: 3
  knobs: 1
layers:
  - buttons:
      - ["ctrl-a,ctrl-s", "b"]
      - ["c", "d"]
      - ["e", "f"]
    knobs:
      - {ccw: volumedown, press: mute, cw: volumeup}
  - buttons:
      - ["click", "rclick"]
      - ["wheelup", "wheeldown"]
      - ["ctrl-wheelup", "mclick"]
    knobs:
      - {ccw: left, press: enter, cw: right}
  - buttons:
      - ["100ms-f13", "f14"]
      - ["f15", "f16"]
      - ["f17", "f18"]
    knobs:
      - {ccw: "1", press: "2", cw: "3"}
`

// memDevice records every feature report it receives.
type memDevice struct {
	writes [][]byte
}

func (d *memDevice) WriteFeatureReport(data []byte) error {
	d.writes = append(d.writes, append([]byte(nil), data...))
	return nil
}

func (d *memDevice) Close() error { return nil }

type memTransport struct {
	dev *memDevice
}

func (t *memTransport) Open(vendorID, productID uint16) (session.Device, error) {
	if vendorID != profile.VendorID {
		return nil, session.NewTransportError(session.CauseNotFound, nil)
	}
	return t.dev, nil
}

// The full pipeline: parse a rotated document, compile it for the
// 0x8842 model, push it through a session and check what reached the
// fake device.
func TestProgramPipeline(t *testing.T) {
	prof, err := profile.Lookup(0x8842)
	require.NoError(t, err)

	mp, err := config.Parse([]byte(mappingDoc))
	require.NoError(t, err)
	assert.Equal(t, config.Clockwise, mp.Device.Orientation)

	packets, report, err := compile.CompileProgram(mp, prof)
	require.NoError(t, err)
	require.True(t, report.OK(), "unexpected errors: %v", report.Errors)

	// 9 mapped positions per layer, one packet each, plus finish.
	require.Len(t, packets, 9*3+1)

	dev := &memDevice{}
	tracePath := filepath.Join(t.TempDir(), "run.mlog")
	fileLogger, err := log.NewFileLogger(tracePath)
	require.NoError(t, err)

	s := session.New(&memTransport{dev: dev}, session.Config{
		Pacing: 1,
		Logger: fileLogger,
	})
	require.NoError(t, s.Run(context.Background(), prof, packets))
	require.NoError(t, fileLogger.Close())

	require.Len(t, dev.writes, len(packets))

	// The clockwise transform sends the authored bottom-left cell
	// ("e") to physical position 1.
	first := dev.writes[0]
	assert.Equal(t, uint8(0xfd), first[1])
	assert.Equal(t, uint8(1), first[2])
	assert.Equal(t, uint8(1), first[3])
	assert.Equal(t, wire.TypeKey, first[4])
	assert.Equal(t, uint8(0x08), first[9]) // e

	// Knob cw mapping lands on position 0x10.
	knob := dev.writes[6]
	assert.Equal(t, uint8(0x10), knob[2])
	assert.Equal(t, wire.TypeMedia, knob[4])
	assert.Equal(t, uint8(0xe9), knob[9]) // volumeup

	// Last write commits the programming.
	last := dev.writes[len(dev.writes)-1]
	assert.Equal(t, uint8(0xaa), last[1])

	// The trace file replays the same run: one packet event per write
	// plus the state transitions.
	r, err := log.NewReader(tracePath)
	require.NoError(t, err)
	defer r.Close()

	var packetEvents, stateEvents int
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, s.RunID(), e.RunID)
		switch {
		case e.Packet != nil:
			packetEvents++
		case e.StateChange != nil:
			stateEvents++
		}
	}
	assert.Equal(t, len(packets), packetEvents)
	assert.Equal(t, 3, stateEvents)
}

// Profiles without delay support downgrade authored delays to zero on
// the wire but still program successfully.
func TestProgramPipelineDelayDowngrade(t *testing.T) {
	prof, err := profile.Lookup(0x8880)
	require.NoError(t, err)

	mp := &config.Macropad{
		Device: config.Device{Orientation: config.Normal, Rows: 2, Cols: 3, Knobs: 1},
		Layers: []config.Layer{
			{
				Buttons: [][]string{{"500ms-ctrl-a", "b", "c"}, {"d", "e", "f"}},
				Knobs:   []config.Knob{{CCW: "down", Press: "enter", CW: "up"}},
			},
			{
				Buttons: [][]string{{"g", "h", "i"}, {"j", "k", "l"}},
				Knobs:   []config.Knob{{CCW: "left", Press: "space", CW: "right"}},
			},
			{
				Buttons: [][]string{{"m", "n", "o"}, {"p", "q", "r"}},
				Knobs:   []config.Knob{{CCW: "1", Press: "2", CW: "3"}},
			},
		},
	}

	packets, report, err := compile.CompileProgram(mp, prof)
	require.NoError(t, err)
	require.True(t, report.OK())
	require.Len(t, report.Notices, 1)

	// Delay byte is zero despite the authored 500ms prefix.
	assert.Equal(t, uint8(0x04), packets[0][9])
	assert.Zero(t, packets[0][10])
}
