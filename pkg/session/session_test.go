package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropad-tool/macropad-go/pkg/log"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

// fakeDevice records writes and fails on demand.
type fakeDevice struct {
	writes   [][]byte
	failures int // fail this many writes before succeeding
	closed   int
	onWrite  func()
}

func (d *fakeDevice) WriteFeatureReport(data []byte) error {
	if d.onWrite != nil {
		d.onWrite()
	}
	if d.failures > 0 {
		d.failures--
		return NewTransportError(CauseWrite, errors.New("EIO"))
	}
	d.writes = append(d.writes, append([]byte(nil), data...))
	return nil
}

func (d *fakeDevice) Close() error {
	d.closed++
	return nil
}

// fakeTransport hands out a fixed device or an open error.
type fakeTransport struct {
	dev     *fakeDevice
	openErr error
	opened  []uint16
}

func (t *fakeTransport) Open(vendorID, productID uint16) (Device, error) {
	t.opened = append(t.opened, productID)
	if t.openErr != nil {
		return nil, t.openErr
	}
	return t.dev, nil
}

// recorder collects run events.
type recorder struct {
	events []log.Event
}

func (r *recorder) Log(e log.Event) { r.events = append(r.events, e) }

func (r *recorder) states() []string {
	var out []string
	for _, e := range r.events {
		if e.StateChange != nil {
			out = append(out, e.StateChange.NewState)
		}
	}
	return out
}

func testProfile(t *testing.T) profile.DeviceProfile {
	t.Helper()
	p, err := profile.Lookup(0x8842)
	require.NoError(t, err)
	return p
}

func testPackets(prof profile.DeviceProfile, n int) []wire.Packet {
	out := make([]wire.Packet, n)
	for i := range out {
		out[i] = wire.EncodeFinish(prof)
		out[i][2] = uint8(i)
	}
	return out
}

func fastConfig(logger log.Logger) Config {
	return Config{
		Pacing:  time.Microsecond,
		Backoff: BackoffConfig{Initial: time.Microsecond, Max: time.Millisecond},
		Logger:  logger,
	}
}

func TestRunWritesAllPacketsInOrder(t *testing.T) {
	prof := testProfile(t)
	dev := &fakeDevice{}
	tr := &fakeTransport{dev: dev}
	rec := &recorder{}
	s := New(tr, fastConfig(rec))

	packets := testPackets(prof, 4)
	err := s.Run(context.Background(), prof, packets)
	require.NoError(t, err)

	require.Len(t, dev.writes, 4)
	for i, w := range dev.writes {
		assert.Equal(t, uint8(i), w[2])
	}
	assert.Equal(t, 1, dev.closed)
	assert.Equal(t, []uint16{0x8842}, tr.opened)
	assert.Equal(t, []string{"opening", "programming", "finished"}, rec.states())
	assert.NotEmpty(t, s.RunID())
}

func TestRunRetriesFailedWrite(t *testing.T) {
	prof := testProfile(t)
	dev := &fakeDevice{failures: 2}
	rec := &recorder{}
	s := New(&fakeTransport{dev: dev}, fastConfig(rec))

	err := s.Run(context.Background(), prof, testPackets(prof, 1))
	require.NoError(t, err)
	require.Len(t, dev.writes, 1)

	var packetEvents []*log.PacketEvent
	for _, e := range rec.events {
		if e.Packet != nil {
			packetEvents = append(packetEvents, e.Packet)
		}
	}
	require.Len(t, packetEvents, 1)
	assert.Equal(t, 3, packetEvents[0].Attempt)

	var errorEvents int
	for _, e := range rec.events {
		if e.Error != nil {
			errorEvents++
		}
	}
	assert.Equal(t, 2, errorEvents)
}

func TestRunAbortsAfterExhaustedRetries(t *testing.T) {
	prof := testProfile(t)
	dev := &fakeDevice{failures: 3}
	rec := &recorder{}
	s := New(&fakeTransport{dev: dev}, fastConfig(rec))

	err := s.Run(context.Background(), prof, testPackets(prof, 2))
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, CauseWrite, te.Cause)
	assert.Contains(t, err.Error(), "packet 1/2")

	assert.Empty(t, dev.writes)
	assert.Equal(t, 1, dev.closed)
	assert.Equal(t, []string{"opening", "programming", "failed"}, rec.states())
}

func TestRunOpenFailure(t *testing.T) {
	prof := testProfile(t)
	rec := &recorder{}
	tr := &fakeTransport{openErr: NewTransportError(CauseNotFound, nil)}
	s := New(tr, fastConfig(rec))

	err := s.Run(context.Background(), prof, testPackets(prof, 1))
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, CauseNotFound, te.Cause)
	assert.Equal(t, []string{"opening", "failed"}, rec.states())
}

func TestRunHonorsCancellationBetweenWrites(t *testing.T) {
	prof := testProfile(t)
	ctx, cancel := context.WithCancel(context.Background())

	dev := &fakeDevice{}
	dev.onWrite = func() {
		// Cancel while the first write is in flight; the write still
		// completes, the next one must not start.
		cancel()
	}
	s := New(&fakeTransport{dev: dev}, fastConfig(log.NoopLogger{}))

	err := s.Run(ctx, prof, testPackets(prof, 3))
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, dev.writes, 1)
}

func TestRunIDChangesPerRun(t *testing.T) {
	prof := testProfile(t)
	dev := &fakeDevice{}
	s := New(&fakeTransport{dev: dev}, fastConfig(nil))

	require.NoError(t, s.Run(context.Background(), prof, testPackets(prof, 1)))
	first := s.RunID()
	require.NoError(t, s.Run(context.Background(), prof, testPackets(prof, 1)))
	assert.NotEqual(t, first, s.RunID())
}

func TestTransportError(t *testing.T) {
	inner := errors.New("EACCES")
	err := NewTransportError(CausePermission, inner)
	assert.Equal(t, "permission denied: EACCES", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewTransportError(CauseNotFound, nil)
	assert.Equal(t, "device not found", bare.Error())
}

func TestBackoff(t *testing.T) {
	b := NewBackoffWithConfig(BackoffConfig{
		Initial:    10 * time.Millisecond,
		Max:        40 * time.Millisecond,
		Multiplier: 2,
	})

	assert.Equal(t, 10*time.Millisecond, b.Next())
	assert.Equal(t, 20*time.Millisecond, b.Next())
	assert.Equal(t, 40*time.Millisecond, b.Next())
	assert.Equal(t, 40*time.Millisecond, b.Next())
	assert.Equal(t, 4, b.Attempts())

	b.Reset()
	assert.Equal(t, 0, b.Attempts())
	assert.Equal(t, 10*time.Millisecond, b.Next())
}

func TestBackoffDefaults(t *testing.T) {
	b := NewBackoff()
	assert.Equal(t, InitialBackoff, b.Next())
}
