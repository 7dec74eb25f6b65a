package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/macropad-tool/macropad-go/pkg/log"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

// Session states.
const (
	stateIdle        = "idle"
	stateOpening     = "opening"
	stateProgramming = "programming"
	stateFinished    = "finished"
	stateFailed      = "failed"
)

// DefaultMaxAttempts is how often a single packet write is tried
// before the run aborts.
const DefaultMaxAttempts = 3

// DefaultPacing is the pause between consecutive packet writes. The
// firmware drops reports that arrive back to back.
const DefaultPacing = 5 * time.Millisecond

// Config tunes a Session. The zero value selects all defaults.
type Config struct {
	// MaxAttempts is the per-packet write attempt limit.
	MaxAttempts int

	// Pacing is the pause between consecutive packet writes.
	Pacing time.Duration

	// Backoff tunes the delay between retries of a failed write.
	Backoff BackoffConfig

	// Logger receives run events. Nil disables tracing.
	Logger log.Logger
}

// Session writes packet streams to one device, sequentially.
type Session struct {
	transport Transport
	cfg       Config
	logger    log.Logger

	runID string
	state string
}

// New creates a Session on the given transport.
func New(t Transport, cfg Config) *Session {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Pacing <= 0 {
		cfg.Pacing = DefaultPacing
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Session{
		transport: t,
		cfg:       cfg,
		logger:    logger,
		state:     stateIdle,
	}
}

// RunID returns the identifier of the most recent run, or "" before
// the first one.
func (s *Session) RunID() string {
	return s.runID
}

// Run opens the device for prof and writes every packet in order.
// A fresh run ID is assigned per call. Cancellation via ctx is honored
// between writes; a packet in flight always completes.
func (s *Session) Run(ctx context.Context, prof profile.DeviceProfile, packets []wire.Packet) error {
	s.runID = uuid.New().String()
	s.state = stateIdle
	s.setState(prof, stateOpening, "")

	dev, err := s.transport.Open(prof.VendorID, prof.ProductID)
	if err != nil {
		s.logError(prof, err, "open", 0)
		s.setState(prof, stateFailed, "open failed")
		return fmt.Errorf("opening %s: %w", prof, err)
	}
	defer dev.Close()

	s.setState(prof, stateProgramming, "")

	backoff := NewBackoffWithConfig(s.cfg.Backoff)
	for i, pkt := range packets {
		if err := ctx.Err(); err != nil {
			s.setState(prof, stateFailed, "canceled")
			return err
		}
		if i > 0 {
			if err := sleep(ctx, s.cfg.Pacing); err != nil {
				s.setState(prof, stateFailed, "canceled")
				return err
			}
		}

		attempt, err := s.writePacket(ctx, dev, prof, pkt, backoff)
		if err != nil {
			s.setState(prof, stateFailed, "write failed")
			return fmt.Errorf("packet %d/%d: %w", i+1, len(packets), err)
		}

		ev := log.NewPacketEvent(pkt, attempt)
		s.logger.Log(log.Event{
			Timestamp: time.Now(),
			RunID:     s.runID,
			Device:    prof.String(),
			Category:  log.CategoryPacket,
			Packet:    ev,
		})
	}

	s.setState(prof, stateFinished, "")
	return nil
}

// writePacket tries one packet up to MaxAttempts times. Returns the
// 1-based attempt that succeeded.
func (s *Session) writePacket(ctx context.Context, dev Device, prof profile.DeviceProfile, pkt wire.Packet, backoff *Backoff) (int, error) {
	var last error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, backoff.Next()); err != nil {
				return 0, err
			}
		}

		err := dev.WriteFeatureReport(pkt)
		if err == nil {
			backoff.Reset()
			return attempt, nil
		}
		last = err
		s.logError(prof, err, "write", attempt)
	}
	return 0, fmt.Errorf("after %d attempts: %w", s.cfg.MaxAttempts, last)
}

func (s *Session) setState(prof profile.DeviceProfile, state, reason string) {
	old := s.state
	s.state = state
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
		Device:    prof.String(),
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: old,
			NewState: state,
			Reason:   reason,
		},
	})
}

func (s *Session) logError(prof profile.DeviceProfile, err error, context string, attempt int) {
	s.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     s.runID,
		Device:    prof.String(),
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
			Attempt: attempt,
		},
	})
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
