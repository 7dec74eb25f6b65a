package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter mirrors run events to an slog.Logger. Useful for
// development when you want to watch a run on the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("run_id", event.RunID),
		slog.String("category", event.Category.String()),
	}

	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	switch {
	case event.Packet != nil:
		attrs = append(attrs,
			slog.String("opcode", fmt.Sprintf("0x%02x", event.Packet.Opcode)),
			slog.Int("attempt", event.Packet.Attempt),
			slog.Int("size", event.Packet.Size),
		)
		if event.Packet.Position != 0 {
			attrs = append(attrs,
				slog.Uint64("position", uint64(event.Packet.Position)),
				slog.Uint64("layer", uint64(event.Packet.Layer)),
			)
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Attempt > 0 {
			attrs = append(attrs, slog.Int("attempt", event.Error.Attempt))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "run", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
