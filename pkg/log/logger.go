package log

// Logger receives run events. Pass NoopLogger to disable tracing.
type Logger interface {
	// Log records a run event. Implementations must be thread-safe.
	Log(event Event)
}

// NoopLogger discards all events. Use when tracing is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
