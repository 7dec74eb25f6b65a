// Package log captures device programming runs as structured events.
//
// It is separate from operational logging (slog): a run trace is a
// complete machine-readable record of every packet written to a
// device, suitable for archiving and later inspection.
//
// # Basic Usage
//
// Session consumers provide a Logger implementation:
//
//	// For development: mirror events to the console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For archival: write a binary trace file
//	logger, _ := log.NewFileLogger("run.mlog")
//
//	// Both at once
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Trace files are a CBOR stream with integer keys, one Event per
// record. Reader streams events back out, optionally filtered.
package log
