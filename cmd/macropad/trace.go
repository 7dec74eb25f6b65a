package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/macropad-tool/macropad-go/pkg/log"
)

func runTrace(args []string) {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `macropad trace - View a run trace file

Usage:
  macropad trace [flags] <run.mlog>

Flags:
`)
		fs.PrintDefaults()
	}

	runID := fs.String("run-id", "", "Filter by run ID")
	category := fs.String("category", "", "Filter by category (packet, state, error)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter := log.Filter{RunID: *runID}
	if *category != "" {
		c, err := parseCategory(*category)
		if err != nil {
			fatalf("%v", err)
		}
		filter.Category = &c
	}

	if err := viewTrace(os.Stdout, fs.Arg(0), filter); err != nil {
		fatalf("%v", err)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch s {
	case "packet":
		return log.CategoryPacket, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category %q (known: packet, state, error)", s)
	}
}

// viewTrace streams matching events in a human-readable line format.
func viewTrace(w io.Writer, path string, filter log.Filter) error {
	r, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		e, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		printEvent(w, e)
	}
}

func printEvent(w io.Writer, e log.Event) {
	ts := e.Timestamp.Format("15:04:05.000000")
	prefix := fmt.Sprintf("%s %-6s %s", ts, e.Category, shortID(e.RunID))

	switch {
	case e.Packet != nil:
		fmt.Fprintf(w, "%s opcode=0x%02x position=0x%02x layer=%d attempt=%d size=%d\n",
			prefix, e.Packet.Opcode, e.Packet.Position, e.Packet.Layer, e.Packet.Attempt, e.Packet.Size)
	case e.StateChange != nil:
		if e.StateChange.Reason != "" {
			fmt.Fprintf(w, "%s %s -> %s (%s)\n", prefix, e.StateChange.OldState, e.StateChange.NewState, e.StateChange.Reason)
		} else {
			fmt.Fprintf(w, "%s %s -> %s\n", prefix, e.StateChange.OldState, e.StateChange.NewState)
		}
	case e.Error != nil:
		fmt.Fprintf(w, "%s %s: %s (attempt %d)\n", prefix, e.Error.Context, e.Error.Message, e.Error.Attempt)
	default:
		fmt.Fprintf(w, "%s (empty event)\n", prefix)
	}
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
