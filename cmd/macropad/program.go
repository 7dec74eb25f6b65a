package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/macropad-tool/macropad-go/pkg/compile"
	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/hid"
	"github.com/macropad-tool/macropad-go/pkg/log"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/session"
)

func runProgram(args []string) {
	fs := flag.NewFlagSet("program", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `macropad program - Compile a mapping document and write it to the device

Usage:
  macropad program [flags] <mapping.yaml>

Flags:
`)
		fs.PrintDefaults()
	}

	product := fs.String("product", "", "USB product ID, e.g. 0x8842 (default: probe known devices)")
	tracePath := fs.String("trace", "", "Write a run trace file (CBOR)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	dryRun := fs.Bool("dry-run", false, "Compile and print packets without touching the device")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: mapping document path required")
		fs.Usage()
		os.Exit(1)
	}

	setupLogging(*logLevel)

	transport := hid.NewTransport()
	prof, err := resolveProfile(*product, transport, *dryRun)
	if err != nil {
		fatalf("%v", err)
	}

	mp, err := config.Load(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	packets, report, err := compile.CompileProgram(mp, prof)
	printReport(os.Stderr, report)
	if err != nil {
		fatalf("%v", err)
	}

	if *dryRun {
		for _, pkt := range packets {
			fmt.Println(pkt)
		}
		return
	}

	logger, closeLogger, err := buildLogger(*tracePath)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := session.New(transport, session.Config{Logger: logger})
	if err := s.Run(ctx, prof, packets); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Programmed %s (%d packets, run %s)\n", prof, len(packets), s.RunID())
}

// resolveProfile returns the profile for an explicit -product value,
// or probes every known product ID on the transport when the flag is
// empty. Dry runs require an explicit product.
func resolveProfile(product string, transport session.Transport, dryRun bool) (profile.DeviceProfile, error) {
	if product != "" || dryRun {
		return parseProduct(product)
	}

	for _, id := range profile.ProductIDs() {
		dev, err := transport.Open(profile.VendorID, id)
		if err != nil {
			continue
		}
		dev.Close()
		return profile.Lookup(id)
	}
	return profile.DeviceProfile{}, fmt.Errorf("no known device connected (known: %s)", knownProducts())
}

// buildLogger assembles the run logger: slog mirror always, trace file
// when requested.
func buildLogger(tracePath string) (log.Logger, func(), error) {
	slogAdapter := log.NewSlogAdapter(slog.Default())
	if tracePath == "" {
		return slogAdapter, func() {}, nil
	}

	fileLogger, err := log.NewFileLogger(tracePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trace file: %w", err)
	}
	logger := log.NewMultiLogger(slogAdapter, fileLogger)
	return logger, func() { _ = fileLogger.Close() }, nil
}

// setupLogging configures the default slog logger.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		fatalf("unknown log level %q", level)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
