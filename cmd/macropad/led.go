package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/macropad-tool/macropad-go/pkg/compile"
	"github.com/macropad-tool/macropad-go/pkg/hid"
	"github.com/macropad-tool/macropad-go/pkg/session"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

func runLED(args []string) {
	fs := flag.NewFlagSet("led", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `macropad led - Set the backlight mode of one layer

Modes:
  0 - backlight off
  1 - backlight always on
  2 - shock effect on key press
  3 - alternate shock effect on key press
  4 - light up pressed key
  5 - breathing effect

Usage:
  macropad led [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	product := fs.String("product", "", "USB product ID, e.g. 0x8842 (default: probe known devices)")
	mode := fs.Uint("mode", 1, "LED mode (0-5)")
	layer := fs.Uint("layer", 1, "Target layer (1-3)")
	color := fs.String("color", "red", "Backlight color")
	tracePath := fs.String("trace", "", "Write a run trace file (CBOR)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	c, ok := wire.LookupLEDColor(*color)
	if !ok {
		fatalf("unknown color %q (known: %v)", *color, wire.LEDColorNames())
	}
	if *mode > 255 || *layer > 255 {
		fatalf("mode and layer must be small integers")
	}

	transport := hid.NewTransport()
	prof, err := resolveProfile(*product, transport, false)
	if err != nil {
		fatalf("%v", err)
	}

	pkt, err := compile.CompileLED(prof, uint8(*mode), uint8(*layer), c)
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLogger, err := buildLogger(*tracePath)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := session.New(transport, session.Config{Logger: logger})
	if err := s.Run(ctx, prof, []wire.Packet{pkt, wire.EncodeFinish(prof)}); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("LED mode %d (%s) set on %s layer %d\n", *mode, *color, prof, *layer)
}
