package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/macropad-tool/macropad-go/pkg/keymap"
	"github.com/macropad-tool/macropad-go/pkg/profile"
	"github.com/macropad-tool/macropad-go/pkg/wire"
)

func runShowKeys(args []string) {
	fs := flag.NewFlagSet("show-keys", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `macropad show-keys - List every supported name

Usage:
  macropad show-keys [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	section := fs.String("section", "", "Only one section (modifiers, keys, media, mouse, colors, devices)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if err := showKeys(os.Stdout, *section); err != nil {
		fatalf("%v", err)
	}
}

// showKeys prints the name tables. An empty section selects all.
func showKeys(w io.Writer, section string) error {
	switch section {
	case "", "modifiers", "keys", "media", "mouse", "colors", "devices":
	default:
		return fmt.Errorf("unknown section %q", section)
	}
	all := section == ""

	if all || section == "modifiers" {
		fmt.Fprintln(w, "Modifiers:")
		for _, names := range keymap.ModifierNames() {
			fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
		}
	}

	if all || section == "keys" {
		fmt.Fprintln(w, "Keys:")
		for _, name := range keymap.KeyNames() {
			fmt.Fprintf(w, "  %s\n", name)
		}
		fmt.Fprintln(w, "  <N>  (custom HID usage code, decimal)")
	}

	if all || section == "media" {
		fmt.Fprintln(w, "Media:")
		for _, names := range keymap.MediaNames() {
			fmt.Fprintf(w, "  %s\n", strings.Join(names, ", "))
		}
	}

	if all || section == "mouse" {
		fmt.Fprintln(w, "Mouse:")
		fmt.Fprintln(w, "  click, rclick, mclick  (combine with +, e.g. click+rclick)")
		fmt.Fprintln(w, "  wheelup, wheeldown")
	}

	if all || section == "colors" {
		fmt.Fprintln(w, "LED colors:")
		fmt.Fprintf(w, "  %s\n", strings.Join(wire.LEDColorNames(), ", "))
	}

	if all || section == "devices" {
		fmt.Fprintln(w, "Devices:")
		for _, id := range profile.ProductIDs() {
			p, err := profile.Lookup(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s: %dx%d grid, %d knobs\n", p, p.Rows, p.Cols, p.Knobs)
		}
	}

	return nil
}
