package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/macropad-tool/macropad-go/pkg/compile"
	"github.com/macropad-tool/macropad-go/pkg/config"
	"github.com/macropad-tool/macropad-go/pkg/profile"
)

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `macropad validate - Check a mapping document against a device profile

Usage:
  macropad validate -product <id> <mapping.yaml>

Flags:
`)
		fs.PrintDefaults()
	}

	product := fs.String("product", "", "USB product ID, e.g. 0x8842")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: mapping document path required")
		fs.Usage()
		os.Exit(1)
	}

	prof, err := parseProduct(*product)
	if err != nil {
		fatalf("%v", err)
	}

	mp, err := config.Load(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	report := compile.ValidateOnly(mp, prof)
	printReport(os.Stdout, report)
	if !report.OK() {
		os.Exit(1)
	}
	fmt.Printf("OK: valid for %s\n", prof)
}

// parseProduct resolves a -product flag value to a profile. An empty
// value is rejected here; commands that can probe hardware handle it
// themselves.
func parseProduct(s string) (profile.DeviceProfile, error) {
	if s == "" {
		return profile.DeviceProfile{}, fmt.Errorf("-product required (known: %s)", knownProducts())
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return profile.DeviceProfile{}, fmt.Errorf("bad product ID %q: %v", s, err)
	}
	return profile.Lookup(uint16(id))
}

func knownProducts() string {
	var names []string
	for _, id := range profile.ProductIDs() {
		names = append(names, fmt.Sprintf("0x%04x", id))
	}
	return strings.Join(names, ", ")
}

// printReport writes validation errors and notices line by line.
func printReport(w io.Writer, report *config.Report) {
	for _, e := range report.Errors {
		fmt.Fprintf(w, "error: %v\n", e)
	}
	for _, n := range report.Notices {
		fmt.Fprintf(w, "notice: %v\n", n)
	}
}
