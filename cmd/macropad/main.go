// Command macropad programs ch57x-family USB macropads from a YAML
// mapping document.
//
// Usage:
//
//	macropad <command> [flags]
//
// Commands:
//
//	show-keys   List every supported key, modifier, media and mouse name
//	validate    Check a mapping document against a device profile
//	program     Compile a mapping document and write it to the device
//	led         Set the backlight mode of one layer
//	trace       View a run trace file
//
// Examples:
//
//	# Check a document for the 0x8842 model without touching hardware
//	macropad validate -product 0x8842 mapping.yaml
//
//	# Program the first connected known device, archiving the run
//	macropad program -trace run.mlog mapping.yaml
//
//	# Backlight always on in red, layer 1
//	macropad led -mode 1 -color red
//
//	# Inspect an archived run
//	macropad trace -category packet run.mlog
package main

import (
	"fmt"
	"os"
)

const usage = `macropad - ch57x macropad configuration tool

Usage:
  macropad <command> [flags]

Commands:
  show-keys   List every supported key, modifier, media and mouse name
  validate    Check a mapping document against a device profile
  program     Compile a mapping document and write it to the device
  led         Set the backlight mode of one layer
  trace       View a run trace file

Use "macropad <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "show-keys":
		runShowKeys(args)
	case "validate":
		runValidate(args)
	case "program":
		runProgram(args)
	case "led":
		runLED(args)
	case "trace":
		runTrace(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
