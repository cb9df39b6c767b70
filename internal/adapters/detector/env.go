// Package detector picks the render host for the current terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive explorer.
	ModeTUI
	// ModeLinear forces line-oriented output.
	ModeLinear
	// ModeHeadless runs without any render surface.
	ModeHeadless
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	case ModeHeadless:
		return "headless"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeLinear when stdout is not a terminal or CI is
// set, and ModeTUI otherwise.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the --output-mode flag to the detected mode.
// Unknown values fall back to autoDetected.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	case "headless", "none":
		return ModeHeadless
	default:
		return autoDetected
	}
}
