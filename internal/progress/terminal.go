package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// Symbols is the marker set used for step status output.
type Symbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

var (
	unicodeSymbols = Symbols{
		Checkmark: "✓",
		Failure:   "✗",
		// Braille spinner: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		SpinnerSet: 14,
	}
	asciiSymbols = Symbols{
		Checkmark: "[OK]",
		Failure:   "[FAIL]",
		// ASCII spinner: | / - \
		SpinnerSet: 9,
	}
)

// DetectTerminalCapabilities probes stdout and the environment. NO_COLOR
// disables color, SHIPIT_ASCII=1 forces the ASCII symbol set, and a
// non-TTY stdout disables the spinner entirely.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && os.Getenv("NO_COLOR") == "",
		SupportsUnicode: isTTY && os.Getenv("SHIPIT_ASCII") != "1",
		Width:           width,
	}
}

// SelectSymbols returns the symbol set matching the terminal capabilities.
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
