// Package progress renders step-by-step progress for long-running commands,
// degrading to plain line output when stdout is not a terminal.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// Display shows a spinner for the active step on a TTY, and plain
// "label..." lines otherwise. Only one step is active at a time.
type Display struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols Symbols
	spin    *spinner.Spinner
	label   string
}

// NewDisplay creates a Display writing to out with the given capabilities.
func NewDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins showing progress for the named step. Any previously active
// spinner is stopped first.
func (d *Display) Start(label string) {
	d.stopSpinner()
	d.label = label

	if !d.caps.IsTTY {
		fmt.Fprintf(d.out, "%s...\n", label)
		return
	}

	s := spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(d.out))
	s.Suffix = " " + label
	if d.caps.SupportsColor {
		_ = s.Color("cyan")
	}
	s.Start()
	d.spin = s
}

// Complete stops the active spinner and prints a success marker for the step.
func (d *Display) Complete(detail string) {
	d.stopSpinner()

	mark := d.symbols.Checkmark
	if d.caps.SupportsColor {
		mark = color.New(color.FgGreen, color.Bold).Sprint(mark)
	}
	line := d.label
	if detail != "" {
		line = detail
	}
	fmt.Fprintf(d.out, "%s %s\n", mark, line)
}

// Fail stops the active spinner and prints a failure marker for the step.
func (d *Display) Fail(detail string) {
	d.stopSpinner()

	mark := d.symbols.Failure
	if d.caps.SupportsColor {
		mark = color.New(color.FgRed, color.Bold).Sprint(mark)
	}
	line := d.label
	if detail != "" {
		line = detail
	}
	fmt.Fprintf(d.out, "%s %s\n", mark, line)
}

func (d *Display) stopSpinner() {
	if d.spin != nil {
		d.spin.Stop()
		d.spin = nil
	}
}
