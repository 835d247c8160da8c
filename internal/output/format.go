// Package output provides terminal output formatting utilities for the shipit CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintStepHeader prints a colored step header (e.g., "[Step 3/8] Update manifests...").
// Uses cyan for the step indicator and white for the step name.
func PrintStepHeader(out io.Writer, stepNum, totalSteps int, stepName string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[Step %d/%d]", stepNum, totalSteps)), white(stepName+"..."))
}

// PrintSuccess prints a colored success message.
// Uses green checkmark and cyan for the detail text.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintFailure prints a colored failure message.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintInfo prints a dim informational line.
func PrintInfo(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(message))
}

// PrintExecutingCommand prints the command being executed with colored styling.
// Uses magenta arrow and dim text for the command details.
func PrintExecutingCommand(out io.Writer, command string) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", magenta("→"), dim(command))
}

// PrintRule prints a dim horizontal rule labeled with the given text,
// centered in the terminal width.
func PrintRule(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	dim := color.New(color.FgMagenta, color.Faint).SprintFunc()

	padded := " " + label + " "
	lineLen := (termWidth - len(padded)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", dim(line), dim(padded), dim(line))
}
