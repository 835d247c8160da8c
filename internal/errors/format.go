package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// palette holds the styling functions used when rendering an error.
type palette struct {
	label    func(a ...any) string
	message  func(a ...any) string
	category func(a ...any) string
	fix      func(a ...any) string
	bullet   func(a ...any) string
}

var colorPalette = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
}

var plainPalette = palette{
	label:    fmt.Sprint,
	message:  fmt.Sprint,
	category: fmt.Sprint,
	fix:      fmt.Sprint,
	bullet:   fmt.Sprint,
}

// FormatError renders a CLIError for the terminal. Colors degrade
// automatically when stdout is not a terminal (fatih/color handles this).
func FormatError(err *CLIError) string {
	return render(err, colorPalette)
}

// FormatErrorPlain renders a CLIError without any styling.
func FormatErrorPlain(err *CLIError) string {
	return render(err, plainPalette)
}

func render(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.fix("To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
