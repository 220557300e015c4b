package style

import (
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// OutcomeStyle returns the style used to print an outcome
func OutcomeStyle(o types.Outcome) lipgloss.Style {
	switch o {
	case types.OutcomeWritten:
		return WrittenStyle
	case types.OutcomeSkipped:
		return SkippedStyle
	case types.OutcomeConflictText, types.OutcomeConflictBinary:
		return ConflictStyle
	case types.OutcomeWrittenAside:
		return AsideStyle
	default:
		return MutedStyle
	}
}

// Indicator returns the one character marker printed before an outcome
func Indicator(o types.Outcome) string {
	switch o {
	case types.OutcomeWritten:
		return WrittenStyle.Render("+")
	case types.OutcomeSkipped:
		return SkippedStyle.Render("=")
	case types.OutcomeConflictText, types.OutcomeConflictBinary:
		return ConflictStyle.Render("!")
	case types.OutcomeWrittenAside:
		return AsideStyle.Render("~")
	default:
		return MutedStyle.Render("•")
	}
}

// SetColorEnabled switches styled output on or off for the whole process.
// When enabled the profile is detected from the terminal.
func SetColorEnabled(enabled bool) {
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
