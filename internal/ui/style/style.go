// Package style provides the brand colors and icons shared by the logger
// and the renderers.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/elab/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Outcome returns the icon and color used to show a validation outcome.
func Outcome(kind domain.OutcomeKind) (string, lipgloss.Color) {
	switch kind {
	case domain.OutcomeValid:
		return Check, Green
	case domain.OutcomeInvalid:
		return Warning, Yellow
	default:
		return Cross, Red
	}
}
