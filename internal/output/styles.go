package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: paths, stage names, services.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for completed stages and created files.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for warnings and soft failures.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for failed stages (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (paths, stage names, services).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Stage status constants.
const (
	StatusDone    = "done"
	StatusWarning = "warning"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// StatusStyle returns the lipgloss style for a given stage status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusDone:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// Markers prefixed to command and stage report lines.
const (
	MarkerSuccess = "✔"
	MarkerFailure = "✗"
	MarkerInfo    = "→"
	MarkerWarning = "⚠"
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render(MarkerSuccess)
	return check + " " + msg
}

// FormatFailure renders a red cross with a message.
func FormatFailure(msg string) string {
	return StatusStyle(StatusFailed).Render(MarkerFailure) + " " + msg
}

// FormatInfo renders a dim arrow with a message.
func FormatInfo(msg string) string {
	return StyleDim.Render(MarkerInfo) + " " + msg
}

// FormatWarning renders a yellow warning sign with a message.
func FormatWarning(msg string) string {
	return StatusStyle(StatusWarning).Render(MarkerWarning) + " " + msg
}

// FormatStageLine renders a stage name with a color-coded status suffix.
func FormatStageLine(stage, status string) string {
	padding := 24 - len(stage)
	if padding < 2 {
		padding = 2
	}
	return StyleNoun.Render(stage) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}
