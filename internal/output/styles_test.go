package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "done returns green", status: StatusDone, wantFG: ColorGreen},
		{name: "warning returns yellow", status: StatusWarning, wantFG: ColorYellow},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestMarkers(t *testing.T) {
	assert.True(t, strings.HasSuffix(FormatCheckmark("copied Dockerfile"), "copied Dockerfile"))
	assert.Contains(t, FormatCheckmark("x"), MarkerSuccess)
	assert.Contains(t, FormatFailure("x"), MarkerFailure)
	assert.Contains(t, FormatInfo("x"), MarkerInfo)
	assert.Contains(t, FormatWarning("x"), MarkerWarning)
}

func TestFormatStageLine(t *testing.T) {
	line := FormatStageLine("BUILD_IMAGES", StatusDone)
	assert.Contains(t, line, "BUILD_IMAGES")
	assert.Contains(t, line, StatusDone)

	long := FormatStageLine(strings.Repeat("X", 40), StatusFailed)
	assert.Contains(t, long, "  ", "minimum padding is kept for long names")
}
