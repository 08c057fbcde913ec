package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathsheet/internal/ui/theme"
)

// UsageMeter shows how much of the free allowance has been used.
type UsageMeter struct {
	Used  int
	Max   int
	Width int
}

// NewUsageMeter creates a meter of the given total width.
func NewUsageMeter(used, limit, width int) UsageMeter {
	return UsageMeter{Used: used, Max: limit, Width: width}
}

// View renders the meter followed by "used/max".
func (m UsageMeter) View() string {
	suffix := fmt.Sprintf("  %d/%d free", m.Used, m.Max)

	barWidth := m.Width - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := 0
	if m.Max > 0 {
		filled = barWidth * m.Used / m.Max
	} else {
		filled = barWidth
	}
	filled = max(0, min(filled, barWidth))

	fill := theme.MeterFilled
	if m.Used >= m.Max {
		fill = lipgloss.NewStyle().Background(theme.Accent)
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.MeterEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
}
