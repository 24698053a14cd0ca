package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/tmmi/internal/types"
)

const barWidth = 20

// bandColor follows the usual traffic-light scheme, F green down to N red.
func bandColor(b types.Band) lipgloss.Color {
	switch b {
	case types.BandFully:
		return lipgloss.Color("10") // green
	case types.BandLargely:
		return lipgloss.Color("11") // yellow
	case types.BandPartially:
		return lipgloss.Color("3") // orange
	default:
		return lipgloss.Color("9") // red
	}
}

func priorityColor(p types.Priority) lipgloss.Color {
	switch p {
	case types.PriorityHigh:
		return lipgloss.Color("9")
	case types.PriorityMedium:
		return lipgloss.Color("11")
	default:
		return lipgloss.Color("7")
	}
}

// bar draws a fixed-width percentage bar.
func bar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
