package wizard

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings
	colorAccent  = lipgloss.Color("#FFD700") // Gold: recommendations
	colorSuccess = lipgloss.Color("#00E676") // Green: selected
	colorDanger  = lipgloss.Color("#FF5252") // Red: blocked
	colorMuted   = lipgloss.Color("#636363") // Gray: reasons
)

// Option label icons.
const (
	iconRecommended = "★"
	iconBlocked     = "✗"
	iconSelected    = "●"
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleRecommended = lipgloss.NewStyle().
				Foreground(colorAccent)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleBlocked = lipgloss.NewStyle().
			Foreground(colorDanger)

	styleReason = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)
