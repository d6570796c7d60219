package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/errika/internal/model"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#64b5f6"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
	stripe       = "▌"
)

// same palette as the desktop widget's priority indicators
var priorityColors = map[model.Priority]lipgloss.Color{
	model.Low:    lipgloss.Color("#81c784"),
	model.Medium: lipgloss.Color("#64b5f6"),
	model.High:   lipgloss.Color("#ffb74d"),
	model.Urgent: lipgloss.Color("#e57373"),
}

func priorityStyle(p model.Priority) lipgloss.Style {
	c, ok := priorityColors[p]
	if !ok {
		c = priorityColors[model.DefaultPriority]
	}
	return lipgloss.NewStyle().Foreground(c)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
