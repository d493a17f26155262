package tui

import "github.com/charmbracelet/lipgloss"

// Palette, Catppuccin Mocha.
const (
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	mottoStyle    = lipgloss.NewStyle().Italic(true).Foreground(colorTeal)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
	unlockedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	lockedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow)
	pageStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(1, 2).Width(64)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorLavender).Padding(0, 1).Width(64)
	footerStyle   = lipgloss.NewStyle().Foreground(colorOverlay1).Padding(0, 1)
)
