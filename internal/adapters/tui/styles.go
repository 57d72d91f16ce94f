package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/elab/internal/ui/style"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	faintStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(lipgloss.Color("#FFFFFF"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(style.Slate).
			PaddingLeft(1)
)
