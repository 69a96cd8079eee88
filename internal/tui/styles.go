package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(1, 0)
	statsStyle   = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(statsWidth - 1)
)
