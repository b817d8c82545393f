package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	okDot  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	offDot = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
)

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, bindingCount int, statusText string, width int) string {
	var parts []string
	if connected {
		parts = append(parts, okDot+" daemon connected")
	} else {
		parts = append(parts, offDot+" daemon not running (local spawn)")
	}
	parts = append(parts, fmt.Sprintf("%d bindings", bindingCount))
	if statusText != "" {
		parts = append(parts, statusText)
	}
	return barStyle.Width(width).Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "enter: launch  r: reload  /: filter  q/ctrl-c: quit"
	return helpStyle.Width(width).Render(help)
}
