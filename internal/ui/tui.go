// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the keyboard beeper
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits
func Run(player Player, config Config) error {
	p := tea.NewProgram(NewModel(player, config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
