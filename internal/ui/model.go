// ABOUTME: Bubbletea model for the keyboard beeper TUI
// ABOUTME: Maps home-row keys to notes and tracks in-flight tone sequences
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sendspin/beep-go/pkg/beep"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Player schedules tone sequences
type Player interface {
	Play(ctx context.Context, tones []beep.Tone) *beep.Completion
}

// Config describes what the TUI shows and how long notes last
type Config struct {
	NoteLength time.Duration
	Volume     float64
	Waveform   string
	Backend    string
}

type note struct {
	key  string
	name string
	freq float64
}

// C major scale, C4 to C5
var keyboard = []note{
	{"a", "C4", 261.63},
	{"s", "D4", 293.66},
	{"d", "E4", 329.63},
	{"f", "F4", 349.23},
	{"g", "G4", 392.00},
	{"h", "A4", 440.00},
	{"j", "B4", 493.88},
	{"k", "C5", 523.25},
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	litStyle   = keyStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// NoteDoneMsg reports that a tone sequence finished
type NoteDoneMsg struct {
	ID  string
	Err error
}

// Model represents the TUI state
type Model struct {
	player Player
	config Config

	// Playback
	active  int
	played  int
	lastKey string
	lastErr error

	// Dimensions
	width  int
	height int
}

// NewModel creates a new TUI model
func NewModel(player Player, config Config) Model {
	if config.NoteLength <= 0 {
		config.NoteLength = 250 * time.Millisecond
	}
	return Model{
		player: player,
		config: config,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case NoteDoneMsg:
		if m.active > 0 {
			m.active--
		}
		if msg.Err != nil {
			m.lastErr = msg.Err
		}
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		// The classic two-tone beep
		return m.play(key, []beep.Tone{
			{Frequency: 440, Duration: 200 * time.Millisecond},
			{Frequency: 880, Duration: 300 * time.Millisecond},
		})
	}

	for _, n := range keyboard {
		if n.key == key {
			return m.play(key, []beep.Tone{{Frequency: n.freq, Duration: m.config.NoteLength}})
		}
	}
	return m, nil
}

func (m Model) play(key string, tones []beep.Tone) (tea.Model, tea.Cmd) {
	c := m.player.Play(context.Background(), tones)
	m.active++
	m.played++
	m.lastKey = key
	return m, waitFor(c)
}

// waitFor turns a completion into a NoteDoneMsg
func waitFor(c *beep.Completion) tea.Cmd {
	return func() tea.Msg {
		<-c.Done()
		return NoteDoneMsg{ID: c.ID(), Err: c.Err()}
	}
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("beep") + dimStyle.Render(fmt.Sprintf("  %s · %s · volume %s",
		m.config.Waveform, m.config.Backend, renderBar(m.config.Volume, 10))))
	b.WriteString("\n\n")
	b.WriteString(m.renderKeys())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Playing: %d  Played: %d\n", m.active, m.played))
	if m.lastErr != nil {
		b.WriteString(errStyle.Render("Error: "+m.lastErr.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render("a-k: notes  space: beep  q: quit"))
	b.WriteString("\n")

	return b.String()
}

// renderKeys renders one key cap per note, lighting the last one pressed
func (m Model) renderKeys() string {
	caps := make([]string, 0, len(keyboard))
	for _, n := range keyboard {
		style := keyStyle
		if n.key == m.lastKey && m.active > 0 {
			style = litStyle
		}
		caps = append(caps, style.Render(n.key+"\n"+n.name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, caps...)
}

func renderBar(value float64, width int) string {
	filled := int(value*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
