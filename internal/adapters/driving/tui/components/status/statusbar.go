// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/stackprobe/internal/adapters/driving/tui/styles"
)

// State represents the current scan state for display.
type State string

const (
	StateScanning State = "scanning"
	StateDone     State = "done"
	StateError    State = "error"
)

// Bar displays scan progress and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	spinner spinner.Model
	state   State
	message string
	pages   int
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   StateScanning,
		width:   80,
	}
}

// Init starts the spinner.
func (s *Bar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while scanning.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && s.state == StateScanning {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateScanning:
		return s.spinner.View() + s.styles.Normal.Render(fmt.Sprintf(" Scanning... %d pages", s.pages))
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateDone:
		if s.message != "" {
			return s.styles.Success.Render(s.message)
		}
		return s.styles.Success.Render("Done")
	}
	return ""
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " · "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPages sets the number of pages received so far.
func (s *Bar) SetPages(n int) {
	s.pages = n
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
