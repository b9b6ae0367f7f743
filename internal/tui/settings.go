package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/form"
)

// settingsModel is the account settings form state, prefilled from the
// server's current view of the account once it loads.
type settingsModel struct {
	image    string
	username string
	bio      string
	email    string
	password string
	focus    int
	problems []string
	busy     bool
	loaded   bool
}

const settingsFieldCount = 5

func (s *settingsModel) focusedField() *string {
	switch s.focus {
	case 0:
		return &s.image
	case 1:
		return &s.username
	case 2:
		return &s.bio
	case 3:
		return &s.email
	default:
		return &s.password
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.settings

	switch msg.String() {
	case "esc":
		m.screen = screenFeed
		m.settings = settingsModel{}
		return m, nil

	case "tab", "down":
		s.focus = (s.focus + 1) % settingsFieldCount
		m.settings = s
		return m, nil

	case "shift+tab", "up":
		s.focus = (s.focus - 1 + settingsFieldCount) % settingsFieldCount
		m.settings = s
		return m, nil

	case "enter":
		return m.submitSettings()

	case "backspace":
		field := s.focusedField()
		*field = trimLastRune(*field)
		m.settings = s
		return m, nil
	}

	// the bio takes free text, so space is a regular input here
	switch msg.Type {
	case tea.KeyRunes:
		*s.focusedField() += string(msg.Runes)
		m.settings = s
	case tea.KeySpace:
		*s.focusedField() += " "
		m.settings = s
	}
	return m, nil
}

// submitSettings validates client-side first; the form is only sent to
// the server once it has no problems. An empty password means "keep the
// current one" and is omitted from the payload.
func (m Model) submitSettings() (Model, tea.Cmd) {
	s := m.settings
	if s.busy || !s.loaded {
		return m, nil
	}

	f := form.Settings{
		Image:    s.image,
		Username: s.username,
		Bio:      s.bio,
		Email:    s.email,
		Password: s.password,
	}
	if v := f.Validate(); !v.IsValid() {
		s.problems = v.Problems()
		m.settings = s
		return m, nil
	}

	s.busy = true
	s.problems = nil
	m.settings = s
	return m, m.updateSettings(f)
}
