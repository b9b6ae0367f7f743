package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/form"
)

type loginMode int

const (
	modeLogin loginMode = iota
	modeRegister
)

// loginModel is the sign in / sign up form state.
type loginModel struct {
	mode     loginMode
	username string
	email    string
	password string
	focus    int
	problems []string
	busy     bool
}

func (l loginModel) fieldCount() int {
	if l.mode == modeRegister {
		return 3
	}
	return 2
}

// handleKey edits the form. The returned command is non-nil when the
// form was submitted.
func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	l := m.login

	switch msg.String() {
	case "esc":
		m.screen = screenFeed
		return m, nil

	case "ctrl+t":
		if l.mode == modeLogin {
			l.mode = modeRegister
		} else {
			l.mode = modeLogin
		}
		l.focus = 0
		l.problems = nil
		m.login = l
		return m, nil

	case "tab", "down":
		l.focus = (l.focus + 1) % l.fieldCount()
		m.login = l
		return m, nil

	case "shift+tab", "up":
		l.focus = (l.focus - 1 + l.fieldCount()) % l.fieldCount()
		m.login = l
		return m, nil

	case "enter":
		return m.submitLogin()

	case "backspace":
		field := l.focusedField()
		*field = trimLastRune(*field)
		m.login = l
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		field := l.focusedField()
		*field += string(msg.Runes)
		m.login = l
	}
	return m, nil
}

// focusedField maps the focus index onto the visible field order:
// register shows username first, login starts at email.
func (l *loginModel) focusedField() *string {
	if l.mode == modeRegister {
		switch l.focus {
		case 0:
			return &l.username
		case 1:
			return &l.email
		default:
			return &l.password
		}
	}
	if l.focus == 0 {
		return &l.email
	}
	return &l.password
}

// submitLogin validates client-side first; server submission only
// happens for a form with no problems.
func (m Model) submitLogin() (Model, tea.Cmd) {
	l := m.login
	if l.busy {
		return m, nil
	}

	if l.mode == modeRegister {
		f := form.Register{Username: l.username, Email: l.email, Password: l.password}
		if v := f.Validate(); !v.IsValid() {
			l.problems = v.Problems()
			m.login = l
			return m, nil
		}
		l.busy = true
		l.problems = nil
		m.login = l
		return m, m.register(f)
	}

	f := form.Login{Email: l.email, Password: l.password}
	if v := f.Validate(); !v.IsValid() {
		l.problems = v.Problems()
		m.login = l
		return m, nil
	}
	l.busy = true
	l.problems = nil
	m.login = l
	return m, m.loginRequest(f)
}
