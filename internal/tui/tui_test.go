package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/session"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyNamed(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func loggedInModel() Model {
	viewer := &entity.Viewer{
		Credentials: entity.Credentials{Username: "jake", AuthToken: "t"},
		Email:       "jake@example.com",
	}
	return Model{sess: session.New(viewer), pageSize: 10, page: 1}
}

func asModel(t *testing.T, m tea.Model) Model {
	t.Helper()
	next, ok := m.(Model)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return next
}

func TestComposeBackspaceRemovesWholeRune(t *testing.T) {
	m := loggedInModel()
	m.screen = screenArticle
	m.composing = true

	for _, input := range []string{"é", "日", "🙂"} {
		next, _ := m.Update(keyRunes(input))
		got := asModel(t, next)
		if got.commentDraft != input {
			t.Fatalf("draft after typing = %q, want %q", got.commentDraft, input)
		}

		next, _ = got.Update(keyNamed(tea.KeyBackspace))
		got = asModel(t, next)
		if got.commentDraft != "" {
			t.Errorf("draft after backspace = %q (len %d), want empty", got.commentDraft, len(got.commentDraft))
		}
		if !utf8.ValidString(got.commentDraft) {
			t.Errorf("draft is invalid UTF-8: % x", got.commentDraft)
		}
	}
}

func TestLoginBackspaceRemovesWholeRune(t *testing.T) {
	m := Model{screen: screenLogin}

	next, _ := m.Update(keyRunes("ö"))
	got := asModel(t, next)
	if got.login.email != "ö" {
		t.Fatalf("email after typing = %q, want %q", got.login.email, "ö")
	}

	next, _ = got.Update(keyNamed(tea.KeyBackspace))
	got = asModel(t, next)
	if got.login.email != "" {
		t.Errorf("email after backspace = %q, want empty", got.login.email)
	}
	if !utf8.ValidString(got.login.email) {
		t.Errorf("email is invalid UTF-8: % x", got.login.email)
	}
}

func TestFormField_MasksPerRune(t *testing.T) {
	line := formField("password", "héllo", false, true)
	if !strings.Contains(line, "*****") {
		t.Errorf("masked line = %q, want five asterisks", line)
	}
	if strings.Contains(line, "******") {
		t.Errorf("masked line = %q, one asterisk per rune expected", line)
	}
}

func TestSettingsScreen_OpenRequiresLogin(t *testing.T) {
	anonymous := Model{sess: session.New(nil)}
	next, cmd := anonymous.Update(keyRunes("s"))
	if got := asModel(t, next); got.screen != screenFeed || cmd != nil {
		t.Errorf("anonymous s: screen = %v cmd = %v, want feed/nil", got.screen, cmd)
	}

	m := loggedInModel()
	next, cmd = m.Update(keyRunes("s"))
	got := asModel(t, next)
	if got.screen != screenSettings {
		t.Fatalf("screen = %v, want settings", got.screen)
	}
	if cmd == nil {
		t.Fatal("expected a load command")
	}
}

func TestSettingsScreen_LoadPrefillsForm(t *testing.T) {
	m := loggedInModel()
	m.screen = screenSettings

	next, _ := m.Update(settingsLoadedMsg{Viewer: entity.Viewer{
		Credentials: entity.Credentials{Username: "jake", AuthToken: "t"},
		Email:       "jake@example.com",
		Profile: entity.Profile{
			Bio:    "I work at statefarm",
			Avatar: "https://example.com/jake.png",
		},
	}})
	got := asModel(t, next)

	s := got.settings
	if !s.loaded {
		t.Fatal("form not marked loaded")
	}
	if s.username != "jake" || s.email != "jake@example.com" ||
		s.bio != "I work at statefarm" || s.image != "https://example.com/jake.png" {
		t.Errorf("prefilled form = %+v", s)
	}
	if s.password != "" {
		t.Errorf("password = %q, want empty", s.password)
	}
}

func TestSettingsScreen_SubmitValidatesFirst(t *testing.T) {
	m := loggedInModel()
	m.screen = screenSettings
	m.settings = settingsModel{loaded: true, username: "jake", email: ""}

	next, cmd := m.Update(keyNamed(tea.KeyEnter))
	got := asModel(t, next)
	if cmd != nil {
		t.Error("invalid form must not reach the server")
	}
	want := "email can't be blank"
	if len(got.settings.problems) != 1 || got.settings.problems[0] != want {
		t.Errorf("problems = %v, want [%q]", got.settings.problems, want)
	}

	got.settings.email = "jake@example.com"
	next, cmd = got.Update(keyNamed(tea.KeyEnter))
	got = asModel(t, next)
	if cmd == nil {
		t.Fatal("valid form should submit")
	}
	if !got.settings.busy || got.settings.problems != nil {
		t.Errorf("submitted form = %+v", got.settings)
	}
}

func TestSettingsScreen_SaveResetsSession(t *testing.T) {
	m := loggedInModel()
	m.screen = screenSettings
	m.settings = settingsModel{loaded: true, busy: true}

	updated := &entity.Viewer{
		Credentials: entity.Credentials{Username: "jake", AuthToken: "t2"},
		Email:       "new@example.com",
	}
	next, cmd := m.Update(settingsSavedMsg{Viewer: updated})
	got := asModel(t, next)

	if got.screen != screenFeed {
		t.Errorf("screen = %v, want feed", got.screen)
	}
	if cmd == nil {
		t.Error("expected a feed reload")
	}
	if viewer := got.sess.Viewer(); viewer == nil || viewer.Credentials.AuthToken != "t2" {
		t.Errorf("session viewer = %+v, want the refreshed one", viewer)
	}
	if got.settings.loaded || got.settings.busy {
		t.Errorf("settings form not reset: %+v", got.settings)
	}
}

func TestSettingsScreen_SaveErrorsShownOnForm(t *testing.T) {
	m := loggedInModel()
	m.screen = screenSettings
	m.settings = settingsModel{loaded: true, busy: true, email: "taken@example.com"}

	next, _ := m.Update(settingsSavedMsg{Errors: []string{"email has already been taken"}})
	got := asModel(t, next)

	if got.screen != screenSettings {
		t.Errorf("screen = %v, want settings", got.screen)
	}
	if got.settings.busy {
		t.Error("form still busy after failure")
	}
	want := []string{"email has already been taken"}
	if len(got.settings.problems) != 1 || got.settings.problems[0] != want[0] {
		t.Errorf("problems = %v, want %v", got.settings.problems, want)
	}
}
