package tui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/feed"
	"conduit-tui/internal/form"
	"conduit-tui/internal/logging"
)

// trimLastRune removes the final rune rather than the final byte, so
// deleting a multi-byte character never leaves invalid UTF-8 behind.
func trimLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case feed.FavoriteCompletedMsg:
		next, cmd := m.feed.Update(msg)
		m.feed = next
		// an open article picks up its own completion too
		if len(msg.Errors) == 0 && m.article != nil && m.article.Slug == msg.Article.Slug {
			article := msg.Article
			m.article = &article
		}
		return m, cmd

	case feedLoadedMsg:
		m.loading = false
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.feed = m.feed.WithErrors(msg.Errors)
			return m, nil
		}
		m.page = msg.Page
		m.feed = m.feed.WithPage(msg.Articles)
		if max := len(msg.Articles.Values); m.cursor >= max && max > 0 {
			m.cursor = max - 1
		} else if max == 0 {
			m.cursor = 0
		}
		return m, nil

	case tagsLoadedMsg:
		// a failed tag load leaves the sidebar empty; not worth a banner
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			return m, nil
		}
		m.tags = msg.Tags
		return m, nil

	case loginCompletedMsg:
		l := m.login
		l.busy = false
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			l.problems = msg.Errors
			m.login = l
			return m, nil
		}
		m.login = loginModel{}
		m = m.resetSession(msg.Viewer)
		m.screen = screenFeed
		return m, tea.Batch(m.loadFeed(1), m.loadTags())

	case loggedOutMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
		}
		m = m.resetSession(nil)
		m.screen = screenFeed
		return m, m.loadFeed(1)

	case articleLoadedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.articleErrors = msg.Errors
			return m, nil
		}
		article := msg.Article
		m.article = &article
		m.articleErrors = nil
		return m, nil

	case commentsLoadedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.articleErrors = msg.Errors
			return m, nil
		}
		m.comments = msg.Comments
		return m, nil

	case commentCreatedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.articleErrors = msg.Errors
			return m, nil
		}
		m.comments = append(m.comments, msg.Comment)
		m.commentDraft = ""
		m.composing = false
		return m, nil

	case commentDeletedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.articleErrors = msg.Errors
			return m, nil
		}
		for i, c := range m.comments {
			if c.ID == msg.ID {
				m.comments = append(m.comments[:i], m.comments[i+1:]...)
				break
			}
		}
		if m.commentCursor >= len(m.comments) && m.commentCursor > 0 {
			m.commentCursor--
		}
		return m, nil

	case followCompletedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.articleErrors = msg.Errors
			return m, nil
		}
		if m.article != nil && m.article.Author.Username() == msg.Author.Username() {
			m.article.Author = msg.Author
		}
		return m, nil

	case settingsLoadedMsg:
		s := m.settings
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			s.problems = msg.Errors
			m.settings = s
			return m, nil
		}
		s.image = string(msg.Viewer.Profile.Avatar)
		s.username = msg.Viewer.Username()
		s.bio = msg.Viewer.Profile.Bio
		s.email = msg.Viewer.Email
		s.loaded = true
		m.settings = s
		return m, nil

	case settingsSavedMsg:
		s := m.settings
		s.busy = false
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			s.problems = msg.Errors
			m.settings = s
			return m, nil
		}
		// the refreshed viewer may carry a new token and profile, so the
		// session and the page decoded under the old one both reset
		m.settings = settingsModel{}
		m = m.resetSession(msg.Viewer)
		m.screen = screenFeed
		return m, tea.Batch(m.loadFeed(1), m.loadTags())
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		return m.handleLoginKey(msg)
	case screenArticle:
		return m.handleArticleKey(msg)
	case screenSettings:
		return m.handleSettingsKey(msg)
	default:
		return m.handleFeedKey(msg)
	}
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "x":
		next, cmd := m.feed.Update(feed.DismissErrorsMsg{})
		m.feed = next
		return m, cmd

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.feed.Articles().Values)-1 {
			m.cursor++
		}
		return m, nil

	case "left", "h":
		if m.page > 1 {
			m.loading = true
			return m, m.loadFeed(m.page - 1)
		}
		return m, nil

	case "right", "l":
		if int64(m.page) < m.feed.Articles().TotalPages() {
			m.loading = true
			return m, m.loadFeed(m.page + 1)
		}
		return m, nil

	case "tab":
		if m.tab == tabGlobal && m.sess.LoggedIn() {
			m.tab = tabPersonal
		} else {
			m.tab = tabGlobal
			m.tag = ""
		}
		m.loading = true
		m.cursor = 0
		return m, m.loadFeed(1)

	case "f":
		// the click event carries the action to take, which is the
		// opposite of the displayed state
		if !m.feed.CanFavorite() {
			return m, nil
		}
		article := m.selectedArticle()
		if article == nil {
			return m, nil
		}
		var event feed.Msg
		if article.Favorited {
			event = feed.UnfavoriteClickedMsg{Slug: article.Slug}
		} else {
			event = feed.FavoriteClickedMsg{Slug: article.Slug}
		}
		next, cmd := m.feed.Update(event)
		m.feed = next
		return m, cmd

	case "enter":
		article := m.selectedArticle()
		if article == nil {
			return m, nil
		}
		m.screen = screenArticle
		m.article = nil
		m.comments = nil
		m.commentCursor = 0
		m.articleErrors = nil
		return m, tea.Batch(m.loadArticle(article.Slug), m.loadComments(article.Slug))

	case "r":
		m.loading = true
		return m, m.loadFeed(m.page)

	case "L":
		if m.sess.LoggedIn() {
			return m, m.logout()
		}
		m.screen = screenLogin
		return m, nil

	case "s":
		if !m.sess.LoggedIn() {
			return m, nil
		}
		m.screen = screenSettings
		m.settings = settingsModel{}
		return m, m.loadSettings()
	}

	// digits select a popular tag
	if len(msg.String()) == 1 && msg.String() >= "1" && msg.String() <= "9" {
		idx := int(msg.String()[0] - '1')
		if idx < len(m.tags) {
			m.tab = tabTag
			m.tag = m.tags[idx]
			m.loading = true
			m.cursor = 0
			return m, m.loadFeed(1)
		}
	}
	return m, nil
}

func (m Model) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composing {
		return m.handleComposeKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		m.screen = screenFeed
		m.article = nil
		m.comments = nil
		return m, nil

	case "up", "k":
		if m.commentCursor > 0 {
			m.commentCursor--
		}
		return m, nil

	case "down", "j":
		if m.commentCursor < len(m.comments)-1 {
			m.commentCursor++
		}
		return m, nil

	case "f":
		if m.article == nil || !m.sess.LoggedIn() {
			return m, nil
		}
		var event feed.Msg
		if m.article.Favorited {
			event = feed.UnfavoriteClickedMsg{Slug: m.article.Slug}
		} else {
			event = feed.FavoriteClickedMsg{Slug: m.article.Slug}
		}
		next, cmd := m.feed.Update(event)
		m.feed = next
		return m, cmd

	case "w":
		if m.article == nil || !m.sess.LoggedIn() {
			return m, nil
		}
		author := m.article.Author
		if _, isSelf := author.(entity.ViewerAuthor); isSelf {
			return m, nil
		}
		return m, m.setFollowing(author.Username(), !entity.Followed(author))

	case "c":
		if m.sess.LoggedIn() && m.article != nil {
			m.composing = true
			m.commentDraft = ""
		}
		return m, nil

	case "d":
		if m.article == nil || !m.sess.LoggedIn() {
			return m, nil
		}
		if m.commentCursor >= len(m.comments) {
			return m, nil
		}
		comment := m.comments[m.commentCursor]
		if _, mine := comment.Author.(entity.ViewerAuthor); !mine {
			return m, nil
		}
		return m, m.deleteComment(m.article.Slug, comment.ID)
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.composing = false
		m.commentDraft = ""
		return m, nil

	case "enter":
		f := form.Comment{Body: m.commentDraft}
		if v := f.Validate(); !v.IsValid() {
			m.articleErrors = v.Problems()
			return m, nil
		}
		return m, m.createComment(m.article.Slug, f)

	case "backspace":
		m.commentDraft = trimLastRune(m.commentDraft)
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.commentDraft += string(msg.Runes)
	case tea.KeySpace:
		m.commentDraft += " "
	}
	return m, nil
}
