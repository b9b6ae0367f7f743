// Package feed is the state machine behind every paginated article list
// (home, profile, tag views). It owns one page of articles plus a
// transient error list, processes events synchronously, and hands async
// work back to the runtime as Bubble Tea commands. It never performs
// I/O itself and never blocks.
//
// In-flight operations are not tracked: two overlapping favorite
// toggles both complete independently and the later completion wins on
// the matched slug. A completion for a slug that has since left the
// page is dropped.
package feed

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/logging"
	"conduit-tui/internal/session"
)

// Ops issues the asynchronous pipeline operations the feed can trigger.
// Each call schedules exactly one request whose single outcome comes
// back as a FavoriteCompletedMsg.
type Ops interface {
	Favorite(slug entity.Slug) tea.Cmd
	Unfavorite(slug entity.Slug) tea.Cmd
}

type Model struct {
	session  session.Session
	errors   []string
	articles entity.PaginatedList[entity.Article]
	ops      Ops
	log      *slog.Logger
}

func New(sess session.Session, articles entity.PaginatedList[entity.Article], ops Ops, log *slog.Logger) Model {
	return Model{
		session:  sess,
		articles: articles,
		ops:      ops,
		log:      log,
	}
}

// Msg is an event the feed knows how to process.
type Msg interface{ feedMsg() }

// DismissErrorsMsg clears the visible error list.
type DismissErrorsMsg struct{}

// FavoriteClickedMsg asks to favorite the article. The view emits it
// for articles currently displayed as not favorited; the event name
// matches the action taken.
type FavoriteClickedMsg struct{ Slug entity.Slug }

// UnfavoriteClickedMsg asks to remove the viewer's favorite.
type UnfavoriteClickedMsg struct{ Slug entity.Slug }

// FavoriteCompletedMsg is the single terminal outcome of a favorite or
// unfavorite operation. Errors non-empty means the operation failed and
// Article is meaningless.
type FavoriteCompletedMsg struct {
	Article entity.Article
	Errors  []string
}

func (DismissErrorsMsg) feedMsg()     {}
func (FavoriteClickedMsg) feedMsg()   {}
func (UnfavoriteClickedMsg) feedMsg() {}
func (FavoriteCompletedMsg) feedMsg() {}

// Update processes one event and returns the next state plus any
// scheduled operation. All mutation happens here, synchronously.
func (m Model) Update(msg Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DismissErrorsMsg:
		m.errors = nil
		return m, nil

	case FavoriteClickedMsg:
		return m, m.ops.Favorite(msg.Slug)

	case UnfavoriteClickedMsg:
		return m, m.ops.Unfavorite(msg.Slug)

	case FavoriteCompletedMsg:
		if len(msg.Errors) > 0 {
			logging.Errors(m.log, msg.Errors)
			m.errors = msg.Errors
			return m, nil
		}
		for i := range m.articles.Values {
			if m.articles.Values[i].Slug == msg.Article.Slug {
				m.articles.Values[i] = msg.Article
				break
			}
		}
		return m, nil
	}
	return m, nil
}

// WithPage replaces the active page: values and total change together.
func (m Model) WithPage(articles entity.PaginatedList[entity.Article]) Model {
	m.articles = articles
	return m
}

// WithErrors replaces the visible error list.
func (m Model) WithErrors(errors []string) Model {
	m.errors = errors
	return m
}

func (m Model) Articles() entity.PaginatedList[entity.Article] {
	return m.articles
}

func (m Model) Errors() []string {
	return m.errors
}

// CanFavorite reports whether the favorite buttons should render at
// all; only a logged-in viewer can favorite.
func (m Model) CanFavorite() bool {
	return m.session.LoggedIn()
}

func (m Model) Session() session.Session {
	return m.session
}
