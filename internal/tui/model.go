// Package tui is the terminal front end: it renders read-only snapshots
// of the feed state machine and turns keystrokes into its events.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/feed"
	"conduit-tui/internal/request"
	"conduit-tui/internal/session"
)

type screen int

const (
	screenFeed screen = iota
	screenLogin
	screenArticle
	screenSettings
)

type feedTab int

const (
	tabGlobal feedTab = iota
	tabPersonal
	tabTag
)

type Model struct {
	client   *request.Client
	store    *session.Store
	log      *slog.Logger
	pageSize int64

	sess   session.Session
	screen screen

	// feed screen
	feed    feed.Model
	tab     feedTab
	tag     entity.Tag
	page    entity.PageNumber
	tags    []entity.Tag
	cursor  int
	loading bool

	// article screen
	article       *entity.Article
	comments      []entity.Comment
	commentCursor int
	composing     bool
	commentDraft  string
	articleErrors []string

	// login screen
	login loginModel

	// settings screen
	settings settingsModel
}

// New builds the initial model. The viewer comes from the restored
// session, or nil when nobody is logged in; store may be nil when
// persistence is unavailable.
func New(client *request.Client, store *session.Store, viewer *entity.Viewer, pageSize int64, log *slog.Logger) Model {
	sess := session.New(viewer)
	m := Model{
		client:   client,
		store:    store,
		log:      log,
		pageSize: pageSize,
		sess:     sess,
		page:     1,
		loading:  true,
	}
	m.feed = feed.New(sess, entity.PaginatedList[entity.Article]{PageSize: pageSize}, pipelineOps{client: client, sess: sess}, log)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadFeed(1), m.loadTags())
}

// resetSession rebuilds the feed around a new viewer; the old page is
// discarded because its favorited flags were decoded for the previous
// viewer.
func (m Model) resetSession(viewer *entity.Viewer) Model {
	m.sess = session.New(viewer)
	m.feed = feed.New(m.sess, entity.PaginatedList[entity.Article]{PageSize: m.pageSize}, pipelineOps{client: m.client, sess: m.sess}, m.log)
	m.tab = tabGlobal
	m.tag = ""
	m.page = 1
	m.cursor = 0
	m.loading = true
	return m
}

func (m Model) selectedArticle() *entity.Article {
	values := m.feed.Articles().Values
	if m.cursor < 0 || m.cursor >= len(values) {
		return nil
	}
	return &values[m.cursor]
}
