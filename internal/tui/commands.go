package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/feed"
	"conduit-tui/internal/filter"
	"conduit-tui/internal/form"
	"conduit-tui/internal/request"
	"conduit-tui/internal/session"
)

// pipelineOps adapts the request client to the feed's Ops interface.
// The session is the snapshot taken when the ops were built; each
// command performs one request and posts one completion message.
type pipelineOps struct {
	client *request.Client
	sess   session.Session
}

func (o pipelineOps) Favorite(slug entity.Slug) tea.Cmd {
	viewer := o.sess.Viewer()
	return func() tea.Msg {
		article, err := o.client.Favorite(context.Background(), viewer, slug)
		if err != nil {
			return feed.FavoriteCompletedMsg{Errors: request.Messages(err)}
		}
		return feed.FavoriteCompletedMsg{Article: article}
	}
}

func (o pipelineOps) Unfavorite(slug entity.Slug) tea.Cmd {
	viewer := o.sess.Viewer()
	return func() tea.Msg {
		article, err := o.client.Unfavorite(context.Background(), viewer, slug)
		if err != nil {
			return feed.FavoriteCompletedMsg{Errors: request.Messages(err)}
		}
		return feed.FavoriteCompletedMsg{Article: article}
	}
}

func (m Model) loadFeed(page entity.PageNumber) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	tab := m.tab
	tag := m.tag
	f := filter.ForPage(page, m.pageSize)

	return func() tea.Msg {
		var (
			articles entity.PaginatedList[entity.Article]
			err      error
		)
		switch tab {
		case tabPersonal:
			articles, err = client.PersonalFeed(context.Background(), viewer, f)
		case tabTag:
			articles, err = client.HomeFeed(context.Background(), viewer, request.FeedQuery{Tag: tag}, f)
		default:
			articles, err = client.HomeFeed(context.Background(), viewer, request.FeedQuery{}, f)
		}
		if err != nil {
			return feedLoadedMsg{Page: page, Errors: request.Messages(err)}
		}
		return feedLoadedMsg{Articles: articles, Page: page}
	}
}

func (m Model) loadTags() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		tags, err := client.Tags(context.Background())
		if err != nil {
			return tagsLoadedMsg{Errors: request.Messages(err)}
		}
		return tagsLoadedMsg{Tags: tags}
	}
}

func (m Model) loginRequest(f form.Login) tea.Cmd {
	client := m.client
	store := m.store
	return func() tea.Msg {
		viewer, err := client.Login(context.Background(), f)
		if err != nil {
			return loginCompletedMsg{Errors: request.Messages(err)}
		}
		if store != nil {
			// a failed save only costs persistence, not the login
			_ = store.Save(context.Background(), &viewer)
		}
		return loginCompletedMsg{Viewer: &viewer}
	}
}

func (m Model) register(f form.Register) tea.Cmd {
	client := m.client
	store := m.store
	return func() tea.Msg {
		viewer, err := client.Register(context.Background(), f)
		if err != nil {
			return loginCompletedMsg{Errors: request.Messages(err)}
		}
		if store != nil {
			_ = store.Save(context.Background(), &viewer)
		}
		return loginCompletedMsg{Viewer: &viewer}
	}
}

func (m Model) logout() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store != nil {
			if err := store.Clear(context.Background()); err != nil {
				return loggedOutMsg{Errors: []string{"could not clear saved session"}}
			}
		}
		return loggedOutMsg{}
	}
}

func (m Model) loadArticle(slug entity.Slug) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		article, err := client.Article(context.Background(), viewer, slug)
		if err != nil {
			return articleLoadedMsg{Errors: request.Messages(err)}
		}
		return articleLoadedMsg{Article: article}
	}
}

func (m Model) loadComments(slug entity.Slug) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		comments, err := client.Comments(context.Background(), viewer, slug)
		if err != nil {
			return commentsLoadedMsg{Errors: request.Messages(err)}
		}
		return commentsLoadedMsg{Comments: comments}
	}
}

func (m Model) createComment(slug entity.Slug, f form.Comment) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		comment, err := client.CreateComment(context.Background(), viewer, slug, f)
		if err != nil {
			return commentCreatedMsg{Errors: request.Messages(err)}
		}
		return commentCreatedMsg{Comment: comment}
	}
}

func (m Model) deleteComment(slug entity.Slug, id entity.CommentID) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		deleted, err := client.DeleteComment(context.Background(), viewer, slug, id)
		if err != nil {
			return commentDeletedMsg{Errors: request.Messages(err)}
		}
		return commentDeletedMsg{ID: deleted}
	}
}

func (m Model) loadSettings() tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		current, err := client.Settings(context.Background(), viewer)
		if err != nil {
			return settingsLoadedMsg{Errors: request.Messages(err)}
		}
		return settingsLoadedMsg{Viewer: current}
	}
}

func (m Model) updateSettings(f form.Settings) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	store := m.store
	return func() tea.Msg {
		updated, err := client.UpdateSettings(context.Background(), viewer, f)
		if err != nil {
			return settingsSavedMsg{Errors: request.Messages(err)}
		}
		if store != nil {
			// a failed save only costs persistence, not the update
			_ = store.Save(context.Background(), &updated)
		}
		return settingsSavedMsg{Viewer: &updated}
	}
}

func (m Model) setFollowing(username string, following bool) tea.Cmd {
	viewer := m.sess.Viewer()
	client := m.client
	return func() tea.Msg {
		var (
			author entity.Author
			err    error
		)
		if following {
			author, err = client.Follow(context.Background(), viewer, username)
		} else {
			author, err = client.Unfollow(context.Background(), viewer, username)
		}
		if err != nil {
			return followCompletedMsg{Errors: request.Messages(err)}
		}
		return followCompletedMsg{Author: author}
	}
}
