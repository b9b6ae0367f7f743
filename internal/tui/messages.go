package tui

import (
	"conduit-tui/internal/entity"
)

// Completion messages posted back into Update by the pipeline commands.
// Each carries either a decoded entity or the error list of its failed
// operation, never both.

type feedLoadedMsg struct {
	Articles entity.PaginatedList[entity.Article]
	Page     entity.PageNumber
	Errors   []string
}

type tagsLoadedMsg struct {
	Tags   []entity.Tag
	Errors []string
}

type loginCompletedMsg struct {
	Viewer *entity.Viewer
	Errors []string
}

type loggedOutMsg struct {
	Errors []string
}

type articleLoadedMsg struct {
	Article entity.Article
	Errors  []string
}

type commentsLoadedMsg struct {
	Comments []entity.Comment
	Errors   []string
}

type commentCreatedMsg struct {
	Comment entity.Comment
	Errors  []string
}

type commentDeletedMsg struct {
	ID     entity.CommentID
	Errors []string
}

type followCompletedMsg struct {
	Author entity.Author
	Errors []string
}

type settingsLoadedMsg struct {
	Viewer entity.Viewer
	Errors []string
}

type settingsSavedMsg struct {
	Viewer *entity.Viewer
	Errors []string
}
