package request

import (
	"context"
	"net/http"

	"conduit-tui/internal/decoder"
	"conduit-tui/internal/entity"
	"conduit-tui/internal/form"
)

type commentRoot struct {
	Comment decoder.Comment `json:"comment"`
}

type commentsRoot struct {
	Comments []decoder.Comment `json:"comments"`
}

// Comments loads all comments on an article, newest ordering as sent by
// the server.
func (c *Client) Comments(ctx context.Context, viewer *entity.Viewer, slug entity.Slug) ([]entity.Comment, error) {
	raw, err := c.do(ctx, http.MethodGet, "articles/"+escape(slug.String())+"/comments", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return nil, err
	}
	root, err := decodeBody[commentsRoot](raw)
	if err != nil {
		return nil, err
	}

	comments := make([]entity.Comment, 0, len(root.Comments))
	for _, dto := range root.Comments {
		comment, err := dto.IntoComment(viewer)
		if err != nil {
			return nil, dataError(err)
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// CreateComment posts a comment on the article.
func (c *Client) CreateComment(ctx context.Context, viewer *entity.Viewer, slug entity.Slug, f form.Comment) (entity.Comment, error) {
	raw, err := c.do(ctx, http.MethodPost, "articles/"+escape(slug.String())+"/comments", entity.CredentialsOf(viewer), envelope{"comment": f})
	if err != nil {
		return entity.Comment{}, err
	}
	root, err := decodeBody[commentRoot](raw)
	if err != nil {
		return entity.Comment{}, err
	}
	comment, err := root.Comment.IntoComment(viewer)
	if err != nil {
		return entity.Comment{}, dataError(err)
	}
	return comment, nil
}

// DeleteComment removes the viewer's comment and echoes back its id so
// the caller can drop it from the rendered list.
func (c *Client) DeleteComment(ctx context.Context, viewer *entity.Viewer, slug entity.Slug, id entity.CommentID) (entity.CommentID, error) {
	_, err := c.do(ctx, http.MethodDelete, "articles/"+escape(slug.String())+"/comments/"+escape(id.String()), entity.CredentialsOf(viewer), nil)
	if err != nil {
		return "", err
	}
	return id, nil
}
