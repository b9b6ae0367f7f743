package request

import (
	"context"
	"net/http"

	"conduit-tui/internal/decoder"
	"conduit-tui/internal/entity"
	"conduit-tui/internal/form"
)

type userRoot struct {
	User decoder.Viewer `json:"user"`
}

// Login exchanges an email/password form for a fresh viewer.
func (c *Client) Login(ctx context.Context, f form.Login) (entity.Viewer, error) {
	raw, err := c.do(ctx, http.MethodPost, "users/login", nil, envelope{"user": f})
	if err != nil {
		return entity.Viewer{}, err
	}
	return decodeViewer(raw)
}

// Register creates a new account and logs it in.
func (c *Client) Register(ctx context.Context, f form.Register) (entity.Viewer, error) {
	raw, err := c.do(ctx, http.MethodPost, "users", nil, envelope{"user": f})
	if err != nil {
		return entity.Viewer{}, err
	}
	return decodeViewer(raw)
}

// Settings loads the viewer's own account as the server currently has
// it, for pre-filling the settings form.
func (c *Client) Settings(ctx context.Context, viewer *entity.Viewer) (entity.Viewer, error) {
	raw, err := c.do(ctx, http.MethodGet, "user", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return entity.Viewer{}, err
	}
	return decodeViewer(raw)
}

// UpdateSettings submits the settings form and returns the refreshed
// viewer, including a possibly re-issued token.
func (c *Client) UpdateSettings(ctx context.Context, viewer *entity.Viewer, f form.Settings) (entity.Viewer, error) {
	raw, err := c.do(ctx, http.MethodPut, "user", entity.CredentialsOf(viewer), envelope{"user": f})
	if err != nil {
		return entity.Viewer{}, err
	}
	return decodeViewer(raw)
}

func decodeViewer(raw []byte) (entity.Viewer, error) {
	root, err := decodeBody[userRoot](raw)
	if err != nil {
		return entity.Viewer{}, err
	}
	return root.User.IntoViewer(), nil
}
