package request

import (
	"context"
	"net/http"

	"conduit-tui/internal/decoder"
	"conduit-tui/internal/entity"
)

type profileRoot struct {
	Profile decoder.Author `json:"profile"`
}

// Profile loads another user's public profile, classified relative to
// the viewer like any other author.
func (c *Client) Profile(ctx context.Context, viewer *entity.Viewer, username string) (entity.Author, error) {
	raw, err := c.do(ctx, http.MethodGet, "profiles/"+escape(username), entity.CredentialsOf(viewer), nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw, viewer)
}

// Follow subscribes the viewer to the user's articles.
func (c *Client) Follow(ctx context.Context, viewer *entity.Viewer, username string) (entity.Author, error) {
	raw, err := c.do(ctx, http.MethodPost, "profiles/"+escape(username)+"/follow", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw, viewer)
}

// Unfollow cancels the subscription.
func (c *Client) Unfollow(ctx context.Context, viewer *entity.Viewer, username string) (entity.Author, error) {
	raw, err := c.do(ctx, http.MethodDelete, "profiles/"+escape(username)+"/follow", entity.CredentialsOf(viewer), nil)
	if err != nil {
		return nil, err
	}
	return decodeProfile(raw, viewer)
}

func decodeProfile(raw []byte, viewer *entity.Viewer) (entity.Author, error) {
	root, err := decodeBody[profileRoot](raw)
	if err != nil {
		return nil, err
	}
	return root.Profile.IntoAuthor(viewer), nil
}
