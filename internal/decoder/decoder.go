// Package decoder holds the wire-shaped DTOs for server payloads and the
// pure functions that turn them into domain entities. Decoding is where
// the "who is this author relative to me" question is answered, so every
// decode takes the current viewer (or nil) as an explicit argument;
// nothing in this package reads shared state or performs I/O.
package decoder

import (
	"fmt"
	"strconv"

	"conduit-tui/internal/entity"
	"conduit-tui/internal/utils/functional"
)

// TimestampError reports a timestamp field that could not be parsed.
// A single bad timestamp fails the whole entity; there is no fallback
// to "now" or to the epoch.
type TimestampError struct {
	Field string
	Raw   string
	cause error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp in field %q: %q", e.Field, e.Raw)
}

func (e *TimestampError) Unwrap() error { return e.cause }

func parseTimestamp(field, raw string) (entity.Timestamp, error) {
	ts, err := entity.ParseTimestamp(raw)
	if err != nil {
		return entity.Timestamp{}, &TimestampError{Field: field, Raw: raw, cause: err}
	}
	return ts, nil
}

// Author mirrors the profile object embedded in articles, comments and
// the profile endpoints.
type Author struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// IntoAuthor classifies the wire author relative to the viewer. The
// rules, in order:
//
//  1. viewer present and usernames equal (case-sensitive) -> the author
//     is the viewer; the wire `following` flag is ignored since one
//     cannot follow oneself
//  2. `following` true -> a followed author
//  3. otherwise -> an unfollowed author
//
// This is the single place author classification happens; every request
// operation funnels through it.
func (d Author) IntoAuthor(viewer *entity.Viewer) entity.Author {
	profile := d.profile()

	if viewer != nil && d.Username == viewer.Username() {
		return entity.ViewerAuthor{
			Credentials: viewer.Credentials,
			UserProfile: profile,
		}
	}
	if d.Following {
		return entity.FollowedAuthor{Name: d.Username, UserProfile: profile}
	}
	return entity.UnfollowedAuthor{Name: d.Username, UserProfile: profile}
}

func (d Author) profile() entity.Profile {
	return entity.Profile{
		Bio:    stringOrEmpty(d.Bio),
		Avatar: entity.Avatar(stringOrEmpty(d.Image)),
	}
}

// Article mirrors the article object of the wire protocol.
type Article struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Body           string   `json:"body"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
	TagList        []string `json:"tagList"`
	Description    string   `json:"description"`
	Author         Author   `json:"author"`
	Favorited      bool     `json:"favorited"`
	FavoritesCount int64    `json:"favoritesCount"`
}

// IntoArticle decodes the DTO into a domain article. The slug is copied
// verbatim; the `favorited` flag keeps whatever meaning it had relative
// to the credentials the request was made with.
func (d Article) IntoArticle(viewer *entity.Viewer) (entity.Article, error) {
	createdAt, err := parseTimestamp("createdAt", d.CreatedAt)
	if err != nil {
		return entity.Article{}, err
	}
	updatedAt, err := parseTimestamp("updatedAt", d.UpdatedAt)
	if err != nil {
		return entity.Article{}, err
	}

	return entity.Article{
		Title:          d.Title,
		Slug:           entity.Slug(d.Slug),
		Body:           d.Body,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
		TagList:        functional.Map(d.TagList, func(t string) entity.Tag { return entity.Tag(t) }),
		Description:    d.Description,
		Author:         d.Author.IntoAuthor(viewer),
		Favorited:      d.Favorited,
		FavoritesCount: d.FavoritesCount,
	}, nil
}

// Comment mirrors the comment object of the wire protocol.
type Comment struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Body      string `json:"body"`
	Author    Author `json:"author"`
}

func (d Comment) IntoComment(viewer *entity.Viewer) (entity.Comment, error) {
	createdAt, err := parseTimestamp("createdAt", d.CreatedAt)
	if err != nil {
		return entity.Comment{}, err
	}
	updatedAt, err := parseTimestamp("updatedAt", d.UpdatedAt)
	if err != nil {
		return entity.Comment{}, err
	}

	return entity.Comment{
		ID:        entity.CommentID(strconv.FormatInt(d.ID, 10)),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Body:      d.Body,
		Author:    d.Author.IntoAuthor(viewer),
	}, nil
}

// Viewer mirrors the user object returned by login, register and the
// settings endpoints.
type Viewer struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

func (d Viewer) IntoViewer() entity.Viewer {
	return entity.Viewer{
		Credentials: entity.Credentials{
			Username:  d.Username,
			AuthToken: d.Token,
		},
		Email: d.Email,
		Profile: entity.Profile{
			Bio:    stringOrEmpty(d.Bio),
			Avatar: entity.Avatar(stringOrEmpty(d.Image)),
		},
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
