package entity

// Slug is an article's unique URL-safe identifier. It is the sole
// equality key when merging article updates into a page; it is copied
// from the wire verbatim, never normalized, and never parsed as a
// number even when it looks like one.
type Slug string

func (s Slug) String() string { return string(s) }

// Tag is a single article tag.
type Tag string

func (t Tag) String() string { return string(t) }

type Article struct {
	Title          string
	Slug           Slug
	Body           string
	CreatedAt      Timestamp
	UpdatedAt      Timestamp
	TagList        []Tag
	Description    string
	Author         Author
	Favorited      bool
	FavoritesCount int64
}
