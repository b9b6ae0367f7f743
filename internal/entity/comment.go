package entity

// CommentID is a comment's opaque identifier. The server happens to use
// integers; the client treats the value as an opaque string and only
// ever compares it for equality.
type CommentID string

func (id CommentID) String() string { return string(id) }

type Comment struct {
	ID        CommentID
	CreatedAt Timestamp
	UpdatedAt Timestamp
	Body      string
	Author    Author
}
