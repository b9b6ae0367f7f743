// Package session supplies the current viewer to the rest of the
// application. A Session is a snapshot, not a live subscription: code
// that holds one sees the viewer as of the moment it was taken.
package session

import (
	"conduit-tui/internal/entity"
)

type Session struct {
	viewer *entity.Viewer
}

// New builds a session around the given viewer; nil means logged out.
func New(viewer *entity.Viewer) Session {
	return Session{viewer: viewer}
}

func (s Session) Viewer() *entity.Viewer {
	return s.viewer
}

func (s Session) Credentials() *entity.Credentials {
	return entity.CredentialsOf(s.viewer)
}

func (s Session) LoggedIn() bool {
	return s.viewer != nil
}
