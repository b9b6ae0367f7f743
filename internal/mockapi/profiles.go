package mockapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type profileJSON struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// profileOf renders a user as seen by the (possibly nil) viewer.
// Callers hold s.mu.
func profileOf(u *user, viewer *user) profileJSON {
	following := false
	if viewer != nil && viewer.Username != u.Username {
		following = viewer.Following[u.Username]
	}
	return profileJSON{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")
	viewer := s.viewerOf(r)

	s.mu.Lock()
	u := s.users[username]
	if u == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	profile := profileOf(u, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"profile": profile})
}

func (s *Server) follow(w http.ResponseWriter, r *http.Request) {
	s.setFollowing(w, r, true)
}

func (s *Server) unfollow(w http.ResponseWriter, r *http.Request) {
	s.setFollowing(w, r, false)
}

func (s *Server) setFollowing(w http.ResponseWriter, r *http.Request, following bool) {
	username := httprouter.ParamsFromContext(r.Context()).ByName("username")
	viewer := s.viewerOf(r)

	s.mu.Lock()
	u := s.users[username]
	if u == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	if following {
		viewer.Following[username] = true
	} else {
		delete(viewer.Following, username)
	}
	profile := profileOf(u, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"profile": profile})
}
