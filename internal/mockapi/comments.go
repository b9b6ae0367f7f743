package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"conduit-tui/internal/utils/functional"
	"conduit-tui/internal/validator"
)

type commentJSON struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Body      string      `json:"body"`
	Author    profileJSON `json:"author"`
}

// commentView renders a comment as seen by the viewer. Callers hold
// s.mu.
func (s *Server) commentView(c *comment, viewer *user) commentJSON {
	view := commentJSON{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Body:      c.Body,
	}
	if author := s.users[c.Author]; author != nil {
		view.Author = profileOf(author, viewer)
	} else {
		view.Author = profileJSON{Username: c.Author}
	}
	return view
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	viewer := s.viewerOf(r)

	s.mu.Lock()
	if s.findArticle(slug) == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	views := functional.Map(s.comments[slug], func(c *comment) commentJSON {
		return s.commentView(c, viewer)
	})
	s.mu.Unlock()

	if views == nil {
		views = []commentJSON{}
	}
	s.writeJSON(w, http.StatusOK, envelope{"comments": views})
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	viewer := s.viewerOf(r)

	var payload struct {
		Comment struct {
			Body string `json:"body"`
		} `json:"comment"`
	}
	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(payload.Comment.Body, "body", "can't be blank")
	if !v.IsValid() {
		s.validationFailed(w, v)
		return
	}

	now := time.Now().UTC()

	s.mu.Lock()
	if s.findArticle(slug) == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	c := &comment{
		ID:        s.nextID,
		Body:      payload.Comment.Body,
		CreatedAt: now,
		UpdatedAt: now,
		Author:    viewer.Username,
	}
	s.nextID++
	s.comments[slug] = append(s.comments[slug], c)
	view := s.commentView(c, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, envelope{"comment": view})
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	slug := params.ByName("slug")
	viewer := s.viewerOf(r)

	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil {
		s.notFound(w)
		return
	}

	s.mu.Lock()
	comments := s.comments[slug]
	for i, c := range comments {
		if c.ID != id {
			continue
		}
		if c.Author != viewer.Username {
			s.mu.Unlock()
			s.forbidden(w)
			return
		}
		s.comments[slug] = append(comments[:i], comments[i+1:]...)
		s.mu.Unlock()
		s.writeJSON(w, http.StatusOK, envelope{})
		return
	}
	s.mu.Unlock()
	s.notFound(w)
}
