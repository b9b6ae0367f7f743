package mockapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"conduit-tui/internal/utils/functional"
	"conduit-tui/internal/validator"
)

type articleJSON struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favoritesCount"`
	Author         profileJSON `json:"author"`
}

// articleView renders an article as seen by the viewer. Callers hold
// s.mu.
func (s *Server) articleView(a *article, viewer *user) articleJSON {
	favorited := false
	if viewer != nil {
		favorited = a.FavoritedBy[viewer.Username]
	}

	tags := a.TagList
	if tags == nil {
		tags = []string{}
	}

	view := articleJSON{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Favorited:      favorited,
		FavoritesCount: int64(len(a.FavoritedBy)),
	}
	if author := s.users[a.Author]; author != nil {
		view.Author = profileOf(author, viewer)
	} else {
		view.Author = profileJSON{Username: a.Author}
	}
	return view
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	tag := query.Get("tag")
	author := query.Get("author")
	favoritedBy := query.Get("favorited")
	limit := readInt(query.Get("limit"), 20)
	offset := readInt(query.Get("offset"), 0)

	viewer := s.viewerOf(r)

	s.mu.Lock()
	matched := functional.Filter(s.articles, func(a *article) bool {
		if tag != "" && !contains(a.TagList, tag) {
			return false
		}
		if author != "" && a.Author != author {
			return false
		}
		if favoritedBy != "" && !a.FavoritedBy[favoritedBy] {
			return false
		}
		return true
	})
	response := s.articlesPage(matched, viewer, limit, offset)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) personalFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := readInt(query.Get("limit"), 20)
	offset := readInt(query.Get("offset"), 0)

	viewer := s.viewerOf(r)

	s.mu.Lock()
	matched := functional.Filter(s.articles, func(a *article) bool {
		return viewer.Following[a.Author]
	})
	response := s.articlesPage(matched, viewer, limit, offset)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, response)
}

// articlesPage slices the matched set into one page plus the full
// count. Callers hold s.mu.
func (s *Server) articlesPage(matched []*article, viewer *user, limit, offset int) envelope {
	total := int64(len(matched))

	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	page := functional.Map(matched[offset:end], func(a *article) articleJSON {
		return s.articleView(a, viewer)
	})
	if page == nil {
		page = []articleJSON{}
	}

	return envelope{"articles": page, "articlesCount": total}
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	if slug == "feed" {
		s.requireUser(s.personalFeed)(w, r)
		return
	}

	viewer := s.viewerOf(r)

	s.mu.Lock()
	a := s.findArticle(slug)
	if a == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	view := s.articleView(a, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"article": view})
}

type articlePayload struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	viewer := s.viewerOf(r)

	var payload articlePayload
	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(payload.Article.Title, "title", "can't be blank")
	v.CheckNotBlank(payload.Article.Description, "description", "can't be blank")
	v.CheckNotBlank(payload.Article.Body, "body", "can't be blank")
	if !v.IsValid() {
		s.validationFailed(w, v)
		return
	}

	now := time.Now().UTC()

	s.mu.Lock()
	a := &article{
		Slug:        s.uniqueSlug(slugify(payload.Article.Title)),
		Title:       payload.Article.Title,
		Description: payload.Article.Description,
		Body:        payload.Article.Body,
		TagList:     payload.Article.TagList,
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      viewer.Username,
		FavoritedBy: make(map[string]bool),
	}
	s.articles = append([]*article{a}, s.articles...)
	view := s.articleView(a, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, envelope{"article": view})
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	viewer := s.viewerOf(r)

	var payload articlePayload
	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	s.mu.Lock()
	a := s.findArticle(slug)
	if a == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	if a.Author != viewer.Username {
		s.mu.Unlock()
		s.forbidden(w)
		return
	}

	if payload.Article.Title != "" && payload.Article.Title != a.Title {
		a.Title = payload.Article.Title
		a.Slug = s.uniqueSlug(slugify(a.Title))
	}
	if payload.Article.Description != "" {
		a.Description = payload.Article.Description
	}
	if payload.Article.Body != "" {
		a.Body = payload.Article.Body
	}
	if payload.Article.TagList != nil {
		a.TagList = payload.Article.TagList
	}
	a.UpdatedAt = time.Now().UTC()
	view := s.articleView(a, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"article": view})
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	viewer := s.viewerOf(r)

	s.mu.Lock()
	a := s.findArticle(slug)
	if a == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	if a.Author != viewer.Username {
		s.mu.Unlock()
		s.forbidden(w)
		return
	}
	s.removeArticle(slug)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{})
}

func (s *Server) favorite(w http.ResponseWriter, r *http.Request) {
	s.setFavorited(w, r, true)
}

func (s *Server) unfavorite(w http.ResponseWriter, r *http.Request) {
	s.setFavorited(w, r, false)
}

func (s *Server) setFavorited(w http.ResponseWriter, r *http.Request, favorited bool) {
	slug := httprouter.ParamsFromContext(r.Context()).ByName("slug")
	viewer := s.viewerOf(r)

	s.mu.Lock()
	a := s.findArticle(slug)
	if a == nil {
		s.mu.Unlock()
		s.notFound(w)
		return
	}
	if favorited {
		a.FavoritedBy[viewer.Username] = true
	} else {
		delete(a.FavoritedBy, viewer.Username)
	}
	view := s.articleView(a, viewer)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, envelope{"article": view})
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tags := s.allTags()
	s.mu.Unlock()

	if tags == nil {
		tags = []string{}
	}
	s.writeJSON(w, http.StatusOK, envelope{"tags": tags})
}

func readInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
