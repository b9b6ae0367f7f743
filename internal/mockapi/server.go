// Package mockapi is an in-memory Conduit API server. It backs the
// pipeline tests and the offline demo mode, speaking the same wire
// protocol as the hosted API: resource-named JSON roots, "Token"
// authorization, and {"errors": {field: [messages]}} failure payloads.
package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
	"github.com/mdobak/go-xerrors"

	"conduit-tui/internal/validator"
	"conduit-tui/internal/web"
)

const userCtxKey = "mockapi_user"

type envelope map[string]any

type Server struct {
	log    *slog.Logger
	secret []byte

	mu       sync.Mutex
	users    map[string]*user  // by username
	emails   map[string]string // email -> username
	articles []*article        // newest first
	comments map[string][]*comment
	nextID   int64
}

func New(log *slog.Logger, secret string) *Server {
	return &Server{
		log:      log,
		secret:   []byte(secret),
		users:    make(map[string]*user),
		emails:   make(map[string]string),
		comments: make(map[string][]*comment),
		nextID:   1,
	}
}

// Router wires up the full Conduit endpoint surface.
func (s *Server) Router() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w)
	})

	router.HandlerFunc(http.MethodPost, "/api/users", s.register)
	router.HandlerFunc(http.MethodPost, "/api/users/login", s.login)
	router.HandlerFunc(http.MethodGet, "/api/user", s.requireUser(s.currentUser))
	router.HandlerFunc(http.MethodPut, "/api/user", s.requireUser(s.updateUser))

	router.HandlerFunc(http.MethodGet, "/api/profiles/:username", s.getProfile)
	router.HandlerFunc(http.MethodPost, "/api/profiles/:username/follow", s.requireUser(s.follow))
	router.HandlerFunc(http.MethodDelete, "/api/profiles/:username/follow", s.requireUser(s.unfollow))

	router.HandlerFunc(http.MethodGet, "/api/articles", s.listArticles)
	router.HandlerFunc(http.MethodPost, "/api/articles", s.requireUser(s.createArticle))
	// httprouter cannot register /api/articles/feed next to :slug, so
	// getArticle dispatches the "feed" slug to the personal feed.
	router.HandlerFunc(http.MethodGet, "/api/articles/:slug", s.getArticle)
	router.HandlerFunc(http.MethodPut, "/api/articles/:slug", s.requireUser(s.updateArticle))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug", s.requireUser(s.deleteArticle))

	router.HandlerFunc(http.MethodPost, "/api/articles/:slug/favorite", s.requireUser(s.favorite))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug/favorite", s.requireUser(s.unfavorite))

	router.HandlerFunc(http.MethodGet, "/api/articles/:slug/comments", s.listComments)
	router.HandlerFunc(http.MethodPost, "/api/articles/:slug/comments", s.requireUser(s.createComment))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug/comments/:id", s.requireUser(s.deleteComment))

	router.HandlerFunc(http.MethodGet, "/api/tags", s.listTags)

	return s.authenticate(router)
}

// authenticate resolves an optional "Token <t>" header into the request
// context. Endpoints that demand a user wrap with requireUser.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorization := r.Header.Get("Authorization")
		if authorization != "" {
			parts := strings.Split(authorization, " ")
			if len(parts) != 2 || parts[0] != "Token" {
				s.unauthorized(w)
				return
			}

			claim, err := s.verifyToken(parts[1])
			if err != nil {
				s.unauthorized(w)
				return
			}

			s.mu.Lock()
			u := s.users[claim.Username]
			s.mu.Unlock()
			if u == nil {
				s.unauthorized(w)
				return
			}
			r = web.WithValue(r, userCtxKey, u)
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := web.Value[*user](r, userCtxKey); !ok {
			s.unauthorized(w)
			return
		}
		next(w, r)
	}
}

func (s *Server) viewerOf(r *http.Request) *user {
	u, _ := web.Value[*user](r, userCtxKey)
	return u
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data envelope) {
	js, err := json.Marshal(data)
	if err != nil {
		s.log.Error("marshal response", slog.String("error", xerrors.Sprint(err)))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		s.log.Error(err.Error())
	}
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	const maxBytes = 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return xerrors.Newf("body contains malformed JSON: %w", err)
	}
	return nil
}

// errorResponse renders the wire error shape the client decodes:
// {"errors": {"<field>": ["<message>", ...]}}.
func (s *Server) errorResponse(w http.ResponseWriter, status int, errors map[string][]string) {
	s.writeJSON(w, status, envelope{"errors": errors})
}

func (s *Server) validationFailed(w http.ResponseWriter, v *validator.Validator) {
	s.errorResponse(w, http.StatusUnprocessableEntity, v.Errors())
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.errorResponse(w, http.StatusBadRequest, map[string][]string{"body": {err.Error()}})
}

func (s *Server) notFound(w http.ResponseWriter) {
	s.errorResponse(w, http.StatusNotFound, map[string][]string{"resource": {"not found"}})
}

func (s *Server) forbidden(w http.ResponseWriter) {
	s.errorResponse(w, http.StatusForbidden, map[string][]string{"user": {"is not the owner"}})
}

func (s *Server) unauthorized(w http.ResponseWriter) {
	s.errorResponse(w, http.StatusUnauthorized, map[string][]string{"token": {"is missing or invalid"}})
}
