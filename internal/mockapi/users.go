package mockapi

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"conduit-tui/internal/validator"
)

const tokenLifetime = 24 * time.Hour

type userJSON struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

func userResponse(u *user, token string) envelope {
	return envelope{"user": userJSON{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}}
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}

	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	username := strings.TrimSpace(payload.User.Username)
	email := strings.TrimSpace(payload.User.Email)

	v := validator.New()
	v.CheckNotBlank(username, "username", "can't be blank")
	v.CheckNotBlank(email, "email", "can't be blank")
	v.CheckNotBlank(payload.User.Password, "password", "can't be blank")
	if !v.IsValid() {
		s.validationFailed(w, v)
		return
	}

	s.mu.Lock()
	if _, exists := s.users[username]; exists {
		v.AddError("username", "has already been taken")
	}
	if _, exists := s.emails[email]; exists {
		v.AddError("email", "has already been taken")
	}
	if !v.IsValid() {
		s.mu.Unlock()
		s.validationFailed(w, v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.User.Password), bcrypt.DefaultCost)
	if err != nil {
		s.mu.Unlock()
		s.badRequest(w, err)
		return
	}

	u := &user{
		Email:     email,
		Username:  username,
		Password:  hash,
		Following: make(map[string]bool),
	}
	s.users[username] = u
	s.emails[email] = username
	s.mu.Unlock()

	token, err := s.issueToken(u, tokenLifetime)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, userResponse(u, token))
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		User struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		} `json:"user"`
	}

	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	s.mu.Lock()
	username := s.emails[payload.User.Email]
	u := s.users[username]
	s.mu.Unlock()

	if u == nil || bcrypt.CompareHashAndPassword(u.Password, []byte(payload.User.Password)) != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, map[string][]string{
			"email or password": {"is invalid"},
		})
		return
	}

	token, err := s.issueToken(u, tokenLifetime)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse(u, token))
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	u := s.viewerOf(r)

	token, err := s.issueToken(u, tokenLifetime)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse(u, token))
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	u := s.viewerOf(r)

	var payload struct {
		User struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			Bio      string `json:"bio"`
			Image    string `json:"image"`
			Password string `json:"password"`
		} `json:"user"`
	}

	if err := s.readJSON(w, r, &payload); err != nil {
		s.badRequest(w, err)
		return
	}

	v := validator.New()
	v.CheckNotBlank(payload.User.Username, "username", "can't be blank")
	v.CheckNotBlank(payload.User.Email, "email", "can't be blank")
	if !v.IsValid() {
		s.validationFailed(w, v)
		return
	}

	s.mu.Lock()
	// username changes would cascade through articles and follows; the
	// mock keeps usernames stable and only updates the rest
	if payload.User.Username != u.Username {
		s.mu.Unlock()
		v.AddError("username", "can't be changed")
		s.validationFailed(w, v)
		return
	}

	delete(s.emails, u.Email)
	u.Email = payload.User.Email
	s.emails[u.Email] = u.Username
	u.Bio = payload.User.Bio
	u.Image = payload.User.Image
	if payload.User.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(payload.User.Password), bcrypt.DefaultCost)
		if err != nil {
			s.mu.Unlock()
			s.badRequest(w, err)
			return
		}
		u.Password = hash
	}
	s.mu.Unlock()

	token, err := s.issueToken(u, tokenLifetime)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userResponse(u, token))
}
