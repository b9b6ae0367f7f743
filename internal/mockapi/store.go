package mockapi

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"conduit-tui/internal/utils/collectionutils"
)

type user struct {
	Email     string
	Username  string
	Bio       string
	Image     string
	Password  []byte
	Following map[string]bool
}

type article struct {
	Slug        string
	Title       string
	Description string
	Body        string
	TagList     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Author      string
	FavoritedBy map[string]bool
}

type comment struct {
	ID        int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    string
}

// SeedUser registers an account directly in the store, for tests and
// the offline demo.
func (s *Server) SeedUser(username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = &user{
		Email:     email,
		Username:  username,
		Password:  hash,
		Following: make(map[string]bool),
	}
	s.emails[email] = username
	return nil
}

// SeedArticle publishes an article directly in the store.
func (s *Server) SeedArticle(author, title, description, body string, tags []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	a := &article{
		Slug:        s.uniqueSlug(slugify(title)),
		Title:       title,
		Description: description,
		Body:        body,
		TagList:     tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      author,
		FavoritedBy: make(map[string]bool),
	}
	s.articles = append([]*article{a}, s.articles...)
	return a.Slug
}

func (s *Server) findArticle(slug string) *article {
	for _, a := range s.articles {
		if a.Slug == slug {
			return a
		}
	}
	return nil
}

func (s *Server) removeArticle(slug string) {
	for i, a := range s.articles {
		if a.Slug == slug {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			delete(s.comments, slug)
			return
		}
	}
}

// uniqueSlug appends a numeric suffix until the slug is free. Callers
// hold s.mu.
func (s *Server) uniqueSlug(base string) string {
	taken := collectionutils.Associate(s.articles, func(a *article) (string, bool) {
		return a.Slug, true
	})

	slug := base
	for n := 2; taken[slug]; n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	return slug
}

func (s *Server) allTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, a := range s.articles {
		for _, t := range a.TagList {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")

	replacements := []string{".", ",", "!", "?", ":", ";", "'", "\"", "(", ")", "[", "]", "{", "}", "/", "\\"}
	for _, char := range replacements {
		slug = strings.ReplaceAll(slug, char, "")
	}

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}
