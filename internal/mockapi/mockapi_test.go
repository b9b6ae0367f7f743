package mockapi

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), "test-secret")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"How to train your dragon", "how-to-train-your-dragon"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"What's up?", "whats-up"},
		{"a/b\\c", "abc"},
	}

	for _, tt := range tests {
		if got := slugify(tt.title); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	s := testServer(t)
	if err := s.SeedUser("jake", "jake@example.com", "password123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first := s.SeedArticle("jake", "Same title", "d", "b", nil)
	second := s.SeedArticle("jake", "Same title", "d", "b", nil)
	third := s.SeedArticle("jake", "Same title", "d", "b", nil)

	if first != "same-title" || second != "same-title-2" || third != "same-title-3" {
		t.Errorf("slugs = %q, %q, %q", first, second, third)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := testServer(t)
	u := &user{Username: "jake", Email: "jake@example.com"}

	token, err := s.issueToken(u, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claim, err := s.verifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claim.Username != "jake" || claim.Email != "jake@example.com" {
		t.Errorf("claim = %+v", claim)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := testServer(t)
	verifier := New(slog.New(slog.NewTextHandler(io.Discard, nil)), "other-secret")

	token, err := issuer.issueToken(&user{Username: "jake"}, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.verifyToken(token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	s := testServer(t)
	token, err := s.issueToken(&user{Username: "jake"}, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := s.verifyToken(token); err == nil {
		t.Fatal("expected verification failure")
	}
}
