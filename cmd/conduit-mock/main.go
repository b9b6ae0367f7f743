// conduit-mock serves an in-memory Conduit API on localhost, seeded
// with demo content, so the client can run without the hosted backend:
//
//	CONDUIT_API_ROOT=http://localhost:9091/api conduit
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/golang-cz/devslog"

	"conduit-tui/internal/mockapi"
)

func main() {
	logger := slog.New(devslog.NewHandler(os.Stdout, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		},
		NewLineAfterLog: false,
	}))

	addr := os.Getenv("CONDUIT_MOCK_ADDR")
	if addr == "" {
		addr = "localhost:9091"
	}
	secret := os.Getenv("CONDUIT_MOCK_SECRET")
	if secret == "" {
		secret = "mock-only-secret"
	}

	server := mockapi.New(logger, secret)
	seed(server, logger)

	logger.Info("mock conduit API listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func seed(server *mockapi.Server, logger *slog.Logger) {
	users := []struct{ username, email, password string }{
		{"jake", "jake@example.com", "password123"},
		{"anah", "anah@example.com", "password123"},
	}
	for _, u := range users {
		if err := server.SeedUser(u.username, u.email, u.password); err != nil {
			logger.Error("seeding user", slog.String("username", u.username), slog.String("error", err.Error()))
		}
	}

	server.SeedArticle("jake", "How to train your dragon",
		"Ever wonder how?", "Very carefully.", []string{"dragons", "training"})
	server.SeedArticle("anah", "The hunger artist",
		"On fasting as performance", "During these last decades the interest in hunger artists has declined.", []string{"literature"})
	server.SeedArticle("jake", "Practical slug taxonomy",
		"A field guide", "Slugs are best identified by their URLs.", []string{"slugs", "taxonomy"})
}
