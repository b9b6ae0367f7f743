package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"conduit-tui/internal/config"
	"conduit-tui/internal/entity"
	"conduit-tui/internal/logging"
	"conduit-tui/internal/request"
	"conduit-tui/internal/session"
	"conduit-tui/internal/tui"
)

func main() {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading configuration: %v\n", err)
		os.Exit(1)
	}

	// the TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := logging.New(logFile, cfg.LogLevel)
	logger.Info("starting conduit", slog.String("api_root", cfg.APIRoot))

	store, err := session.Open(cfg.SessionPath, logger)
	if err != nil {
		// run without persistence rather than not at all
		logger.Error("opening session store", slog.String("error", err.Error()))
		store = nil
	} else {
		defer store.Close()
	}

	viewer, err := loadViewer(store)
	if err != nil {
		logger.Error("restoring session", slog.String("error", err.Error()))
	}
	if viewer != nil {
		logger.Info("session restored", slog.String("username", viewer.Username()))
	}

	client := request.New(cfg.APIRoot, cfg.RequestTimeout, logger)
	model := tui.New(client, store, viewer, cfg.PageSize, logger)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		logger.Error("program exited", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadViewer(store *session.Store) (*entity.Viewer, error) {
	if store == nil {
		return nil, nil
	}
	return store.Load(context.Background())
}
