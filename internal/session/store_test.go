package session

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"conduit-tui/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(filepath.Join(t.TempDir(), "session.db"), log)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_LoadEmpty(t *testing.T) {
	store := openTestStore(t)

	viewer, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if viewer != nil {
		t.Errorf("viewer = %+v, want nil", viewer)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	viewer := &entity.Viewer{
		Credentials: entity.Credentials{Username: "jake", AuthToken: "jwt-token"},
		Email:       "jake@example.com",
		Profile: entity.Profile{
			Bio:    "I work at statefarm",
			Avatar: "https://example.com/jake.png",
		},
	}

	if err := store.Save(ctx, viewer); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(loaded, viewer) {
		t.Errorf("loaded = %+v, want %+v", loaded, viewer)
	}
}

func TestStore_SaveReplacesExisting(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := &entity.Viewer{Credentials: entity.Credentials{Username: "jake", AuthToken: "t1"}}
	second := &entity.Viewer{Credentials: entity.Credentials{Username: "anah", AuthToken: "t2"}, Email: "anah@example.com"}

	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Username() != "anah" || loaded.Credentials.AuthToken != "t2" {
		t.Errorf("loaded = %+v, want the second viewer", loaded)
	}
}

func TestStore_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	viewer := &entity.Viewer{Credentials: entity.Credentials{Username: "jake", AuthToken: "t"}}
	if err := store.Save(ctx, viewer); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Errorf("viewer = %+v, want nil after clear", loaded)
	}
}
