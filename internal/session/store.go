package session

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	_ "modernc.org/sqlite"

	"conduit-tui/internal/entity"
)

// Store persists the viewer between runs so the session survives a
// restart. The database holds at most one row.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, xerrors.Newf("open session store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const stmt = `CREATE TABLE IF NOT EXISTS session (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        token TEXT NOT NULL,
        username TEXT NOT NULL,
        email TEXT NOT NULL,
        bio TEXT NOT NULL,
        image TEXT NOT NULL
    );`
	if _, err := s.db.Exec(stmt); err != nil {
		return xerrors.Newf("migrate session store: %w", err)
	}
	return nil
}

// Load restores the saved viewer; (nil, nil) when no session is stored.
func (s *Store) Load(ctx context.Context) (*entity.Viewer, error) {
	const query = `SELECT token, username, email, bio, image FROM session WHERE id = 1`

	var token, username, email, bio, image string
	err := s.db.QueryRowContext(ctx, query).Scan(&token, &username, &email, &bio, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, xerrors.Newf("load session: %w", err)
	}

	return &entity.Viewer{
		Credentials: entity.Credentials{Username: username, AuthToken: token},
		Email:       email,
		Profile: entity.Profile{
			Bio:    bio,
			Avatar: entity.Avatar(image),
		},
	}, nil
}

// Save replaces the stored session with the given viewer.
func (s *Store) Save(ctx context.Context, viewer *entity.Viewer) error {
	const stmt = `INSERT INTO session (id, token, username, email, bio, image)
        VALUES (1, ?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            token = excluded.token,
            username = excluded.username,
            email = excluded.email,
            bio = excluded.bio,
            image = excluded.image`

	_, err := s.db.ExecContext(ctx, stmt,
		viewer.Credentials.AuthToken,
		viewer.Credentials.Username,
		viewer.Email,
		viewer.Profile.Bio,
		string(viewer.Profile.Avatar),
	)
	if err != nil {
		return xerrors.Newf("save session: %w", err)
	}
	return nil
}

// Clear removes the stored session on logout.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return xerrors.Newf("clear session: %w", err)
	}
	return nil
}
