package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/zatyshok/internal/client/migrations"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/dmitrijs2005/zatyshok/internal/filex"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the session in the local metadata table so it survives
// restarts, the way the desktop shell keeps it in local storage.
type SQLiteStore struct {
	repo metadata.Repository
	db   *sql.DB
}

// NewSQLiteStore wraps an existing metadata repository. Close is a no-op
// for stores built this way.
func NewSQLiteStore(repo metadata.Repository) *SQLiteStore {
	return &SQLiteStore{repo: repo}
}

// OpenSQLite opens (or creates) the database at dsn, applies migrations and
// returns a store owning the connection.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if filex.IsFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("prepare session db: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLiteStore{repo: metadata.NewSQLiteRepository(db), db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context) (models.Session, error) {
	token, _, err := s.repo.Get(ctx, common.SessionTokenKey)
	if err != nil {
		return models.Session{}, err
	}
	username, _, err := s.repo.Get(ctx, common.SessionUsernameKey)
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{Token: token, Username: username}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sess models.Session) error {
	return s.repo.SetMany(ctx, map[string]string{
		common.SessionTokenKey:    sess.Token,
		common.SessionUsernameKey: sess.Username,
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.SessionTokenKey, common.SessionUsernameKey)
}

// Close releases the database opened by OpenSQLite.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
