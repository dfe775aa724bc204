package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/trackbot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store is a SQLite-backed session store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite session store in the specified data directory.
// If dataDir is empty, defaults to ~/.trackbot/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".trackbot", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// sessionKey is the persisted key for a user's state record.
func sessionKey(user domain.UserID) string {
	return fmt.Sprintf("state:%d", user)
}

// Get returns the user's state. An absent row is Idle; an unreadable
// record is logged and also treated as Idle so one corrupt row cannot
// take the dispatch loop down.
func (s *Store) Get(ctx context.Context, user domain.UserID) (domain.State, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM sessions WHERE key = ?", sessionKey(user),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Idle{}, nil
	}
	if err != nil {
		return domain.Idle{}, fmt.Errorf("reading session: %w", err)
	}

	state, err := domain.UnmarshalState([]byte(raw))
	if err != nil {
		logger.Warn("corrupt session record for user %d: %v, treating as idle", user, err)
		return domain.Idle{}, nil
	}
	return state, nil
}

// Set overwrites the user's state.
func (s *Store) Set(ctx context.Context, user domain.UserID, state domain.State) error {
	raw, err := domain.MarshalState(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (key, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP
	`, sessionKey(user), string(raw))
	if err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// migrate applies any pending schema migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
