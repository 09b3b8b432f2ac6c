// Package store persists the registry of VPN configuration paths.
//
// The registry is a single SQLite table. Every operation opens its own
// connection and closes it before returning, so a PathStore holds no
// state between calls and is safe to share.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/yllada/wg-toggle/common"

	// Import migrations to register them with goose
	_ "github.com/yllada/wg-toggle/store/migrations"
)

const (
	driverName = "sqlite"
	// busyTimeoutMs lets a CLI call wait for a concurrent tray write.
	busyTimeoutMs = 5000
)

// PathEntry is one registered configuration path.
type PathEntry struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
}

// PathStore is the SQLite-backed path registry.
type PathStore struct {
	path string
}

// New returns a store for the database file at path. Nothing is opened
// until the first operation.
func New(path string) *PathStore {
	return &PathStore{path: path}
}

// Path returns the database file location.
func (s *PathStore) Path() string {
	return s.path
}

// Initialize ensures the database directory and schema exist.
// It is idempotent and meant to run on every process start.
func (s *PathStore) Initialize(ctx context.Context) error {
	if err := common.EnsureDir(filepath.Dir(s.path)); err != nil {
		return unavailable(err)
	}

	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Only the Go migrations registered by store/migrations run; nothing is
	// read from the working directory.
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, nil)
	if err != nil {
		return storageErr(fmt.Errorf("failed to load migrations: %w", err))
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return storageErr(fmt.Errorf("failed to run migrations: %w", err))
	}
	for _, r := range results {
		common.Log().Debug().Int64("version", r.Source.Version).Dur("took", r.Duration).Msg("migration applied")
	}

	common.Log().Debug().Str("db", s.path).Msg("path store initialized")
	return nil
}

// Add inserts path and returns its new ID. The path is stored verbatim.
func (s *PathStore) Add(ctx context.Context, path string) (int64, error) {
	db, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `INSERT INTO vpn_paths (path) VALUES (?)`, path)
	if err != nil {
		return 0, storageErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(err)
	}

	common.Log().Info().Int64("id", id).Str("path", path).Msg("path added")
	return id, nil
}

// DeleteAll removes every entry. It succeeds on an empty registry.
func (s *PathStore) DeleteAll(ctx context.Context) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM vpn_paths`)
	if err != nil {
		return storageErr(err)
	}

	n, _ := res.RowsAffected()
	common.Log().Info().Int64("removed", n).Msg("paths cleared")
	return nil
}

// List returns every stored path ordered by ID. The result is empty,
// never nil, when nothing is registered.
func (s *PathStore) List(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	return paths, nil
}

// Entries returns every stored entry with its ID, ordered by ID.
func (s *PathStore) Entries(ctx context.Context) ([]PathEntry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, path FROM vpn_paths ORDER BY id`)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	entries := make([]PathEntry, 0)
	for rows.Next() {
		var e PathEntry
		if err := rows.Scan(&e.ID, &e.Path); err != nil {
			return nil, storageErr(err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}

// open returns a fresh single-connection handle. The caller closes it.
func (s *PathStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverName, s.dsn())
	if err != nil {
		return nil, unavailable(err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable(err)
	}
	return db, nil
}

// dsn returns the database location as a file: URI so that characters
// such as '?' and '#' stay part of the file name.
func (s *PathStore) dsn() string {
	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     s.path,
		RawQuery: fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeoutMs),
	}
	return u.String()
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
