package store

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/utils"
)

// Backend names a supported database
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Target is a parsed store URI
type Target struct {
	Backend Backend
	// Path is the database file for SQLite
	Path string
	// DSN is what gets handed to sql.Open
	DSN string
}

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// ParseURI resolves a store URI:
//
//	sqlite:///abs/path.db, sqlite://rel.db, /abs/path.db   SQLite file
//	postgres://..., postgresql://...                      PostgreSQL
//
// Any other scheme is rejected.
func ParseURI(uri string) (Target, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return Target{}, errors.New(errors.ErrStoreOpen, "empty store uri")
	}

	scheme, rest, hasScheme := strings.Cut(uri, "://")
	if !hasScheme {
		return sqliteTarget(uri)
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3", "file":
		return sqliteTarget(rest)
	case "postgres", "postgresql":
		return Target{Backend: BackendPostgres, DSN: uri}, nil
	}

	return Target{}, errors.Newf(errors.ErrStoreOpen, "unsupported store scheme %q", scheme).
		WithDetail("uri", uri)
}

func sqliteTarget(path string) (Target, error) {
	if path == "" {
		return Target{}, errors.New(errors.ErrStoreOpen, "sqlite uri has no path")
	}
	path = filepath.Clean(utils.ExpandPath(path))
	return Target{
		Backend: BackendSQLite,
		Path:    path,
		DSN:     "file:" + path + "?" + sqlitePragmas,
	}, nil
}
