// Package store persists tagged paths in a SQL database and finds them
// again by tag. SQLite (modernc.org/sqlite, no cgo) is the default backend;
// PostgreSQL is reached through the pgx stdlib driver.
//
// A record is one row in records plus one row per tag in record_tags,
// keeping tag order. Records are never deduplicated: tagging the same path
// twice stores two records.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store is a types.RecordStore backed by database/sql. It is safe for
// concurrent use.
type Store struct {
	db      *sql.DB
	backend Backend
	logger  zerolog.Logger
}

var _ types.RecordStore = (*Store)(nil)

// Open connects to the store at uri and makes sure the schema exists
func Open(ctx context.Context, uri string) (*Store, error) {
	target, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("store").With().Str("backend", string(target.Backend)).Logger()

	driver := "sqlite"
	if target.Backend == BackendPostgres {
		driver = "pgx"
	} else if err := os.MkdirAll(filepath.Dir(target.Path), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStoreOpen, "create database directory for %s", target.Path)
	}

	db, err := sql.Open(driver, target.DSN)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStoreOpen, "open database").WithDetail("backend", target.Backend)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrStoreOpen, "connect to database").WithDetail("backend", target.Backend)
	}

	s := &Store{db: db, backend: target.Backend, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug().Str("path", target.Path).Msg("Store opened")
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, errors.ErrStoreOpen, "init schema")
		}
	}
	return nil
}

// Insert stores rec under a new ID and returns it
func (s *Store) Insert(ctx context.Context, rec types.Record) (types.Record, error) {
	rec.ID = uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Record{}, errors.Wrap(err, errors.ErrStoreInsert, "begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		s.rebind("INSERT INTO records (id, path, last_modified, created_at) VALUES (?, ?, ?, ?)"),
		rec.ID, rec.Path, rec.LastModified, time.Now().UnixNano(),
	); err != nil {
		return types.Record{}, errors.Wrap(err, errors.ErrStoreInsert, "insert record").WithDetail("path", rec.Path)
	}

	insertTag := s.rebind("INSERT INTO record_tags (record_id, position, tag) VALUES (?, ?, ?)")
	for i, tag := range rec.Tags {
		if _, err := tx.ExecContext(ctx, insertTag, rec.ID, i, tag); err != nil {
			return types.Record{}, errors.Wrap(err, errors.ErrStoreInsert, "insert tag").WithDetail("tag", tag)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Record{}, errors.Wrap(err, errors.ErrStoreInsert, "commit record")
	}

	s.logger.Trace().Str("id", rec.ID).Str("path", rec.Path).Msg("Record inserted")
	return rec, nil
}

// Find streams every record that carries at least one of tags, oldest
// first. An empty tag set matches nothing.
func (s *Store) Find(ctx context.Context, tags []string, fn func(types.Record) error) error {
	if len(tags) == 0 {
		return nil
	}

	marks := make([]string, len(tags))
	args := make([]interface{}, len(tags))
	for i, tag := range tags {
		marks[i] = "?"
		args[i] = tag
	}

	query := fmt.Sprintf(`SELECT r.id, r.path, r.last_modified, t.tag
FROM records r
JOIN record_tags t ON t.record_id = r.id
WHERE r.id IN (SELECT record_id FROM record_tags WHERE tag IN (%s))
ORDER BY r.created_at, r.id, t.position`, strings.Join(marks, ", "))

	return s.stream(ctx, s.rebind(query), args, fn)
}

// Each streams every record, oldest first
func (s *Store) Each(ctx context.Context, fn func(types.Record) error) error {
	const query = `SELECT r.id, r.path, r.last_modified, t.tag
FROM records r
LEFT JOIN record_tags t ON t.record_id = r.id
ORDER BY r.created_at, r.id, t.position`

	return s.stream(ctx, query, nil, fn)
}

// stream groups the one-row-per-tag result set back into records
func (s *Store) stream(ctx context.Context, query string, args []interface{}, fn func(types.Record) error) error {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, errors.ErrStoreQuery, "query records")
	}
	defer func() { _ = rows.Close() }()

	var cur *types.Record
	for rows.Next() {
		var (
			id, path string
			modified int64
			tag      sql.NullString
		)
		if err := rows.Scan(&id, &path, &modified, &tag); err != nil {
			return errors.Wrap(err, errors.ErrStoreQuery, "scan record")
		}

		if cur == nil || cur.ID != id {
			if cur != nil {
				if err := fn(*cur); err != nil {
					return err
				}
			}
			cur = &types.Record{ID: id, Path: path, LastModified: modified, Tags: []string{}}
		}
		if tag.Valid {
			cur.Tags = append(cur.Tags, tag.String)
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, errors.ErrStoreQuery, "read records")
	}

	if cur != nil {
		return fn(*cur)
	}
	return nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Backend reports which database the store talks to
func (s *Store) Backend() Backend {
	return s.backend
}

// rebind rewrites ? placeholders to $n for PostgreSQL
func (s *Store) rebind(query string) string {
	if s.backend != BackendPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
