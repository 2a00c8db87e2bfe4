// pkg/store/store_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: SQLite temp files; PostgreSQL when MAIDSWEEP_TEST_POSTGRES_DSN is set
// PURPOSE: Test record insertion, tag queries and URI resolution

package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/store"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "db", "maidsweep.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends(t *testing.T) map[string]*store.Store {
	t.Helper()
	out := map[string]*store.Store{"sqlite": openSQLite(t)}

	if dsn := os.Getenv("MAIDSWEEP_TEST_POSTGRES_DSN"); dsn != "" {
		s, err := store.Open(context.Background(), dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		out["postgres"] = s
	}
	return out
}

func collect(t *testing.T, s *store.Store, tags []string) []types.Record {
	t.Helper()
	var out []types.Record
	require.NoError(t, s.Find(context.Background(), tags, func(r types.Record) error {
		out = append(out, r)
		return nil
	}))
	return out
}

func TestInsertAndFind(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			marker := t.Name()

			a, err := s.Insert(ctx, types.Record{Path: marker + "/a.jpg", Tags: []string{"image", "raw"}, LastModified: 1700000000})
			require.NoError(t, err)
			assert.NotEmpty(t, a.ID)

			_, err = s.Insert(ctx, types.Record{Path: marker + "/b.mp4", Tags: []string{"video"}})
			require.NoError(t, err)
			_, err = s.Insert(ctx, types.Record{Path: marker + "/c.png", Tags: []string{"web", "image"}})
			require.NoError(t, err)

			images := filterPrefix(collect(t, s, []string{"image"}), marker)
			require.Len(t, images, 2)
			assert.Equal(t, marker+"/a.jpg", images[0].Path)
			assert.Equal(t, []string{"image", "raw"}, images[0].Tags, "tag order is kept")
			assert.Equal(t, int64(1700000000), images[0].LastModified)
			assert.Equal(t, []string{"web", "image"}, images[1].Tags, "all tags are returned, not just the matching one")

			either := filterPrefix(collect(t, s, []string{"video", "raw"}), marker)
			assert.Len(t, either, 2)

			assert.Empty(t, filterPrefix(collect(t, s, []string{"audio"}), marker))
			assert.Empty(t, collect(t, s, nil))
		})
	}
}

func TestInsertTwiceKeepsBoth(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	rec := types.Record{Path: "/x/a.jpg", Tags: []string{"image"}}

	first, err := s.Insert(ctx, rec)
	require.NoError(t, err)
	second, err := s.Insert(ctx, rec)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, collect(t, s, []string{"image"}), 2)
}

func TestFindStopsOnCallbackError(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	for _, p := range []string{"/a", "/b", "/c"} {
		_, err := s.Insert(ctx, types.Record{Path: p, Tags: []string{"misc"}})
		require.NoError(t, err)
	}

	calls := 0
	stop := errors.New(errors.ErrInternal, "stop")
	err := s.Find(ctx, []string{"misc"}, func(types.Record) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestEach(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	_, err := s.Insert(ctx, types.Record{Path: "/a", Tags: []string{"image"}})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.Record{Path: "/b"})
	require.NoError(t, err)

	var paths []string
	require.NoError(t, s.Each(ctx, func(r types.Record) error {
		paths = append(paths, r.Path)
		return nil
	}))
	assert.Equal(t, []string{"/a", "/b"}, paths)
}

func TestConcurrentInserts(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Insert(ctx, types.Record{Path: "/p", Tags: []string{"misc"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, collect(t, s, []string{"misc"}), 20)
}

func TestInsertWhileFinding(t *testing.T) {
	s := openSQLite(t)
	ctx := context.Background()
	_, err := s.Insert(ctx, types.Record{Path: "/a", Tags: []string{"image"}})
	require.NoError(t, err)

	err = s.Find(ctx, []string{"image"}, func(r types.Record) error {
		_, err := s.Insert(ctx, types.Record{Path: r.Path, Tags: []string{"copied"}})
		return err
	})
	require.NoError(t, err)
	assert.Len(t, collect(t, s, []string{"copied"}), 1)
}

func TestReopenKeepsRecords(t *testing.T) {
	uri := "sqlite://" + filepath.Join(t.TempDir(), "m.db")
	ctx := context.Background()

	s, err := store.Open(ctx, uri)
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.Record{Path: "/a", Tags: []string{"image"}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(ctx, uri)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	assert.Equal(t, store.BackendSQLite, s.Backend())
	assert.Len(t, collect(t, s, []string{"image"}), 1)
}

func TestParseURI(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name    string
		uri     string
		backend store.Backend
		path    string
		dsn     string
	}{
		{name: "sqlite_absolute", uri: "sqlite:///var/lib/m.db", backend: store.BackendSQLite, path: "/var/lib/m.db"},
		{name: "sqlite_home", uri: "sqlite://~/m.db", backend: store.BackendSQLite, path: filepath.Join(home, "m.db")},
		{name: "bare_path", uri: "/tmp/m.db", backend: store.BackendSQLite, path: "/tmp/m.db"},
		{name: "postgres", uri: "postgres://u:p@localhost:5432/maid", backend: store.BackendPostgres, dsn: "postgres://u:p@localhost:5432/maid"},
		{name: "postgresql", uri: "postgresql://localhost/maid", backend: store.BackendPostgres, dsn: "postgresql://localhost/maid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := store.ParseURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.backend, target.Backend)
			assert.Equal(t, tt.path, target.Path)
			if tt.dsn != "" {
				assert.Equal(t, tt.dsn, target.DSN)
			} else {
				assert.Contains(t, target.DSN, "file:"+tt.path+"?")
				assert.Contains(t, target.DSN, "journal_mode(WAL)")
			}
		})
	}
}

func TestParseURIErrors(t *testing.T) {
	for _, uri := range []string{"", "   ", "mongodb://localhost:27017", "sqlite://"} {
		t.Run(uri, func(t *testing.T) {
			_, err := store.ParseURI(uri)
			assert.True(t, errors.IsErrorCode(err, errors.ErrStoreOpen))
		})
	}
}

func TestOpenUnreachablePostgres(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Open(ctx, "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreOpen))
}

func filterPrefix(records []types.Record, prefix string) []types.Record {
	var out []types.Record
	for _, r := range records {
		if len(r.Path) >= len(prefix) && r.Path[:len(prefix)] == prefix {
			out = append(out, r)
		}
	}
	return out
}
