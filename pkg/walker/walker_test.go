// pkg/walker/walker_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: in-memory filesystem, RecordingDispatcher
// PURPOSE: Test the two-pass traversal, typical/special rules and error isolation

package walker_test

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/filesystem"
	"github.com/arthur-debert/maidsweep/pkg/testutil"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/arthur-debert/maidsweep/pkg/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docPatterns = `
typical_files:
  rust_project: ['^Cargo\.toml$']
filenames:
  - tags: [build, node]
    pattern: '^node_modules$'
  - tags: [cache]
    pattern: '\.tmp$'
extensions:
  image: [jpg]
  code: [rs]
`

func newWalker(t *testing.T, fsys types.FS, cfg *types.RunConfig) (*walker.Walker, *testutil.RecordingDispatcher) {
	t.Helper()
	if cfg == nil {
		cfg = &types.RunConfig{}
	}
	run := &types.RunContext{
		Config:   cfg,
		Patterns: testutil.Table(t, docPatterns),
		FS:       fsys,
	}
	d := testutil.NewRecordingDispatcher()
	return walker.New(run, d), d
}

func TestWalkRecursesIntoUntaggedDirectories(t *testing.T) {
	fsys := testutil.MemTree(t, "/root", testutil.FileTree{
		"a.jpg": "",
		"notes": "",
		"deep": testutil.FileTree{
			"deeper": testutil.FileTree{
				"b.jpg": "",
			},
		},
	})
	w, d := newWalker(t, fsys, nil)

	require.NoError(t, w.Walk(context.Background(), "/root"))

	assert.Equal(t, []string{"/root/a.jpg", "/root/deep/deeper/b.jpg", "/root/notes"}, d.Paths())
	tags, _ := d.TagsFor("/root/notes")
	assert.Equal(t, []string{"misc"}, tags)
}

func TestWalkTypicalFileTagsWholeDirectory(t *testing.T) {
	fsys := testutil.MemTree(t, "/root", testutil.FileTree{
		"photo.jpg": "",
		"proj": testutil.FileTree{
			"Cargo.toml": "",
			"main.rs":    "",
			"src": testutil.FileTree{
				"lib.rs": "",
			},
		},
	})
	w, d := newWalker(t, fsys, nil)

	require.NoError(t, w.Walk(context.Background(), "/root"))

	assert.Equal(t, []string{"/root/photo.jpg", "/root/proj"}, d.Paths())
	tags, _ := d.TagsFor("/root/proj")
	assert.Equal(t, []string{"rust_project"}, tags)
}

func TestWalkSpecialFileBypassesExtensions(t *testing.T) {
	fsys := testutil.MemTree(t, "/root", testutil.FileTree{
		"node_modules": testutil.FileTree{
			"left-pad": testutil.FileTree{"index.jpg": ""},
		},
		"render.jpg.tmp": "",
		"keep.jpg":       "",
	})
	w, d := newWalker(t, fsys, nil)

	require.NoError(t, w.Walk(context.Background(), "/root"))

	assert.Equal(t, []string{"/root/keep.jpg", "/root/node_modules", "/root/render.jpg.tmp"}, d.Paths())

	tags, _ := d.TagsFor("/root/node_modules")
	assert.Equal(t, []string{"build", "node"}, tags)
	tags, _ = d.TagsFor("/root/render.jpg.tmp")
	assert.Equal(t, []string{"cache"}, tags)
}

func TestWalkSpecialRulesIgnoreFilter(t *testing.T) {
	fsys := testutil.MemTree(t, "/root", testutil.FileTree{
		"node_modules": testutil.FileTree{},
		"a.jpg":        "",
		"b.rs":         "",
	})
	w, d := newWalker(t, fsys, &types.RunConfig{FilterTags: []string{"code"}})

	require.NoError(t, w.Walk(context.Background(), "/root"))

	assert.Equal(t, []string{"/root/b.rs", "/root/node_modules"}, d.Paths())
}

func TestWalkRootErrors(t *testing.T) {
	t.Run("missing_root", func(t *testing.T) {
		w, d := newWalker(t, testutil.MemTree(t, "/root", nil), nil)

		err := w.Walk(context.Background(), "/nope")
		assert.True(t, errors.IsErrorCode(err, errors.ErrDirRead))
		assert.Empty(t, d.Paths())
	})

	t.Run("cancelled_context", func(t *testing.T) {
		w, d := newWalker(t, testutil.MemTree(t, "/root", testutil.FileTree{"a.jpg": ""}), nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := w.Walk(ctx, "/root")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, d.Paths())
	})
}

// brokenFS fails to list one directory
type brokenFS struct {
	types.FS
	broken  string
	partial bool
}

func (b *brokenFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := b.FS.ReadDir(name)
	if name != b.broken {
		return entries, err
	}
	if b.partial && len(entries) > 0 {
		return entries[:1], fs.ErrPermission
	}
	return nil, fs.ErrPermission
}

func TestWalkListingErrorIsIsolated(t *testing.T) {
	tree := testutil.FileTree{
		"ok":  testutil.FileTree{"a.jpg": ""},
		"bad": testutil.FileTree{"b.jpg": "", "c.jpg": ""},
	}

	t.Run("unreadable_subdirectory", func(t *testing.T) {
		fsys := &brokenFS{FS: testutil.MemTree(t, "/root", tree), broken: "/root/bad"}
		w, d := newWalker(t, fsys, nil)

		require.NoError(t, w.Walk(context.Background(), "/root"))
		assert.Equal(t, []string{"/root/ok/a.jpg"}, d.Paths())
	})

	t.Run("partial_listing_keeps_read_entries", func(t *testing.T) {
		fsys := &brokenFS{FS: testutil.MemTree(t, "/root", tree), broken: "/root/bad", partial: true}
		w, d := newWalker(t, fsys, nil)

		require.NoError(t, w.Walk(context.Background(), "/root"))
		assert.Equal(t, []string{"/root/bad/b.jpg", "/root/ok/a.jpg"}, d.Paths())
	})
}

func TestWalkDoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	testutil.WriteTree(t, root, testutil.FileTree{
		"real": testutil.FileTree{"a.jpg": ""},
	})
	testutil.CreateSymlink(t, root, filepath.Join(root, "real", "loop"))

	w, d := newWalker(t, filesystem.NewOS(), nil)

	require.NoError(t, w.Walk(context.Background(), root))

	loop := filepath.Join(root, "real", "loop")
	assert.Equal(t, []string{filepath.Join(root, "real", "a.jpg"), loop}, d.Paths())
	tags, _ := d.TagsFor(loop)
	assert.Equal(t, []string{"misc"}, tags)
}

func TestWalkWaitsForAllDispatches(t *testing.T) {
	tree := testutil.FileTree{}
	for _, dir := range []string{"a", "b", "c", "d"} {
		sub := testutil.FileTree{}
		for _, f := range []string{"1.jpg", "2.jpg", "3.rs", "x.tmp"} {
			sub[f] = ""
		}
		tree[dir] = sub
	}
	w, d := newWalker(t, testutil.MemTree(t, "/root", tree), nil)

	require.NoError(t, w.Walk(context.Background(), "/root"))
	assert.Len(t, d.Paths(), 16)
}
