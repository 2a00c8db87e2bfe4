package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem surface used by the walker, classifier and actions
type FS interface {
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
}

// RecordStore persists and queries tagged paths
type RecordStore interface {
	// Insert stores rec and returns it with its assigned ID
	Insert(ctx context.Context, rec Record) (Record, error)
	// Find streams every record carrying at least one of tags to fn.
	// Iteration stops at the first error returned by fn.
	Find(ctx context.Context, tags []string, fn func(Record) error) error
	Close() error
}

// Dispatcher routes a classified path to the configured action
type Dispatcher interface {
	Dispatch(ctx context.Context, path string, tags TagSet) error
}
