package types

import "github.com/arthur-debert/maidsweep/pkg/patterns"

// RunConfig is the immutable snapshot of the options selected for one run.
// It is built once before any traversal starts and shared by pointer.
type RunConfig struct {
	// CopyTo is the destination root for the copy action
	CopyTo string
	// MoveTo is the destination root for the move action
	MoveTo string
	// Save persists tags to the metadata store
	Save bool
	// Exec selects the exec action; ExecArgs holds the template
	Exec     bool
	ExecArgs []string
	// Delete removes every dispatched entry
	Delete bool

	// Hidden allows dispatching entries whose basename starts with a dot
	Hidden bool
	// FilterTags is the synonym-expanded user filter. Empty means no filter.
	FilterTags []string
	// Debug enables tracing of tags, paths and rendered commands
	Debug bool
}

// HasFilter reports whether a tag filter is in effect.
func (c *RunConfig) HasFilter() bool {
	return c != nil && len(c.FilterTags) > 0
}

// RunContext bundles what every classification and action needs: the run
// options, the compiled pattern table, the metadata store and the
// filesystem. It is read-only once built.
type RunContext struct {
	Config   *RunConfig
	Patterns *patterns.Table
	Store    RecordStore
	FS       FS
}
