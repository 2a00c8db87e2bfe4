package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/arthur-debert/maidsweep/pkg/types"
)

// Dispatch is one recorded call
type Dispatch struct {
	Path string
	Tags []string
}

// RecordingDispatcher is a types.Dispatcher that records every call. It is
// safe for concurrent use.
type RecordingDispatcher struct {
	mu    sync.Mutex
	calls []Dispatch
	// Err is returned from every Dispatch call when set
	Err error
}

// NewRecordingDispatcher creates an empty recorder
func NewRecordingDispatcher() *RecordingDispatcher {
	return &RecordingDispatcher{}
}

// Dispatch records the call
func (d *RecordingDispatcher) Dispatch(_ context.Context, path string, tags types.TagSet) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, Dispatch{Path: path, Tags: append([]string(nil), tags...)})
	return d.Err
}

// Calls returns the recorded calls sorted by path, so that tests do not
// depend on goroutine scheduling
func (d *RecordingDispatcher) Calls() []Dispatch {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := append([]Dispatch(nil), d.calls...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Paths returns the sorted dispatched paths
func (d *RecordingDispatcher) Paths() []string {
	calls := d.Calls()
	paths := make([]string, len(calls))
	for i, c := range calls {
		paths[i] = c.Path
	}
	return paths
}

// TagsFor returns the tags of the first dispatch of path
func (d *RecordingDispatcher) TagsFor(path string) ([]string, bool) {
	for _, c := range d.Calls() {
		if c.Path == path {
			return c.Tags, true
		}
	}
	return nil, false
}
