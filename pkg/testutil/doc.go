// Package testutil provides helpers shared by the maidsweep package tests.
//
// Key components:
//   - FileTree, WriteTree, MemTree: declarative trees on disk or in an afero MemMapFs
//   - RecordingDispatcher: captures every (path, tags) dispatch
//   - MemoryStore: in-memory types.RecordStore
//   - MockRunner: testify mock for subprocess execution
//   - Table: compiles an inline YAML pattern document
package testutil
