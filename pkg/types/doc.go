// Package types defines the core types and interfaces shared by the
// maidsweep packages: path helpers, tag sets, persisted records, the
// per-run configuration snapshot and the filesystem and store interfaces
// the walker, classifier and actions are written against.
package types
