// Package filesystem provides implementations of the types.FS interface:
// the OS filesystem used by the CLI and an afero-backed filesystem used to
// build in-memory trees in tests.
package filesystem
