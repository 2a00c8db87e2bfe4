// Package core wires a maidsweep run together.
//
// A run loads the pattern document, builds the shared run context, opens
// the metadata store when an action or the sweep needs it, and then either
// walks every root path or sweeps the store's records. Entry-level
// failures are logged where they happen; only startup failures are
// returned.
package core
