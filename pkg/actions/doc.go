// Package actions implements the terminal operations applied to a
// classified path: Tag, Exec, Copy, Move and Delete.
//
// The set is closed. Select picks exactly one action from the run
// configuration, by fixed precedence:
//
//	copy > save (tag) > move > exec > delete
//
// and Executor.Execute performs it. Copy, move and delete shell out to the
// platform utilities; exec renders the user template and runs it through
// the discovered shell; tag inserts a record into the metadata store.
package actions
