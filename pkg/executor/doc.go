// Package executor runs external programs on behalf of actions.
//
// Commands inherit the process environment and write straight to the
// configured stdout and stderr. A non-zero exit or a failure to start the
// program is reported as an ErrCommandFailed error.
package executor
