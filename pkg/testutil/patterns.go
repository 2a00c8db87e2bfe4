package testutil

import (
	"testing"

	"github.com/arthur-debert/maidsweep/pkg/patterns"
)

// Table compiles an inline YAML pattern document, failing the test on error
func Table(t *testing.T, doc string) *patterns.Table {
	t.Helper()

	parsed, err := patterns.Parse([]byte(doc), patterns.FormatYAML)
	if err != nil {
		t.Fatalf("Failed to parse patterns: %v", err)
	}
	table, err := patterns.Compile(parsed)
	if err != nil {
		t.Fatalf("Failed to compile patterns: %v", err)
	}
	return table
}
