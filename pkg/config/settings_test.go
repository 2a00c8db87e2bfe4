// pkg/config/settings_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: temp settings files, environment variables
// PURPOSE: Test settings layering and default resolution

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every default location into a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv(paths.EnvDataDir, filepath.Join(base, "data"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(base, "config"))
	t.Setenv(paths.EnvStateDir, filepath.Join(base, "state"))
	t.Setenv(paths.EnvSettings, "")
	t.Setenv("MAIDSWEEP_PATTERNS_PATH", "")
	t.Setenv("MAIDSWEEP_STORE_URI", "")
	t.Setenv("MAIDSWEEP_LOG_VERBOSITY", "")
	for _, key := range []string{"MAIDSWEEP_PATTERNS_PATH", "MAIDSWEEP_STORE_URI", "MAIDSWEEP_LOG_VERBOSITY"} {
		require.NoError(t, os.Unsetenv(key))
	}
	return base
}

func writeSettings(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	base := isolate(t)

	s, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "home", ".maidsweep.yaml"), s.Patterns.Path)
	assert.Equal(t, "sqlite://"+filepath.Join(base, "data", "maidsweep.db"), s.Store.URI)
	assert.Equal(t, 0, s.Log.Verbosity)
	assert.Empty(t, s.Source)
}

func TestLoadLayers(t *testing.T) {
	base := isolate(t)
	settingsPath := filepath.Join(base, "config", "config.toml")
	writeSettings(t, settingsPath, `
[patterns]
path = "~/rules.toml"

[store]
uri = "sqlite:///tmp/from-file.db"

[log]
verbosity = 1
`)

	t.Run("file", func(t *testing.T) {
		s, err := Load(Options{})
		require.NoError(t, err)
		assert.Equal(t, settingsPath, s.Source)
		assert.Equal(t, filepath.Join(base, "home", "rules.toml"), s.Patterns.Path)
		assert.Equal(t, "sqlite:///tmp/from-file.db", s.Store.URI)
		assert.Equal(t, 1, s.Log.Verbosity)
	})

	t.Run("env_beats_file", func(t *testing.T) {
		t.Setenv("MAIDSWEEP_STORE_URI", "postgres://localhost/maid")
		t.Setenv("MAIDSWEEP_LOG_VERBOSITY", "2")

		s, err := Load(Options{})
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/maid", s.Store.URI)
		assert.Equal(t, 2, s.Log.Verbosity)
	})

	t.Run("overrides_beat_env", func(t *testing.T) {
		t.Setenv("MAIDSWEEP_STORE_URI", "postgres://localhost/maid")

		s, err := Load(Options{Overrides: map[string]interface{}{
			"store.uri":     "/tmp/flag.db",
			"patterns.path": "/etc/maid.yaml",
		}})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag.db", s.Store.URI)
		assert.Equal(t, "/etc/maid.yaml", s.Patterns.Path)
	})
}

func TestLoadExplicitFile(t *testing.T) {
	base := isolate(t)

	t.Run("missing_is_an_error", func(t *testing.T) {
		_, err := Load(Options{File: filepath.Join(base, "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("env_named_missing_is_an_error", func(t *testing.T) {
		t.Setenv(paths.EnvSettings, filepath.Join(base, "nope.toml"))
		_, err := Load(Options{})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(base, "bad.toml")
		writeSettings(t, path, "[store\nuri = ")
		_, err := Load(Options{File: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("loaded", func(t *testing.T) {
		path := filepath.Join(base, "maid.toml")
		writeSettings(t, path, "[log]\nverbosity = 3\n")
		s, err := Load(Options{File: path})
		require.NoError(t, err)
		assert.Equal(t, path, s.Source)
		assert.Equal(t, 3, s.Log.Verbosity)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.uri", envKey("MAIDSWEEP_STORE_URI"))
	assert.Equal(t, "patterns.path", envKey("MAIDSWEEP_PATTERNS_PATH"))
	assert.Equal(t, "log.verbosity", envKey("MAIDSWEEP_LOG_VERBOSITY"))
	assert.Equal(t, "test.postgres_dsn", envKey("MAIDSWEEP_TEST_POSTGRES_DSN"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[store]")
	assert.Contains(t, content, `# uri = ""`)
	assert.Contains(t, content, "# verbosity = 0")
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "uncommented line: %q", line)
	}
}
