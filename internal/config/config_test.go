package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("QUIZ_LISTEN", "")
	t.Setenv("QUIZ_STORE", "")
	t.Setenv("QUIZ_STORE_PATH", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":2070", cfg.Listen)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen: \":7000\"\nstore:\n  backend: sqlite\n  path: /tmp/quiz.db\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/quiz.db", cfg.Store.Path)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "quiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":7000\"\n"), 0o644))
	t.Setenv("QUIZ_LISTEN", ":9000")
	t.Setenv("QUIZ_STORE", "file")
	t.Setenv("QUIZ_STORE_PATH", "/tmp/quizzes.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "/tmp/quizzes.json", cfg.Store.Path)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		path    string
		wantErr string
	}{
		{"unknown backend", "redis", "", "unknown store backend"},
		{"file needs path", "file", "", "requires a path"},
		{"sqlite needs path", "sqlite", "", "requires a path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("QUIZ_STORE", tt.backend)
			if tt.path != "" {
				t.Setenv("QUIZ_STORE_PATH", tt.path)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenStoreMemory(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	st, err := cfg.OpenStore()
	require.NoError(t, err)
	defer st.Close()

	count, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
