package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tidy/internal/config"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo")
	path := filepath.Join(dir, config.DefaultConfigFileName)

	cfg, err := config.LoadOrCreate(path)
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, filepath.Join(dir, config.DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, config.DefaultDataDirName), cfg.DataDir)
	assert.Equal(t, "all", cfg.DefaultFilter)
	assert.Equal(t, "a", cfg.Keys.Add)

	// The written file loads back to the same config.
	again, err := config.LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreate(t *testing.T) {
	tests := map[string]struct {
		content string
		check   func(t *testing.T, dir string, cfg config.Config)
		expErr  bool
	}{
		"Partial files should keep defaults for missing values": {
			content: "store = \"diskv\"\n[keys]\nquit = \"Q\"\n",
			check: func(t *testing.T, dir string, cfg config.Config) {
				assert.Equal(t, config.StoreDiskv, cfg.Store)
				assert.Equal(t, "Q", cfg.Keys.Quit)
				assert.Equal(t, "a", cfg.Keys.Add)
				assert.Equal(t, filepath.Join(dir, config.DefaultDataDirName), cfg.DataDir)
			},
		},
		"Absolute paths should be kept": {
			content: "db_path = \"/var/lib/todo/tasks.db\"\nlog_file = \"todo.log\"\n",
			check: func(t *testing.T, dir string, cfg config.Config) {
				assert.Equal(t, "/var/lib/todo/tasks.db", cfg.DBPath)
				assert.Equal(t, filepath.Join(dir, "todo.log"), cfg.LogFile)
			},
		},
		"Empty store should default to sqlite": {
			content: "store = \"\"\n",
			check: func(t *testing.T, dir string, cfg config.Config) {
				assert.Equal(t, config.StoreSQLite, cfg.Store)
				assert.Equal(t, filepath.Join(dir, config.DefaultDBName), cfg.DBPath)
			},
		},
		"Unknown stores should fail": {
			content: "store = \"redis\"\n",
			expErr:  true,
		},
		"Invalid TOML should fail": {
			content: "store = \n",
			expErr:  true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, config.DefaultConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(test.content), 0o644))

			cfg, err := config.LoadOrCreate(path)
			if test.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			test.check(t, dir, cfg)
		})
	}
}

func TestResolveConfigPathEnv(t *testing.T) {
	t.Setenv(config.ConfigPathEnv, "/tmp/todo-test/config.toml")
	assert.Equal(t, "/tmp/todo-test/config.toml", config.ResolveConfigPath())
}
