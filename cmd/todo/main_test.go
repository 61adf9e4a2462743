package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), append([]string{"todo"}, args...), &bytes.Buffer{}, &stdout, &stderr)
	return stdout.String(), err
}

func TestAddThenList(t *testing.T) {
	for _, store := range []string{"sqlite", "diskv"} {
		t.Run(store, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), "config.toml")
			global := []string{"--config", cfgPath, "--store", store, "--no-log"}

			_, err := runCLI(t, append(global, "add", "buy", "milk")...)
			require.NoError(t, err)
			_, err = runCLI(t, append(global, "add", "walk dog")...)
			require.NoError(t, err)

			out, err := runCLI(t, append(global, "list", "--format", "json")...)
			require.NoError(t, err)

			var items []struct {
				Index     int    `json:"index"`
				Text      string `json:"text"`
				Completed bool   `json:"completed"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &items))
			require.Len(t, items, 2)
			assert.Equal(t, "buy milk", items[0].Text)
			assert.Equal(t, "walk dog", items[1].Text)
			assert.Equal(t, 1, items[1].Index)

			out, err = runCLI(t, append(global, "list", "--filter", "completed", "--format", "json")...)
			require.NoError(t, err)
			assert.JSONEq(t, "[]", out)
		})
	}
}

func TestAddWhitespaceFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := runCLI(t, "--config", cfgPath, "--store", "memory", "--no-log", "add", "   ")
	assert.Error(t, err)
}

func TestUnknownCommandFails(t *testing.T) {
	_, err := runCLI(t, "--no-log", "frobnicate")
	assert.Error(t, err)
}

func TestConfigEnvExpandsHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TODO_CONFIG", "~/cfg/config.toml")
	chdir(t, t.TempDir())

	_, err := runCLI(t, "--store", "memory", "--no-log", "add", "x")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, "cfg", "config.toml"))
	_, err = os.Stat("~")
	assert.True(t, os.IsNotExist(err))
}

func TestConfigFlagExpandsHome(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	_, err := runCLI(t, "--config", "~/other/config.toml", "--store", "memory", "--no-log", "add", "x")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(home, "other", "config.toml"))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
