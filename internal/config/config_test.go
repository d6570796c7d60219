package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ERRIKA_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, "todos.json", c.Data.File)
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "classic", c.UI.Theme)
	require.Equal(t, "errika", filepath.Base(c.Data.Dir))
	require.Equal(t, filepath.Join(c.Data.Dir, "todos.json"), c.TodoPath())
	require.Equal(t, filepath.Join(c.Data.Dir, "errika.log"), c.LogPath())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[data]
dir = "` + filepath.ToSlash(dir) + `"
file = "mine.json"

[log]
level = "debug"
file = "/tmp/errika-test.log"

[ui]
theme = "neon"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "mine.json"), c.TodoPath())
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "/tmp/errika-test.log", c.LogPath())
	require.Equal(t, "neon", c.UI.Theme)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ERRIKA_DATA_DIR", dir)
	t.Setenv("ERRIKA_LOG_LEVEL", "warn")

	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, dir, c.Data.Dir)
	require.Equal(t, "warn", c.Log.Level)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"mono\"\n"), 0o600))
	t.Setenv("ERRIKA_CONFIG", path)

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "mono", c.UI.Theme)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[data\ndir = "), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "todos"), expandHome("~/todos"))
	require.Equal(t, "/abs/path", expandHome("/abs/path"))
}
