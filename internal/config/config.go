// Package config loads widget settings from file and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const appName = "errika"

// Config holds application configuration.
type Config struct {
	Data DataConfig
	Log  LogConfig
	UI   UIConfig
}

// DataConfig says where todos are persisted.
type DataConfig struct {
	Dir  string
	File string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
	File  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
}

// TodoPath is the full path of the todos file.
func (c Config) TodoPath() string {
	return filepath.Join(c.Data.Dir, c.Data.File)
}

// LogPath is the log file, defaulting to errika.log next to the todos.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Data.Dir, appName+".log")
}

// DefaultDir returns the per-user directory, ~/.config/errika on Linux.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Load reads configuration from file and env. Env var overrides use prefix
// ERRIKA_. An explicit path wins over $ERRIKA_CONFIG, which wins over the
// default location. A missing file is not an error; a broken one is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("data.dir", DefaultDir())
	v.SetDefault("data.file", "todos.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.theme", "classic")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("ERRIKA_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ERRIKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case os.IsNotExist(errors.Cause(err)):
		default:
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if c.Data.File == "" {
		c.Data.File = "todos.json"
	}
	c.Data.Dir = expandHome(c.Data.Dir)
	c.Log.File = expandHome(c.Log.File)
	return c, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
