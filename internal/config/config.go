package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultDataDirName    = "data"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "TODO_CONFIG"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreDiskv  = "diskv"
	StoreMemory = "memory"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Restore    string `toml:"restore"`
	Select     string `toml:"select"`
	Purge      string `toml:"purge"`
	NextFilter string `toml:"next_filter"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	Store         string `toml:"store"`
	DBPath        string `toml:"db_path"`
	DataDir       string `toml:"data_dir"`
	DefaultFilter string `toml:"default_filter"`
	LogFile       string `toml:"log_file"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the config file location: $TODO_CONFIG when set,
// otherwise ~/.config/todo/config.toml.
func ResolveConfigPath() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return ExpandPath(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(home, ".config", "todo", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults when the file
// does not exist yet. Relative storage paths are resolved next to the file.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("could not write default config: %w", err)
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse %s: %w", path, err)
	}
	cfg = cfg.resolve(filepath.Dir(path))
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store {
	case StoreSQLite, StoreDiskv, StoreMemory:
		return nil
	default:
		return fmt.Errorf("unknown store %q (must be: sqlite, diskv, memory)", c.Store)
	}
}

func (c Config) resolve(dir string) Config {
	if c.Store == "" {
		c.Store = StoreSQLite
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBName
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDirName
	}
	c.DBPath = resolvePath(dir, c.DBPath)
	c.DataDir = resolvePath(dir, c.DataDir)
	if c.LogFile != "" {
		c.LogFile = resolvePath(dir, c.LogFile)
	}
	return c
}

func resolvePath(dir, p string) string {
	p = ExpandPath(p)
	if filepath.IsAbs(p) || filepath.VolumeName(p) != "" || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(dir, p)
}

// ExpandPath expands a leading ~ to the user home directory.
func ExpandPath(p string) string {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return expanded
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the configuration written on first launch.
func Default() Config {
	return Config{
		Store:         StoreSQLite,
		DBPath:        DefaultDBName,
		DataDir:       DefaultDataDirName,
		DefaultFilter: "all",
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Delete:     "d",
			Restore:    "r",
			Select:     "x",
			Purge:      "D",
			NextFilter: "f",
			Confirm:    "enter",
			Cancel:     "esc",
		},
	}
}
