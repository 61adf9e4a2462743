package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"tidy/internal/config"
	"tidy/internal/log"
	"tidy/internal/storage"
	"tidy/internal/storage/diskv"
	"tidy/internal/storage/memory"
	"tidy/internal/storage/sqlite"
	"tidy/internal/tasks"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	ConfigPath string
	Store      string
	Debug      bool
	NoLog      bool
	LoggerType string
	LogFile    string

	// Global instances.
	Config config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("config", "Path to the TOML config file (default $TODO_CONFIG or ~/.config/todo/config.toml).").Default(config.ResolveConfigPath()).StringVar(&c.ConfigPath)
	app.Flag("store", "Overrides the configured store backend.").EnumVar(&c.Store, config.StoreSQLite, config.StoreDiskv, config.StoreMemory)
	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("log-file", "Write logs to this file instead of stderr (the ui always needs one to log).").StringVar(&c.LogFile)

	return c
}

// LoadConfig loads the config file into Config and applies the flag overrides.
func (r *RootCommand) LoadConfig() error {
	cfg, err := config.LoadOrCreate(config.ExpandPath(r.ConfigPath))
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if r.Store != "" {
		cfg.Store = r.Store
	}
	if r.LogFile == "" {
		r.LogFile = cfg.LogFile
	}
	r.Config = cfg
	return nil
}

// OpenManager opens the configured store and loads the task lists from it.
// The caller owns the returned store.
func (r *RootCommand) OpenManager(ctx context.Context, cfg config.Config) (*tasks.Manager, storage.Store, error) {
	store, err := openStore(ctx, cfg, r.Logger)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := tasks.New(ctx, tasks.ManagerConfig{
		Store:  store,
		Logger: r.Logger,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("could not load tasks: %w", err)
	}
	return mgr, store, nil
}

func openStore(ctx context.Context, cfg config.Config, logger log.Logger) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreDiskv:
		s, err := diskv.Open(diskv.StoreConfig{BasePath: cfg.DataDir, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("could not open diskv store: %w", err)
		}
		return s, nil
	case config.StoreMemory:
		return memory.NewStore(memory.StoreConfig{Logger: logger}), nil
	default:
		s, err := sqlite.Open(ctx, sqlite.StoreConfig{DBPath: cfg.DBPath, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite store: %w", err)
		}
		return s, nil
	}
}
