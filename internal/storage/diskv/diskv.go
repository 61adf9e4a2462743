package diskv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tidy/internal/log"
	"tidy/internal/storage"
)

// StoreConfig is the configuration for the diskv store.
type StoreConfig struct {
	BasePath string
	Logger   log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.BasePath == "" {
		return fmt.Errorf("base path is empty: %w", storage.ErrNotValid)
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Diskv"})
	return nil
}

// Store keeps every key as a file under the base path.
type Store struct {
	d      *diskv.Diskv
	logger log.Logger
}

var _ storage.Store = &Store{}

// Open creates a diskv backed store rooted at cfg.BasePath.
func Open(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}

	d := diskv.New(diskv.Options{
		BasePath:     cfg.BasePath,
		TempDir:      filepath.Join(cfg.BasePath, ".tmp"),
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	cfg.Logger.Debugf("diskv store opened at %s", cfg.BasePath)
	return &Store{d: d, logger: cfg.Logger}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		return "", false, fmt.Errorf("could not read key %q: %w", key, err)
	}
	return string(val), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("could not write key %q: %w", key, err)
	}
	s.logger.Debugf("wrote key %s (%d bytes)", key, len(value))
	return nil
}

func (s *Store) Close() error { return nil }
