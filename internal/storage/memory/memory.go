package memory

import (
	"context"
	"sync"

	"tidy/internal/log"
	"tidy/internal/storage"
)

// StoreConfig is the configuration for the memory store.
type StoreConfig struct {
	// Seed preloads keys, handy for tests.
	Seed   map[string]string
	Logger log.Logger
}

func (c *StoreConfig) defaults() {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
}

// Store is an in-memory implementation of storage.Store. It also counts
// writes per key so tests can assert on persistence side effects.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	writes map[string]int
	logger log.Logger
}

var _ storage.Store = &Store{}

// NewStore creates a new memory store.
func NewStore(cfg StoreConfig) *Store {
	cfg.defaults()
	values := make(map[string]string, len(cfg.Seed))
	for k, v := range cfg.Seed {
		values[k] = v
	}
	return &Store{
		values: values,
		writes: map[string]int{},
		logger: cfg.Logger,
	}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	s.writes[key]++
	s.logger.Debugf("wrote key %s (%d bytes)", key, len(value))
	return nil
}

// Writes returns how many times key has been written.
func (s *Store) Writes(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.writes[key]
}

func (s *Store) Close() error { return nil }
