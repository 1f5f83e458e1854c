package panel

import (
	"context"
	"log/slog"
	"sync"
)

// Store caches loaded panels by source path. A panel is loaded on first
// access and never invalidated within the process; after load it is only
// ever read, so concurrent requests need no locking beyond the map guard.
type Store struct {
	mu     sync.RWMutex
	panels map[string]*Table
	logger *slog.Logger
}

// NewStore creates an empty panel store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		panels: make(map[string]*Table),
		logger: logger.With(slog.String("component", "panel_store")),
	}
}

// Get returns the panel for the given source path, loading it on first
// access. Load failures are not cached; a later call retries the load.
func (s *Store) Get(ctx context.Context, path string) (*Table, error) {
	s.mu.RLock()
	table, ok := s.panels[path]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another request may have loaded it while we waited for the lock.
	if table, ok := s.panels[path]; ok {
		return table, nil
	}

	s.logger.InfoContext(ctx, "loading panel", slog.String("path", path))
	table, err := LoadPanel(path, s.logger)
	if err != nil {
		return nil, err
	}
	s.panels[path] = table
	return table, nil
}
