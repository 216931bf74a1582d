package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GaryKam/lets-eat/internal/location"
	"github.com/GaryKam/lets-eat/internal/permission"
	"github.com/GaryKam/lets-eat/internal/selector"
)

// Config holds the per-session settings
type Config struct {
	FixTimeout time.Duration
	Chooser    string
	Selector   selector.Options
}

// Manager owns every open session
type Manager struct {
	cfg      Config
	searcher selector.PlacesSearcher
	shared   location.FixSource
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a manager. With a nil shared source every session gets its
// own device source and must be granted permission; otherwise sessions share the
// source and start with permission granted.
func NewManager(cfg Config, searcher selector.PlacesSearcher, shared location.FixSource, logger *slog.Logger) *Manager {
	return &Manager{
		cfg:      cfg,
		searcher: searcher,
		shared:   shared,
		logger:   logger.With("component", "session-manager"),
		sessions: make(map[string]*Session),
	}
}

// Create opens a session. Shared sources are queried once up front; a failed
// lookup is logged and leaves the session without a fix.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	chooser, err := selector.NewChooser(m.cfg.Chooser, rand.Uint64())
	if err != nil {
		return nil, fmt.Errorf("failed to create chooser: %w", err)
	}

	id := uuid.NewString()
	logger := m.logger.With("session_id", id)

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		logger:    logger,
	}

	var source location.FixSource
	if m.shared != nil {
		s.gate = permission.NewGrantedGate(logger)
		source = m.shared
	} else {
		s.gate = permission.NewGate(logger)
		s.device = location.NewDeviceSource()
		source = s.device
	}
	s.provider = location.NewProvider(s.gate, source, m.cfg.FixTimeout, logger)

	if m.shared != nil {
		if err := s.provider.Refresh(ctx); err != nil {
			logger.Warn("initial location lookup failed", "error", err)
		}
	}

	s.selector = selector.New(m.searcher, s.provider, chooser, m.cfg.Selector, logger)

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	logger.Info("session created", "device_source", s.device != nil)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete closes a session. Searches still in flight are abandoned.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.close()
	m.logger.Info("session closed", "session_id", id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close closes every session
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
