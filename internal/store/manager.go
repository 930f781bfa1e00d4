package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// DefaultIdleTTL is how long an untouched projection survives before
	// eviction.
	DefaultIdleTTL = 30 * time.Minute
	// evictionInterval is how often the eviction loop scans for stale stores.
	evictionInterval = 5 * time.Minute
)

// Manager ties store lifecycle to session lifecycle: a user's projection is
// created and bulk-loaded on their first request after sign-in, reused for
// subsequent requests, and evicted on sign-out or after the idle TTL.
type Manager struct {
	repos  Repositories
	logger zerolog.Logger
	ttl    time.Duration

	mu     sync.Mutex
	stores map[uuid.UUID]*managedStore
	stopCh chan struct{}
	doneCh chan struct{}
}

type managedStore struct {
	store    *Store
	lastUsed time.Time
}

// NewManager creates a Manager and starts its eviction loop.
func NewManager(repos Repositories, logger zerolog.Logger, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	m := &Manager{
		repos:  repos,
		logger: logger.With().Str("component", "store_manager").Logger(),
		ttl:    ttl,
		stores: make(map[uuid.UUID]*managedStore),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go m.run()
	return m
}

// ForUser returns the user's loaded store, creating and bulk-loading it on
// first use. A failed load is not cached; the next request retries.
func (m *Manager) ForUser(userID uuid.UUID) (*Store, error) {
	m.mu.Lock()
	if entry, ok := m.stores[userID]; ok {
		entry.lastUsed = time.Now()
		m.mu.Unlock()
		return entry.store, nil
	}
	m.mu.Unlock()

	// Load outside the manager lock; LoadAll fans out several gateway calls.
	s := New(userID, m.repos, m.logger)
	if err := s.LoadAll(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.stores[userID]; ok {
		// Another request loaded concurrently; keep the first one.
		entry.lastUsed = time.Now()
		return entry.store, nil
	}
	m.stores[userID] = &managedStore{store: s, lastUsed: time.Now()}
	m.logger.Info().Stringer("user_id", userID).Msg("Store created")
	return s, nil
}

// Evict drops the user's projection, typically on sign-out.
func (m *Manager) Evict(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stores[userID]; ok {
		delete(m.stores, userID)
		m.logger.Info().Stringer("user_id", userID).Msg("Store evicted")
	}
}

// Stop shuts down the eviction loop.
func (m *Manager) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

func (m *Manager) run() {
	defer close(m.doneCh)

	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictStale()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Manager) evictStale() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for userID, entry := range m.stores {
		if now.Sub(entry.lastUsed) > m.ttl {
			delete(m.stores, userID)
			m.logger.Debug().Stringer("user_id", userID).Msg("Evicted idle store")
		}
	}
}
