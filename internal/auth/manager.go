package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Manager owns the current credential for the process. Acquisition
// goes load → refresh → interactive authentication, and every path is
// serialized on a single lock: concurrent callers block on the
// in-flight acquisition and receive its result.
type Manager struct {
	mu        sync.Mutex
	store     Store
	refresher Refresher
	flow      Flow
	current   *Credential
}

// NewManager creates a manager over the given store and collaborators.
func NewManager(store Store, refresher Refresher, flow Flow) *Manager {
	return &Manager{store: store, refresher: refresher, flow: flow}
}

// Acquire returns a usable credential. A cached valid credential is
// returned as-is; otherwise the manager loads from the store,
// refreshes an expired credential, or falls back to the interactive
// flow. Any freshly obtained credential is persisted and cached.
func (m *Manager) Acquire(ctx context.Context) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.acquireLocked(ctx)
}

// ForceRefresh discards the cached and persisted credential and runs
// a full acquisition. Call it when the service rejects a credential
// the manager considered valid.
func (m *Manager) ForceRefresh(ctx context.Context) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	if err := m.store.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear stored credential: %w", err)
	}
	return m.acquireLocked(ctx)
}

// Current returns the cached credential without triggering an
// acquisition. It may be nil or invalid.
func (m *Manager) Current() *Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) acquireLocked(ctx context.Context) (*Credential, error) {
	if m.current.Valid() {
		return m.current, nil
	}

	cred, err := m.store.Load()
	var corrupt *CorruptError
	switch {
	case err == nil:
	case errors.Is(err, ErrNoCredential):
		cred = nil
	case errors.As(err, &corrupt):
		// One-shot self-heal: an unreadable blob is cleared and
		// treated as absence.
		if cerr := m.store.Clear(); cerr != nil {
			return nil, fmt.Errorf("failed to discard corrupt credential: %w", cerr)
		}
		cred = nil
	default:
		return nil, err
	}

	if cred.Valid() {
		m.current = cred
		return cred, nil
	}

	if cred.CanRefresh() {
		fresh, rerr := m.refresher.Refresh(ctx, cred)
		if rerr == nil {
			return m.install(fresh), nil
		}
		if errors.Is(rerr, ErrConfigMissing) {
			return nil, rerr
		}
		// Dead refresh token: clear it and fall through to the
		// interactive flow.
		if cerr := m.store.Clear(); cerr != nil {
			return nil, fmt.Errorf("failed to clear stored credential: %w", cerr)
		}
	}

	fresh, err := m.flow.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	return m.install(fresh), nil
}

// install persists and caches a freshly obtained credential. A save
// failure is not fatal here: the credential stays usable for this
// process and the next start re-authenticates.
func (m *Manager) install(cred *Credential) *Credential {
	_ = m.store.Save(cred)
	m.current = cred
	return cred
}
