package testutil

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"taskdock/internal/auth"
)

// MemStore is an in-memory auth.Store with error injection.
type MemStore struct {
	mu   sync.Mutex
	cred *auth.Credential

	LoadErr  error // returned by Load when set
	SaveErr  error
	ClearErr error

	Loads  int
	Saves  int
	Clears int
}

// Load implements auth.Store.
func (s *MemStore) Load() (*auth.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Loads++
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.cred == nil {
		return nil, auth.ErrNoCredential
	}
	return s.cred, nil
}

// Save implements auth.Store.
func (s *MemStore) Save(cred *auth.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.cred = cred
	return nil
}

// Clear implements auth.Store.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.cred = nil
	// An injected load error is a stand-in for stored material; a
	// clear discards it either way.
	s.LoadErr = nil
	return nil
}

// Stored returns the currently persisted credential, if any.
func (s *MemStore) Stored() *auth.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// FakeRefresher is an auth.Refresher returning a fixed result.
type FakeRefresher struct {
	Cred  *auth.Credential
	Err   error
	Calls int
}

// Refresh implements auth.Refresher.
func (r *FakeRefresher) Refresh(ctx context.Context, cred *auth.Credential) (*auth.Credential, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Cred, nil
}

// FakeFlow is an auth.Flow returning a fixed result.
type FakeFlow struct {
	Cred  *auth.Credential
	Err   error
	Calls int
}

// Authenticate implements auth.Flow.
func (f *FakeFlow) Authenticate(ctx context.Context) (*auth.Credential, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Cred, nil
}

// ValidCredential returns a credential valid for the next hour.
func ValidCredential(access string) *auth.Credential {
	return &auth.Credential{
		Token: oauth2.Token{
			AccessToken:  access,
			RefreshToken: "refresh-" + access,
			Expiry:       time.Now().Add(time.Hour),
		},
		Scopes: []string{auth.Scope},
	}
}

// ExpiredCredential returns a credential that expired an hour ago but
// still carries a refresh token.
func ExpiredCredential(access string) *auth.Credential {
	cred := ValidCredential(access)
	cred.Token.Expiry = time.Now().Add(-time.Hour)
	return cred
}

// NewExecutor returns an executor whose manager starts out holding a
// valid credential, alongside the backing store for inspection.
func NewExecutor() (*auth.Executor, *MemStore) {
	store := &MemStore{}
	store.cred = ValidCredential("test")
	mgr := auth.NewManager(store, &FakeRefresher{Cred: ValidCredential("refreshed")}, &FakeFlow{Cred: ValidCredential("interactive")})
	return auth.NewExecutor(mgr), store
}
