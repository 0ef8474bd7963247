package auth_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"taskdock/internal/auth"
	"taskdock/internal/testutil"
)

func TestManager_AcquireUsesStoredValidCredential(t *testing.T) {
	store := &testutil.MemStore{}
	if err := store.Save(testutil.ValidCredential("stored")); err != nil {
		t.Fatal(err)
	}
	refresher := &testutil.FakeRefresher{}
	flow := &testutil.FakeFlow{}
	mgr := auth.NewManager(store, refresher, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if cred.Token.AccessToken != "stored" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "stored")
	}
	if refresher.Calls != 0 || flow.Calls != 0 {
		t.Errorf("refresher/flow called (%d/%d), want 0/0", refresher.Calls, flow.Calls)
	}
}

func TestManager_AcquireRefreshesExpiredCredential(t *testing.T) {
	store := &testutil.MemStore{}
	if err := store.Save(testutil.ExpiredCredential("old")); err != nil {
		t.Fatal(err)
	}
	refresher := &testutil.FakeRefresher{Cred: testutil.ValidCredential("fresh")}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, refresher, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if cred.Token.AccessToken != "fresh" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "fresh")
	}
	if flow.Calls != 0 {
		t.Errorf("interactive flow invoked %d times, want 0", flow.Calls)
	}
	if got := store.Stored(); got == nil || got.Token.AccessToken != "fresh" {
		t.Error("refreshed credential was not persisted")
	}
}

func TestManager_AcquireFallsBackToInteractive(t *testing.T) {
	// Expired credential without a refresh token.
	stale := testutil.ExpiredCredential("old")
	stale.Token.RefreshToken = ""
	store := &testutil.MemStore{}
	if err := store.Save(stale); err != nil {
		t.Fatal(err)
	}
	refresher := &testutil.FakeRefresher{Cred: testutil.ValidCredential("fresh")}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, refresher, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if cred.Token.AccessToken != "interactive" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "interactive")
	}
	if refresher.Calls != 0 {
		t.Errorf("refresher invoked %d times, want 0", refresher.Calls)
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
}

func TestManager_DeadRefreshTokenFallsBackToInteractive(t *testing.T) {
	store := &testutil.MemStore{}
	if err := store.Save(testutil.ExpiredCredential("old")); err != nil {
		t.Fatal(err)
	}
	refresher := &testutil.FakeRefresher{Err: errors.New("invalid_grant")}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, refresher, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if cred.Token.AccessToken != "interactive" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "interactive")
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
}

func TestManager_CorruptStoreHealsThenPersists(t *testing.T) {
	// A real file store with garbage content: acquisition must clear
	// it, authenticate interactively, and leave the store readable.
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}
	store := &auth.FileStore{Path: path}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if cred.Token.AccessToken != "interactive" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "interactive")
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("store still unreadable after heal: %v", err)
	}
	if got.Token.AccessToken != "interactive" {
		t.Error("healed store does not hold the fresh credential")
	}
}

func TestManager_ConfigMissingIsFatal(t *testing.T) {
	store := &testutil.MemStore{}
	flow := &testutil.FakeFlow{Err: auth.ErrConfigMissing}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	_, err := mgr.Acquire(context.Background())
	if !errors.Is(err, auth.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
}

func TestManager_UserCancelledSurfaces(t *testing.T) {
	store := &testutil.MemStore{}
	flow := &testutil.FakeFlow{Err: auth.ErrUserCancelled}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	_, err := mgr.Acquire(context.Background())
	if !errors.Is(err, auth.ErrUserCancelled) {
		t.Fatalf("expected ErrUserCancelled, got %v", err)
	}
}

func TestManager_SaveFailureKeepsCredentialUsable(t *testing.T) {
	store := &testutil.MemStore{SaveErr: errors.New("disk full")}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	cred, err := mgr.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed despite save error: %v", err)
	}
	if !cred.Valid() {
		t.Error("acquired credential should be valid")
	}

	// The cached credential serves later acquisitions without a new flow.
	if _, err := mgr.Acquire(context.Background()); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
}

func TestManager_ForceRefreshDiscardsEverything(t *testing.T) {
	store := &testutil.MemStore{}
	if err := store.Save(testutil.ValidCredential("stored")); err != nil {
		t.Fatal(err)
	}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	if _, err := mgr.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	cred, err := mgr.ForceRefresh(context.Background())
	if err != nil {
		t.Fatalf("ForceRefresh failed: %v", err)
	}
	if cred.Token.AccessToken != "interactive" {
		t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "interactive")
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
	if got := store.Stored(); got == nil || got.Token.AccessToken != "interactive" {
		t.Error("fresh credential was not persisted after forced refresh")
	}
}

func TestManager_ConcurrentAcquireRunsOneFlow(t *testing.T) {
	store := &testutil.MemStore{}
	flow := &testutil.FakeFlow{Cred: testutil.ValidCredential("interactive")}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = mgr.Acquire(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("caller %d failed: %v", i, err)
		}
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
}
