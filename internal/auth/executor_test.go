package auth_test

import (
	"context"
	"errors"
	"testing"

	"taskdock/internal/auth"
	"taskdock/internal/testutil"
)

func newExecutorWithFlow(stored, fresh *auth.Credential) (*auth.Executor, *testutil.FakeFlow) {
	store := &testutil.MemStore{}
	if stored != nil {
		_ = store.Save(stored)
	}
	flow := &testutil.FakeFlow{Cred: fresh}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)
	return auth.NewExecutor(mgr), flow
}

func TestExecutor_Success(t *testing.T) {
	exec, flow := newExecutorWithFlow(testutil.ValidCredential("stored"), nil)

	calls := 0
	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		calls++
		if cred.Token.AccessToken != "stored" {
			t.Errorf("access token = %q, want %q", cred.Token.AccessToken, "stored")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("operation ran %d times, want 1", calls)
	}
	if flow.Calls != 0 {
		t.Errorf("interactive flow invoked %d times, want 0", flow.Calls)
	}
}

func TestExecutor_RecoversAfterRefresh(t *testing.T) {
	exec, _ := newExecutorWithFlow(
		testutil.ValidCredential("revoked"),
		testutil.ValidCredential("fresh"),
	)

	var seen []string
	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		seen = append(seen, cred.Token.AccessToken)
		if cred.Token.AccessToken == "revoked" {
			return &auth.AuthorizationError{Status: 401, Err: errors.New("invalid credentials")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if len(seen) != 2 || seen[0] != "revoked" || seen[1] != "fresh" {
		t.Errorf("credentials seen = %v, want [revoked fresh]", seen)
	}
}

func TestExecutor_SecondRejectionIsTerminal(t *testing.T) {
	exec, flow := newExecutorWithFlow(
		testutil.ValidCredential("revoked"),
		testutil.ValidCredential("also-revoked"),
	)

	calls := 0
	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		calls++
		return &auth.AuthorizationError{Status: 401, Err: errors.New("invalid credentials")}
	})
	if !errors.Is(err, auth.ErrAuthenticationExpired) {
		t.Fatalf("expected ErrAuthenticationExpired, got %v", err)
	}
	if calls != 2 {
		t.Errorf("operation ran %d times, want 2", calls)
	}
	if flow.Calls != 1 {
		t.Errorf("interactive flow invoked %d times, want 1", flow.Calls)
	}
}

func TestExecutor_NonAuthorizationErrorDoesNotRetry(t *testing.T) {
	exec, flow := newExecutorWithFlow(testutil.ValidCredential("stored"), nil)

	boom := errors.New("backend unavailable")
	calls := 0
	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if calls != 1 {
		t.Errorf("operation ran %d times, want 1", calls)
	}
	if flow.Calls != 0 {
		t.Errorf("interactive flow invoked %d times, want 0", flow.Calls)
	}
}

func TestExecutor_RefreshFailurePropagates(t *testing.T) {
	// Retry needs a new credential; if acquisition fails its error
	// keeps its own identity instead of becoming "expired".
	store := &testutil.MemStore{}
	_ = store.Save(testutil.ValidCredential("revoked"))
	flow := &testutil.FakeFlow{Err: auth.ErrConfigMissing}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)
	exec := auth.NewExecutor(mgr)

	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		return &auth.AuthorizationError{Status: 401, Err: errors.New("invalid credentials")}
	})
	if !errors.Is(err, auth.ErrConfigMissing) {
		t.Fatalf("expected ErrConfigMissing, got %v", err)
	}
}

func TestExecutor_AcquisitionFailureSkipsOperation(t *testing.T) {
	store := &testutil.MemStore{}
	flow := &testutil.FakeFlow{Err: auth.ErrUserCancelled}
	mgr := auth.NewManager(store, &testutil.FakeRefresher{}, flow)
	exec := auth.NewExecutor(mgr)

	calls := 0
	err := exec.Do(context.Background(), func(ctx context.Context, cred *auth.Credential) error {
		calls++
		return nil
	})
	if !errors.Is(err, auth.ErrUserCancelled) {
		t.Fatalf("expected ErrUserCancelled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("operation ran %d times, want 0", calls)
	}
}
