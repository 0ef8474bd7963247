package auth_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"

	"taskdock/internal/auth"
	"taskdock/internal/testutil"
)

func TestFileStore_LoadMissing(t *testing.T) {
	store := &auth.FileStore{Path: filepath.Join(t.TempDir(), "token.json")}

	_, err := store.Load()
	if !errors.Is(err, auth.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := &auth.FileStore{Path: filepath.Join(t.TempDir(), "token.json")}
	want := testutil.ValidCredential("round")

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Token.AccessToken != want.Token.AccessToken {
		t.Errorf("access token = %q, want %q", got.Token.AccessToken, want.Token.AccessToken)
	}
	if got.Token.RefreshToken != want.Token.RefreshToken {
		t.Errorf("refresh token = %q, want %q", got.Token.RefreshToken, want.Token.RefreshToken)
	}
	if !got.HasScope(auth.Scope) {
		t.Error("loaded credential lost its scope")
	}
	if !got.Valid() {
		t.Error("loaded credential should be valid")
	}
}

func TestFileStore_SaveIsPrivate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := &auth.FileStore{Path: path}

	if err := store.Save(testutil.ValidCredential("perm")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token file mode = %o, want %o", perm, 0600)
	}
}

func TestFileStore_CorruptBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	store := &auth.FileStore{Path: path}

	_, err := store.Load()
	var corrupt *auth.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError, got %v", err)
	}
}

func TestFileStore_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "token": {}}`), 0600); err != nil {
		t.Fatal(err)
	}
	store := &auth.FileStore{Path: path}

	_, err := store.Load()
	var corrupt *auth.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("expected CorruptError for unknown version, got %v", err)
	}
}

func TestFileStore_ClearIdempotent(t *testing.T) {
	store := &auth.FileStore{Path: filepath.Join(t.TempDir(), "token.json")}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear of empty store failed: %v", err)
	}

	if err := store.Save(testutil.ValidCredential("x")); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, auth.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after Clear, got %v", err)
	}
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := &auth.KeyringStore{Service: "taskdock-test", Account: t.Name()}

	if _, err := store.Load(); !errors.Is(err, auth.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}

	want := testutil.ValidCredential("keyring")
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Token.AccessToken != want.Token.AccessToken {
		t.Errorf("access token = %q, want %q", got.Token.AccessToken, want.Token.AccessToken)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, auth.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after Clear, got %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear of empty keyring failed: %v", err)
	}
}
