package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

// Store persists a single credential blob.
type Store interface {
	// Load returns the persisted credential, ErrNoCredential when
	// nothing is stored, or a *CorruptError when the stored material
	// cannot be parsed.
	Load() (*Credential, error)

	// Save persists the credential atomically.
	Save(cred *Credential) error

	// Clear removes persisted material. Clearing an empty store is
	// not an error.
	Clear() error
}

// blobVersion is the persisted credential format version.
const blobVersion = 1

// blob is the envelope written by every store backend.
type blob struct {
	Version int          `json:"version"`
	Token   oauth2.Token `json:"token"`
	Scopes  []string     `json:"scopes"`
}

func encodeBlob(cred *Credential) ([]byte, error) {
	return json.MarshalIndent(blob{
		Version: blobVersion,
		Token:   cred.Token,
		Scopes:  cred.Scopes,
	}, "", "  ")
}

func decodeBlob(data []byte) (*Credential, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &CorruptError{Err: err}
	}
	if b.Version != blobVersion {
		return nil, &CorruptError{Err: fmt.Errorf("unsupported credential version %d", b.Version)}
	}
	return &Credential{Token: b.Token, Scopes: b.Scopes}, nil
}

// FileStore keeps the credential blob in a mode-0600 JSON file
// (token.json in the config directory).
type FileStore struct {
	Path string
}

// Load implements Store.
func (s *FileStore) Load() (*Credential, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCredential
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	return decodeBlob(data)
}

// Save implements Store. The blob is written to a temporary file and
// renamed into place so a crash never leaves a torn token.json.
func (s *FileStore) Save(cred *Credential) error {
	data, err := encodeBlob(cred)
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
