package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	defaultKeyringService = "taskdock"
	defaultKeyringAccount = "oauth-token"
)

// KeyringStore keeps the credential blob in the OS keyring. Selected
// with token_storage: keyring in settings.yaml.
type KeyringStore struct {
	// Service overrides the keyring service name. Defaults to "taskdock".
	Service string

	// Account overrides the keyring account name. Defaults to "oauth-token".
	Account string
}

func (s *KeyringStore) service() string {
	if s.Service != "" {
		return s.Service
	}
	return defaultKeyringService
}

func (s *KeyringStore) account() string {
	if s.Account != "" {
		return s.Account
	}
	return defaultKeyringAccount
}

// Load implements Store.
func (s *KeyringStore) Load() (*Credential, error) {
	data, err := keyring.Get(s.service(), s.account())
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNoCredential
	}
	if err != nil {
		return nil, fmt.Errorf("keyring read failed: %w", err)
	}
	return decodeBlob([]byte(data))
}

// Save implements Store.
func (s *KeyringStore) Save(cred *Credential) error {
	data, err := encodeBlob(cred)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.service(), s.account(), string(data)); err != nil {
		return fmt.Errorf("keyring write failed: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.service(), s.account())
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
