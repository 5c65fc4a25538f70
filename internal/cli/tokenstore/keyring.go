package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "nebula-cli"
)

// Keyring stores the token in the OS keychain/credential manager
type Keyring struct {
	key string
}

// NewKeyring creates a keyring-backed store under key
func NewKeyring(key string) *Keyring {
	return &Keyring{key: key}
}

// Get retrieves the token from the OS keychain/credential manager
func (k *Keyring) Get() (string, bool, error) {
	token, err := keyring.Get(service, k.key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load token: %w", err)
	}
	return token, token != "", nil
}

// Set persists the token securely in the OS keychain/credential manager
func (k *Keyring) Set(token string) error {
	if err := keyring.Set(service, k.key, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the token from the OS keychain/credential manager
func (k *Keyring) Clear() error {
	if err := keyring.Delete(service, k.key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
