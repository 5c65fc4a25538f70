// Package tokenstore persists the single bearer token of a storefront session.
//
// A Store holds at most one opaque token. Absence of a token means the
// client is not authenticated. Backends differ only in where the token lives.
package tokenstore

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/nebulastore/nebula/internal/config"
)

// Store defines the persistence port for the session token
type Store interface {
	// Get returns the persisted token and whether one exists
	Get() (token string, found bool, err error)
	// Set persists token, replacing any previous one
	Set(token string) error
	// Clear removes the token. Clearing an absent token is not an error.
	Clear() error
}

// Open returns the backend named by backend.
// dir is the state directory used by the file and sqlite backends;
// apiURL scopes keyring entries so tokens for different APIs don't collide.
func Open(backend, dir, apiURL string) (Store, error) {
	switch backend {
	case config.BackendKeyring:
		return NewKeyring(keyFor(apiURL)), nil
	case config.BackendFile:
		return NewFile(filepath.Join(dir, "token")), nil
	case config.BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "session.sqlite"), keyFor(apiURL))
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown token backend %q", backend)
	}
}

// keyFor returns a unique key for storing tokens per API host
func keyFor(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("token-%s", apiURL)
	}
	return fmt.Sprintf("token-%s", u.Host)
}
