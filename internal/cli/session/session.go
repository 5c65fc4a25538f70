// Package session owns the client-side authentication state of the storefront.
//
// A Store is created from the persisted token, mutated by Login, Logout and
// Expire, and is the only state shared across pages. IsAuthenticated is true
// exactly when a token is held.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nebulastore/nebula/internal/cli/client"
	"github.com/nebulastore/nebula/internal/cli/router"
	"github.com/nebulastore/nebula/internal/cli/tokenstore"
)

// Authenticator calls the authentication endpoint
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*client.LoginResponse, error)
}

// Navigator moves the view layer to another route
type Navigator interface {
	Navigate(path string) string
}

// UserSummary identifies the logged in user. It is derived locally and
// never confirmed by the server.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// restoredUser stands in for the user when only a persisted token is known
var restoredUser = UserSummary{ID: 1, Username: "authenticated_user", Email: "user@example.com"}

// State is a snapshot of the session
type State struct {
	Token           string
	IsAuthenticated bool
	User            *UserSummary
	Loading         bool
	Error           string
}

// LoginError carries the user-facing message of a failed login
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Store is the single source of truth for "is this client authenticated"
type Store struct {
	tokens tokenstore.Store
	auth   Authenticator
	nav    Navigator
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	user    *UserSummary
	loading bool
	err     string
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used to detect expired tokens
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a session from the persisted token, if any
func New(tokens tokenstore.Store, auth Authenticator, nav Navigator, log zerolog.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		tokens: tokens,
		auth:   auth,
		nav:    nav,
		logger: log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	token, found, err := tokens.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if !found {
		return s, nil
	}

	if tokenExpired(token, s.now()) {
		s.logger.Info().Msg("Persisted token has expired, discarding it")
		if err := tokens.Clear(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to clear expired token")
		}
		return s, nil
	}

	user := restoredUser
	s.token = token
	s.user = &user
	return s, nil
}

// Login authenticates with the given credentials. On success the token is
// persisted and the view moves to the catalog. On failure Error holds a
// user-facing message, which is also returned as a *LoginError.
// Overlapping calls are not deduplicated.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return s.fail("Enter your username and password.", nil)
	}

	resp, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Login failed")
		return s.fail(loginErrorMessage(err), err)
	}

	if err := s.tokens.Set(resp.Token); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist token")
		return s.fail("Login succeeded but the session could not be saved.", err)
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = &UserSummary{
		ID:       1,
		Username: username,
		Email:    username + "@example.com",
	}
	s.mu.Unlock()

	s.logger.Info().Str("username", username).Msg("User logged in")
	s.nav.Navigate(router.PathProducts)
	return nil
}

func (s *Store) fail(message string, err error) error {
	s.mu.Lock()
	s.err = message
	s.mu.Unlock()
	return &LoginError{Message: message, Err: err}
}

// Logout clears the persisted token and the in-memory state. It always
// succeeds and makes no network call.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear persisted token")
	}
	s.reset()
	s.logger.Info().Msg("User logged out")
	s.nav.Navigate(router.PathLogin)
}

// Expire drops the in-memory session after the API rejected the credential.
// The HTTP client has already cleared the persisted token.
func (s *Store) Expire() {
	s.reset()
	s.logger.Info().Msg("Session expired")
	s.nav.Navigate(router.PathLogin)
}

func (s *Store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// State returns a snapshot of the session
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var user *UserSummary
	if s.user != nil {
		u := *s.user
		user = &u
	}

	return State{
		Token:           s.token,
		IsAuthenticated: s.token != "",
		User:            user,
		Loading:         s.loading,
		Error:           s.err,
	}
}

// IsAuthenticated reports whether a token is held
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current token, empty when unauthenticated
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user, nil when unauthenticated
func (s *Store) User() *UserSummary {
	return s.State().User
}

func loginErrorMessage(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return "Login failed. Check your credentials."
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Login failed: %s", apiErr.Message())
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "Login failed: the request timed out."
	}

	return fmt.Sprintf("Login failed: %v", err)
}
