package client

import (
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/nebulastore/nebula/internal/cli/tokenstore"
)

const (
	bearerPrefix    = "Bearer "
	requestIDHeader = "X-Request-ID"

	// cap on error bodies kept in APIError
	maxErrorBody = 4 << 10
)

// Middleware decorates a transport with a cross-cutting request policy
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripFunc adapts a function to http.RoundTripper
type RoundTripFunc func(*http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with mws. The first middleware sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// RequestID tags every request with a fresh ULID unless one is already set
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(requestIDHeader) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(requestIDHeader, ulid.Make().String())
			}
			return next.RoundTrip(req)
		})
	}
}

// Logging logs every request using zerolog
func Logging(log zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.RoundTrip(req)

			event := log.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("request_id", req.Header.Get(requestIDHeader)).
				Dur("duration", time.Since(start))
			if err != nil {
				event.Err(err).Msg("HTTP request failed")
				return nil, err
			}
			event.Int("status", resp.StatusCode).Msg("HTTP request")
			return resp, nil
		})
	}
}

// BearerAuth attaches the persisted token, if any, as a bearer credential
func BearerAuth(tokens tokenstore.Store, log zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			token, found, err := tokens.Get()
			if err != nil {
				// An unreadable store is treated like an absent token
				log.Warn().Err(err).Msg("Failed to read session token")
			}
			if found {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", bearerPrefix+token)
			}
			return next.RoundTrip(req)
		})
	}
}

// Unauthorized reacts to a rejected credential: the persisted token is
// cleared, onUnauthorized runs, and the call fails with an error matching
// ErrUnauthorized so the caller's own error handling still runs.
func Unauthorized(tokens tokenstore.Store, onUnauthorized func(), log zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			resp.Body.Close()

			if err := tokens.Clear(); err != nil {
				log.Error().Err(err).Msg("Failed to clear session token")
			}
			log.Info().Str("path", req.URL.Path).Msg("Credential rejected, session cleared")

			if onUnauthorized != nil {
				onUnauthorized()
			}

			return nil, &APIError{
				Method:     req.Method,
				Path:       req.URL.Path,
				StatusCode: resp.StatusCode,
				Body:       string(body),
			}
		})
	}
}
