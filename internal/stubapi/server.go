// Package stubapi is an in-process stand-in for the remote catalog API.
//
// It serves the same routes as the real service (login plus the two
// product queries) with JWT-protected catalog endpoints, and exposes
// knobs for tests to expire sessions or make the catalog fail.
package stubapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nebulastore/nebula/internal/catalog"
)

// Server is a fake catalog API
type Server struct {
	router *gin.Engine
	logger zerolog.Logger

	mu           sync.RWMutex
	secret       []byte
	tokenTTL     time.Duration
	users        map[string][]byte
	products     []catalog.Product
	requireAuth  bool
	failStatus   int
	lastHeaders  http.Header
	requestCount int
}

// Option configures the stub
type Option func(*Server)

// WithUser registers username with password
func WithUser(username, password string) Option {
	return func(s *Server) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		s.users[username] = hash
	}
}

// WithProducts replaces the seeded catalog
func WithProducts(products []catalog.Product) Option {
	return func(s *Server) {
		s.products = products
	}
}

// WithoutAuth serves the catalog to anonymous callers
func WithoutAuth() Option {
	return func(s *Server) {
		s.requireAuth = false
	}
}

// WithTokenTTL sets the lifetime of issued tokens
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.tokenTTL = ttl
	}
}

// WithLogger sets the request logger
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = log
	}
}

// New creates a stub seeded with the default users and products
func New(opts ...Option) *Server {
	s := &Server{
		logger:      zerolog.Nop(),
		secret:      []byte("stub-signing-secret"),
		tokenTTL:    time.Hour,
		users:       map[string][]byte{},
		products:    SeedProducts(),
		requireAuth: true,
	}

	WithUser(DefaultUsername, DefaultPassword)(s)
	for _, opt := range opts {
		opt(s)
	}

	s.setupRouter()
	return s
}

// Handler returns the HTTP handler of the stub
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.recordingMiddleware())

	s.router.POST("/api/auth/login", s.login)

	api := s.router.Group("/api")
	api.Use(s.authMiddleware(), s.failureMiddleware())
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
	}
}

// recordingMiddleware remembers request headers for assertions
func (s *Server) recordingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		s.mu.Lock()
		s.lastHeaders = c.Request.Header.Clone()
		s.requestCount++
		s.mu.Unlock()

		c.Next()

		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("stub request")
	}
}

// failureMiddleware answers every catalog call with the configured failure
func (s *Server) failureMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.RLock()
		status := s.failStatus
		s.mu.RUnlock()

		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status)})
			return
		}
		c.Next()
	}
}

// FailCatalog makes the product endpoints answer with status; 0 restores them
func (s *Server) FailCatalog(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// LastHeaders returns the headers of the most recent request
func (s *Server) LastHeaders() http.Header {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHeaders.Clone()
}

// RequestCount returns how many requests the stub has served
func (s *Server) RequestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestCount
}
