package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nebulastore/nebula/internal/catalog"
	"github.com/nebulastore/nebula/internal/cli/tokenstore"
)

// Client represents an HTTP client for the storefront API.
// Every request goes through the same middleware chain, so no method
// handles tokens itself.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store
	logger     zerolog.Logger
	validate   *validator.Validate

	mu             sync.RWMutex
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the base transport under the middleware chain
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithTimeout sets the overall per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used by the client and its middleware
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// New creates a new API client for baseURL that reads its bearer token from tokens
func New(baseURL string, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: http.DefaultTransport,
		},
		tokens:   tokens,
		logger:   zerolog.Nop(),
		validate: validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = Chain(c.httpClient.Transport,
		RequestID(),
		Logging(c.logger),
		Unauthorized(tokens, c.unauthorized, c.logger),
		BearerAuth(tokens, c.logger),
	)

	return c
}

// OnUnauthorized registers the hook run after a 401 cleared the token
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credentials are submitted once to the login endpoint and never persisted
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token" validate:"required"`
}

// Login authenticates the user and returns the issued token
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	creds := Credentials{Username: username, Password: password}
	if err := c.validate.Struct(creds); err != nil {
		return nil, fmt.Errorf("username and password are required")
	}

	var loginResp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &loginResp); err != nil {
		c.logger.Error().Err(err).Msg("Error during login")
		return nil, err
	}

	if err := c.validate.Struct(loginResp); err != nil {
		return nil, fmt.Errorf("login response did not include a token")
	}

	return &loginResp, nil
}

// ListProducts returns every product of the catalog
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		c.logger.Error().Err(err).Msg("Error fetching products")
		return nil, err
	}

	for i := range products {
		c.checkProduct(&products[i])
	}

	return products, nil
}

// GetProduct returns a single product by ID
func (c *Client) GetProduct(ctx context.Context, id int) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product); err != nil {
		c.logger.Error().Err(err).Int("product_id", id).Msg("Error fetching product")
		return nil, err
	}

	c.checkProduct(&product)
	return &product, nil
}

// checkProduct logs payloads that break the catalog schema. The product is
// still returned as decoded.
func (c *Client) checkProduct(p *catalog.Product) {
	if err := p.Validate(); err != nil {
		c.logger.Warn().Err(err).Int("product_id", p.ID).Msg("Catalog returned a malformed product")
	}
}

// do sends a JSON request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return apiErr
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
