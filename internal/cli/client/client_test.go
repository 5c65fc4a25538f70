package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebulastore/nebula/internal/cli/tokenstore"
	"github.com/nebulastore/nebula/internal/stubapi"
)

func newTestClient(t *testing.T, opts ...stubapi.Option) (*Client, *stubapi.Server, *tokenstore.Memory) {
	t.Helper()
	stub := stubapi.New(opts...)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemory()
	return New(srv.URL, tokens, WithTimeout(5*time.Second)), stub, tokens
}

func TestLogin_Success(t *testing.T) {
	c, _, tokens := newTestClient(t)

	resp, err := c.Login(context.Background(), stubapi.DefaultUsername, stubapi.DefaultPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, found, _ := tokens.Get()
	assert.False(t, found, "the client never persists tokens itself")
}

func TestLogin_Rejected(t *testing.T) {
	c, _, _ := newTestClient(t)

	_, err := c.Login(context.Background(), "johnd", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "username or password is incorrect", apiErr.Message())
}

func TestLogin_MissingCredentials(t *testing.T) {
	c, stub, _ := newTestClient(t)

	_, err := c.Login(context.Background(), "", "secret")
	require.Error(t, err)
	assert.Equal(t, 0, stub.RequestCount(), "no request is sent without credentials")
}

func TestLogin_ResponseWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, tokenstore.NewMemory())
	_, err := c.Login(context.Background(), "user", "pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not include a token")
}

func TestRequests_CarryBearerToken(t *testing.T) {
	c, stub, tokens := newTestClient(t)

	token, err := stub.IssueToken(stubapi.DefaultUsername, time.Hour)
	require.NoError(t, err)
	require.NoError(t, tokens.Set(token))

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, len(stubapi.SeedProducts()))

	headers := stub.LastHeaders()
	assert.Equal(t, "Bearer "+token, headers.Get("Authorization"))
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestRequests_WithoutTokenHaveNoAuthorization(t *testing.T) {
	c, stub, _ := newTestClient(t, stubapi.WithoutAuth())

	_, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stub.LastHeaders().Get("Authorization"))
}

func TestUnauthorized_ClearsTokenAndRunsHook(t *testing.T) {
	c, stub, tokens := newTestClient(t)

	token, err := stub.IssueToken(stubapi.DefaultUsername, time.Hour)
	require.NoError(t, err)
	require.NoError(t, tokens.Set(token))

	hookCalls := 0
	c.OnUnauthorized(func() { hookCalls++ })

	stub.ExpireSessions()

	_, err = c.GetProduct(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, found, _ := tokens.Get()
	assert.False(t, found, "a 401 clears the persisted token")
	assert.Equal(t, 1, hookCalls)
}

func TestGetProduct(t *testing.T) {
	c, _, _ := newTestClient(t, stubapi.WithoutAuth())

	p, err := c.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "jewelery", p.Category)
	require.NotNil(t, p.Rating)
	assert.Equal(t, 400, p.Rating.Count)
}

func TestGetProduct_NotFound(t *testing.T) {
	c, _, _ := newTestClient(t, stubapi.WithoutAuth())

	_, err := c.GetProduct(context.Background(), 999)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestListProducts_ServerFailure(t *testing.T) {
	c, stub, _ := newTestClient(t, stubapi.WithoutAuth())
	stub.FailCatalog(http.StatusInternalServerError)

	_, err := c.ListProducts(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestListProducts_MalformedProductsPassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Backpack","price":10,"image":"https://example.com/1.png"},{"id":2,"title":"","price":5,"image":"/img/2.png","rating":{"rate":7,"count":1}}]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, tokenstore.NewMemory(), WithTimeout(5*time.Second))
	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "/img/2.png", products[1].Image)
	assert.Empty(t, products[1].Title)
	require.NotNil(t, products[1].Rating)
	assert.Equal(t, 7.0, products[1].Rating.Rate)
}

func TestGetProduct_MalformedProductPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":3,"title":""}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, tokenstore.NewMemory(), WithTimeout(5*time.Second))
	p, err := c.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.ID)
	assert.Empty(t, p.Title)
}

func TestListProducts_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, tokenstore.NewMemory(), WithTimeout(time.Second))
	_, err := c.ListProducts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	base := RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
	})

	rt := Chain(base, mark("first"), mark("second"))
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "base"}, order)
}

func TestAPIError_Message(t *testing.T) {
	assert.Equal(t, "boom", (&APIError{StatusCode: 500, Body: `{"message":"boom"}`}).Message())
	assert.Equal(t, "plain text", (&APIError{StatusCode: 500, Body: "plain text\n"}).Message())
	assert.Equal(t, "Bad Gateway", (&APIError{StatusCode: 502}).Message())
}
