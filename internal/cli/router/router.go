// Package router maps storefront paths to pages and gates protected pages
// behind authentication.
package router

import (
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Paths of the storefront
const (
	PathRoot     = "/"
	PathLogin    = "/login"
	PathProducts = "/products"
)

// Page names
const (
	PageLogin         = "login"
	PageProducts      = "products"
	PageProductDetail = "product-detail"
)

// Route is a matched path
type Route struct {
	Page      string
	Path      string
	ProductID int
	Protected bool
}

// ProductPath returns the detail path of product id
func ProductPath(id int) string {
	return PathProducts + "/" + strconv.Itoa(id)
}

// Match resolves path to a route. The root and unknown paths match nothing.
func Match(path string) (Route, bool) {
	path = "/" + strings.Trim(path, "/")

	switch path {
	case PathLogin:
		return Route{Page: PageLogin, Path: PathLogin}, true
	case PathProducts:
		return Route{Page: PageProducts, Path: PathProducts, Protected: true}, true
	}

	if rest, ok := strings.CutPrefix(path, PathProducts+"/"); ok && !strings.Contains(rest, "/") {
		id, err := strconv.Atoi(rest)
		if err != nil || id <= 0 {
			return Route{}, false
		}
		return Route{Page: PageProductDetail, Path: ProductPath(id), ProductID: id, Protected: true}, true
	}

	return Route{}, false
}

// Guard returns the path that should be rendered when path is requested.
// Protected pages redirect to the login page when unauthenticated; the
// login page redirects to the catalog when already authenticated; anything
// unknown lands on the login page.
func Guard(authenticated bool, path string) string {
	route, ok := Match(path)
	if !ok {
		return PathLogin
	}
	if route.Protected && !authenticated {
		return PathLogin
	}
	if route.Page == PageLogin && authenticated {
		return PathProducts
	}
	return route.Path
}

// AuthState reports whether the client is authenticated
type AuthState interface {
	IsAuthenticated() bool
}

// Router tracks the current route. It recomputes the guard on every
// navigation and holds no other state.
type Router struct {
	mu      sync.Mutex
	auth    AuthState
	current Route
	logger  zerolog.Logger
}

// New creates a router positioned on the login page
func New(log zerolog.Logger) *Router {
	return &Router{
		current: Route{Page: PageLogin, Path: PathLogin},
		logger:  log,
	}
}

// Bind sets the authentication source consulted by the guard.
// Until bound, every visitor counts as unauthenticated.
func (r *Router) Bind(auth AuthState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auth = auth
}

// Navigate moves to path, or wherever the guard redirects it, and returns
// the path actually reached
func (r *Router) Navigate(path string) string {
	r.mu.Lock()
	auth := r.auth
	r.mu.Unlock()

	authenticated := auth != nil && auth.IsAuthenticated()
	target := Guard(authenticated, path)
	route, _ := Match(target)

	r.mu.Lock()
	r.current = route
	r.mu.Unlock()

	if target != path {
		r.logger.Debug().Str("requested", path).Str("path", target).Msg("Redirected")
	} else {
		r.logger.Debug().Str("path", target).Msg("Navigated")
	}
	return target
}

// Current returns the current route
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
