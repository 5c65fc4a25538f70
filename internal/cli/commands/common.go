package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/nebulastore/nebula/internal/cli/client"
	"github.com/nebulastore/nebula/internal/cli/endpointselect"
	"github.com/nebulastore/nebula/internal/cli/router"
	"github.com/nebulastore/nebula/internal/cli/session"
	"github.com/nebulastore/nebula/internal/cli/theme"
	"github.com/nebulastore/nebula/internal/cli/tokenstore"
	"github.com/nebulastore/nebula/internal/cli/userconfig"
	appconfig "github.com/nebulastore/nebula/internal/config"
	"github.com/nebulastore/nebula/internal/logger"
)

var (
	// ErrNotAuthenticated is returned when a protected page is requested without a session
	ErrNotAuthenticated = errors.New("not logged in. Please run 'nebula login' first")
	// ErrSessionExpired is returned when the API rejected the token mid-command
	ErrSessionExpired = errors.New("session expired. Please run 'nebula login' again")
)

// Options are shared by every command. The root command binds the global
// flags; tests fill the remaining fields directly.
type Options struct {
	// Endpoint is the alias passed with --endpoint
	Endpoint string
	// Ephemeral keeps the token in memory for this run only
	Ephemeral bool

	Config      *appconfig.Config
	Logger      *zerolog.Logger
	Tokens      tokenstore.Store
	Out         io.Writer
	EndpointURL string
	OpenURL     func(url string) error
	Interactive func() bool
}

func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o *Options) config() (*appconfig.Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	cfg, err := appconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	o.Config = cfg
	return cfg, nil
}

// LoadConfig loads the environment configuration once and keeps it on opts
func LoadConfig(opts *Options) (*appconfig.Config, error) {
	return opts.config()
}

func (o *Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return logger.GetLogger()
}

func (o *Options) interactive() bool {
	if o.Interactive != nil {
		return o.Interactive()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (o *Options) openURL(url string) error {
	if o.OpenURL != nil {
		return o.OpenURL(url)
	}
	return openBrowser(url)
}

// app wires the session, router and API client for one command run
type app struct {
	cfg      *appconfig.Config
	log      zerolog.Logger
	endpoint string
	tokens   tokenstore.Store
	api      *client.Client
	session  *session.Store
	router   *router.Router
	theme    theme.Name
	palette  theme.Palette
	out      io.Writer
}

func newApp(opts *Options) (*app, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, err
	}
	log := opts.logger()

	endpoint := opts.EndpointURL
	if endpoint == "" {
		resolver := &endpointselect.Resolver{
			StateDir:    cfg.Storage.StateDir,
			Fallback:    cfg.API.URL,
			Interactive: opts.Interactive,
		}
		e, err := resolver.Resolve(opts.Endpoint)
		if err != nil {
			return nil, err
		}
		endpoint = e.URL
	}

	tokens := opts.Tokens
	if tokens == nil {
		backend := cfg.Storage.Backend
		if opts.Ephemeral {
			backend = appconfig.BackendMemory
		}
		tokens, err = tokenstore.Open(backend, cfg.Storage.StateDir, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to open token store: %w", err)
		}
	}

	api := client.New(endpoint, tokens,
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(log),
	)
	rt := router.New(log)

	sess, err := session.New(tokens, api, rt, log)
	if err != nil {
		return nil, err
	}
	api.OnUnauthorized(sess.Expire)
	rt.Bind(sess)

	name := loadTheme(cfg.Storage.StateDir, log)
	out := opts.out()

	return &app{
		cfg:      cfg,
		log:      log,
		endpoint: endpoint,
		tokens:   tokens,
		api:      api,
		session:  sess,
		router:   rt,
		theme:    name,
		palette:  paletteFor(name, out),
		out:      out,
	}, nil
}

// close releases the token backend if it holds resources
func (a *app) close() {
	if c, ok := a.tokens.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn().Err(err).Msg("Failed to close token store")
		}
	}
}

// visit navigates to a protected page and fails when the guard redirects
// to the login page
func (a *app) visit(path string) error {
	if reached := a.router.Navigate(path); reached == router.PathLogin && path != router.PathLogin {
		return ErrNotAuthenticated
	}
	return nil
}

// pageError renders a page-level alert for a failed catalog call
func (a *app) pageError(what string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return ErrSessionExpired
	}

	message := err.Error()
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message()
	} else if errors.Is(err, context.DeadlineExceeded) {
		message = "the request timed out"
	}

	fmt.Fprintf(a.out, "%s %s: %s\n", a.palette.Error("✗"), what, message)
	return fmt.Errorf("%s: %w", what, err)
}

func loadTheme(stateDir string, log zerolog.Logger) theme.Name {
	cfg, err := userconfig.Load(stateDir)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load user config, using default theme")
		return theme.Default
	}
	if cfg.Theme == "" {
		return theme.Default
	}
	name, err := theme.Parse(cfg.Theme)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring saved theme")
		return theme.Default
	}
	return name
}

// paletteFor styles output only when it goes to a terminal
func paletteFor(name theme.Name, out io.Writer) theme.Palette {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return theme.For(name)
	}
	return theme.Plain(name)
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
