package commands

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nebulastore/nebula/internal/cli/tokenstore"
	appconfig "github.com/nebulastore/nebula/internal/config"
	"github.com/nebulastore/nebula/internal/stubapi"
)

// testEnv is a command environment backed by an in-process stub API
type testEnv struct {
	opts   *Options
	out    *bytes.Buffer
	tokens *tokenstore.Memory
	stub   *stubapi.Server
}

func newTestEnv(t *testing.T, stubOpts ...stubapi.Option) *testEnv {
	t.Helper()

	stub := stubapi.New(stubOpts...)
	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)

	nop := zerolog.Nop()
	out := &bytes.Buffer{}
	tokens := tokenstore.NewMemory()

	return &testEnv{
		opts: &Options{
			Config: &appconfig.Config{
				API: appconfig.APIConfig{URL: ts.URL, Timeout: 5 * time.Second},
				Storage: appconfig.StorageConfig{
					Backend:  appconfig.BackendMemory,
					StateDir: t.TempDir(),
				},
			},
			Logger:      &nop,
			Tokens:      tokens,
			Out:         out,
			EndpointURL: ts.URL,
			Interactive: func() bool { return false },
		},
		out:    out,
		tokens: tokens,
		stub:   stub,
	}
}

// loggedIn stores a valid token as if a previous run had logged in
func (e *testEnv) loggedIn(t *testing.T) string {
	t.Helper()
	token, err := e.stub.IssueToken(stubapi.DefaultUsername, time.Hour)
	require.NoError(t, err)
	require.NoError(t, e.tokens.Set(token))
	return token
}

func (e *testEnv) storedToken(t *testing.T) (string, bool) {
	t.Helper()
	token, found, err := e.tokens.Get()
	require.NoError(t, err)
	return token, found
}
