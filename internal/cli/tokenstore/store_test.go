package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStores_Lifecycle(t *testing.T) {
	keyring.MockInit()

	backends := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"file": func(t *testing.T) Store {
			return NewFile(filepath.Join(t.TempDir(), "nested", "token"))
		},
		"keyring": func(t *testing.T) Store { return NewKeyring("token-" + t.Name()) },
		"sqlite": func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "session.sqlite"), "token-localhost")
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)

			token, found, err := store.Get()
			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, token)

			require.NoError(t, store.Set("abc"))
			token, found, err = store.Get()
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "abc", token)

			require.NoError(t, store.Set("def"))
			token, _, err = store.Get()
			require.NoError(t, err)
			assert.Equal(t, "def", token, "Set replaces the previous token")

			require.NoError(t, store.Clear())
			_, found, err = store.Get()
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Clear(), "clearing an absent token is not an error")
		})
	}
}

func TestFile_PersistsPlainString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFile(path)

	require.NoError(t, store.Set("eyJhbGciOi.payload.sig"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOi.payload.sig", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFile_EmptyIsAbsent(t *testing.T) {
	for _, content := range []string{"", "\n", "\r\n"} {
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		_, found, err := NewFile(path).Get()
		require.NoError(t, err)
		assert.False(t, found, "content %q", content)
	}
}

func TestFile_TokenRoundTripsExactly(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, store.Set(" padded token\t"))

	token, found, err := store.Get()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, " padded token\t", token)
}

func TestFile_IgnoresTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc.def.ghi\n"), 0600))

	token, found, err := NewFile(path).Get()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.sqlite")

	s, err := OpenSQLite(path, "token-shop.example.com")
	require.NoError(t, err)
	require.NoError(t, s.Set("persisted"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, "token-shop.example.com")
	require.NoError(t, err)
	defer s.Close()

	token, found, err := s.Get()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", token)

	other, err := OpenSQLite(path, "token-other.example.com")
	require.NoError(t, err)
	defer other.Close()
	_, found, err = other.Get()
	require.NoError(t, err)
	assert.False(t, found, "tokens are scoped per API host")
}

func TestOpen(t *testing.T) {
	keyring.MockInit()
	dir := t.TempDir()

	s, err := Open("file", dir, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "token"), s.(*File).Path())

	s, err = Open("memory", dir, "http://localhost:8080")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open("keyring", dir, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "token-localhost:8080", s.(*Keyring).key)

	s, err = Open("sqlite", dir, "http://localhost:8080")
	require.NoError(t, err)
	require.NoError(t, s.(*SQLite).Close())

	_, err = Open("cookie", dir, "http://localhost:8080")
	assert.Error(t, err)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "token-shop.example.com", keyFor("https://shop.example.com/api"))
	assert.Equal(t, "token-not a url", keyFor("not a url"))
}
