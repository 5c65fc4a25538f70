package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebulastore/nebula/internal/catalog"
)

func TestParse(t *testing.T) {
	n, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Dark, n)

	n, err = Parse(" LIGHT ")
	require.NoError(t, err)
	assert.Equal(t, Light, n)

	_, err = Parse("solarized")
	assert.Error(t, err)
}

func TestToggle(t *testing.T) {
	assert.Equal(t, Light, Toggle(Dark))
	assert.Equal(t, Dark, Toggle(Light))
	assert.Equal(t, Light, Toggle(""), "unset counts as the default dark theme")
}

func TestPalettes(t *testing.T) {
	dark := For(Dark)
	assert.Equal(t, Dark, dark.Name)
	assert.Contains(t, dark.Primary("NebulaStore"), "NebulaStore")
	assert.True(t, strings.HasPrefix(dark.Primary("x"), "\033["), "styled output carries escape codes")

	plain := Plain(Light)
	assert.Equal(t, "NebulaStore", plain.Accent(catalog.AccentInfo)("NebulaStore"))
}
