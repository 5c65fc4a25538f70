package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"off", zerolog.Disabled},
		{"", zerolog.WarnLevel},
		{"nonsense", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "parseLogLevel(%q)", tt.in)
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", "json", &buf)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := GetLogger()
	l.Info().Str("route", "/products").Msg("navigated")
	assert.Contains(t, buf.String(), `"route":"/products"`)
	assert.Contains(t, buf.String(), `"app":"nebula"`)

	buf.Reset()
	l = GetLogger()
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len(), "debug is filtered at info level")
}

func TestNew_ConsoleHasNoColorOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := New("console", &buf)

	l.Warn().Msg("token store unavailable")
	assert.Contains(t, buf.String(), "token store unavailable")
	assert.NotContains(t, buf.String(), "\x1b[")
}
