package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Service: "facturacion-api", Out: &buf})

	l.Named("seed").Info().Int("users", 11).Msg("dataset generado")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "facturacion-api", line["service"])
	assert.Equal(t, "seed", line["component"])
	assert.Equal(t, "info", line["level"])
	assert.EqualValues(t, 11, line["users"])
}

func TestNew_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no se escribe")
	assert.Empty(t, buf.String())
	l.Warn().Msg("sí se escribe")
	assert.Contains(t, buf.String(), "sí se escribe")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(" error "))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}
