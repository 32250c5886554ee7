package http_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/application/dto"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestPanicRecuperado_NoExponeElMensaje(t *testing.T) {
	env := newTestEnv(t)
	env.app.Get("/boom", func(*fiber.Ctx) error {
		var list []int
		_ = list[3]
		return nil
	})

	resp, raw := env.do(t, http.MethodGet, "/boom", nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeJSON[dto.ErrorResponse](t, raw)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, string(raw), "index out of range")
}

func TestRutaInexistente_RespondeJSON(t *testing.T) {
	env := newTestEnv(t)

	resp, raw := env.do(t, http.MethodGet, "/no-existe", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeJSON[dto.ErrorResponse](t, raw).Code)
}
