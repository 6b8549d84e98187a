package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	apphttp "github.com/jhoicas/Insumos-api/internal/interfaces/http"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

func errorApp(production bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(logger.Nop(), production)})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("pq: conexión rechazada en 10.0.0.5")
	})
	return app
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestErrorHandler_ProduccionOcultaDetalle(t *testing.T) {
	resp, err := errorApp(true).Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5", "en producción no se expone el detalle")
}

func TestErrorHandler_DesarrolloIncluyeDetalle(t *testing.T) {
	resp, err := errorApp(false).Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)

	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Contains(t, body.Message, "conexión rechazada")
}

func TestErrorHandler_RutaInexistente(t *testing.T) {
	resp, err := errorApp(true).Test(httptest.NewRequest(http.MethodGet, "/no-existe", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}
