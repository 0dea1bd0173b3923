package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/retail-ledger/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/retail-ledger/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "retail-ledger-test"
	testExpMin    = 60
)

func testManager() *pkgjwt.Manager {
	return pkgjwt.NewManager(testJWTSecret, testIssuer, testExpMin)
}

// buildTestApp construye una aplicación Fiber mínima con AuthMiddleware y un
// handler dummy que devuelve los locals cargados.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testManager()),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id":   apphttp.GetUserID(c),
				"tenant_id": apphttp.GetTenantID(c),
			})
		},
	)
	return app
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: Token válido → pasa y carga user_id y tenant_id en el contexto.
func TestAuthMiddleware_TokenValidoCargaLocals(t *testing.T) {
	app := buildTestApp()
	token, err := testManager().Generate(testUserID, testTenantID)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, testUserID, payload["user_id"])
	assert.Equal(t, testTenantID, payload["tenant_id"])
}

// Caso 2: Sin header Authorization → 401.
func TestAuthMiddleware_SinHeaderRechaza(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 3: Formato incorrecto del header → 401.
func TestAuthMiddleware_FormatoInvalidoRechaza(t *testing.T) {
	app := buildTestApp()
	for _, header := range []string{"Basic abc123", "Bearer", "solo-un-token"} {
		resp := doRequest(t, app, header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header: %q", header)
	}
}

// Caso 4: Token firmado con otro secreto → 401.
func TestAuthMiddleware_FirmaInvalidaRechaza(t *testing.T) {
	app := buildTestApp()
	otro := pkgjwt.NewManager("otro-secreto-distinto", testIssuer, testExpMin)
	token, err := otro.Generate(testUserID, testTenantID)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token expirado → 401.
func TestAuthMiddleware_TokenExpiradoRechaza(t *testing.T) {
	app := buildTestApp()
	expirado := pkgjwt.NewManager(testJWTSecret, testIssuer, -1)
	token, err := expirado.Generate(testUserID, testTenantID)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
