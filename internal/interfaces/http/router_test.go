package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/application/auth"
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/delivery"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/application/reception"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Insumos-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Insumos-api/internal/interfaces/http"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

// newTestServer arma la API completa sobre el almacén en memoria.
func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.Nop()

	engine := inventory.NewAlertEngine()
	ledger := inventory.NewLedger(engine, log)
	pdfGen := pdf.NewMarotoPDFGenerator("Mezcalera de prueba")

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(log, false)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		Lines:          inventory.NewLineUseCase(repos, store, ledger, engine, xlsx.NewInventoryExporter()),
		ApplyMovement:  inventory.NewApplyMovementUseCase(store, ledger),
		Alerts:         inventory.NewAlertUseCase(repos, store),
		Receptions:     reception.NewUseCase(repos, store, ledger, pdfGen, log),
		Deliveries:     delivery.NewUseCase(repos, store, ledger, pdfGen, log),
		Clients:        catalog.NewClientUseCase(repos.Clients),
		ClientConfigs:  catalog.NewClientConfigUseCase(repos, store),
		Brands:         catalog.NewBrandUseCase(repos.Brands, repos.Clients),
		Suppliers:      catalog.NewSupplierUseCase(repos.Suppliers),
		Varieties:      catalog.NewVarietyUseCase(repos.Varieties),
		Presentations:  catalog.NewPresentationUseCase(repos.Presentations),
		Categories:     catalog.NewCategoryUseCase(repos.Categories),
		ProductionLots: catalog.NewProductionLotUseCase(repos),
		JWTSecret:      testJWTSecret,
		ServiceName:    "insumos-test",
	})
	return app
}

// send ejecuta una petición JSON y devuelve el status y el cuerpo crudo si es JSON.
func send(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return resp.StatusCode, nil
	}
	return resp.StatusCode, raw
}

// call decodifica una respuesta de objeto JSON.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := send(t, app, method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "respuesta JSON válida: %s", raw)
	}
	return status, out
}

// callList decodifica una respuesta de arreglo JSON (listados de catálogos).
func callList(t *testing.T, app *fiber.App, path, token string) (int, []any) {
	t.Helper()
	status, raw := send(t, app, http.MethodGet, path, token, nil)
	var out []any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &out), "respuesta JSON válida: %s", raw)
	}
	return status, out
}

// adminToken crea el primer administrador y devuelve su token.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, _ := call(t, app, http.MethodPost, "/api/auth/bootstrap", "", map[string]any{
		"email": "admin@mezcal.mx", "password": "secreto123", "name": "Admin",
	})
	require.Equal(t, http.StatusCreated, status, "bootstrap debe crear el administrador")
	return login(t, app, "admin@mezcal.mx", "secreto123")
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, "login debe responder 200")
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func create(t *testing.T, app *fiber.App, token, path string, body map[string]any) string {
	t.Helper()
	status, out := call(t, app, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, status, "POST %s: %v", path, out)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealth(t *testing.T) {
	app := newTestServer(t)
	status, body := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAuth_BootstrapUnaSolaVezYLogin(t *testing.T) {
	app := newTestServer(t)
	token := adminToken(t, app)

	status, body := call(t, app, http.MethodPost, "/api/auth/bootstrap", "", map[string]any{
		"email": "otro@mezcal.mx", "password": "secreto123", "name": "Otro",
	})
	assert.Equal(t, http.StatusForbidden, status, "bootstrap solo funciona sin usuarios")
	assert.Equal(t, "ALREADY_INITIALIZED", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@mezcal.mx", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nadie@mezcal.mx", "password": "secreto123"})
	assert.Equal(t, http.StatusUnauthorized, status, "email inexistente no se distingue de password incorrecto")
	assert.Equal(t, "INVALID_CREDENTIALS", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", body["role"])
}

func TestRoles_ViewerSoloLee(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	create(t, app, admin, "/api/users", map[string]any{
		"email": "consulta@mezcal.mx", "password": "secreto123", "name": "Consulta", "role": "viewer",
	})
	viewer := login(t, app, "consulta@mezcal.mx", "secreto123")

	create(t, app, admin, "/api/categories", map[string]any{"name": "Botellas", "unit": "piezas"})
	status, cats := callList(t, app, "/api/categories", viewer)
	assert.Equal(t, http.StatusOK, status, "viewer puede leer catálogos")
	assert.Len(t, cats, 1)

	status, body := call(t, app, http.MethodPost, "/api/categories", viewer, map[string]any{"name": "Tapones"})
	assert.Equal(t, http.StatusForbidden, status, "viewer no puede escribir")
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodGet, "/api/users", viewer, nil)
	assert.Equal(t, http.StatusForbidden, status, "usuarios es solo admin")

	status, _ = call(t, app, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status, "sin token no hay acceso")
}

func TestInventario_MovimientosYRecepcion(t *testing.T) {
	app := newTestServer(t)
	token := adminToken(t, app)

	categoryID := create(t, app, token, "/api/categories", map[string]any{"name": "Botellas", "unit": "piezas"})
	supplierID := create(t, app, token, "/api/suppliers", map[string]any{"name": "Vidriera del Valle"})
	lineID := create(t, app, token, "/api/inventory", map[string]any{
		"category_id": categoryID, "lot_code": "BOT-750-01", "quantity": 10, "min_quantity": 5,
	})

	status, body := call(t, app, http.MethodPost, "/api/inventory", token, map[string]any{
		"category_id": categoryID, "lot_code": "BOT-750-01", "quantity": 1,
	})
	assert.Equal(t, http.StatusConflict, status, "lot_code duplicado")
	assert.Equal(t, "DUPLICATE", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/inventory/movement", token, map[string]any{
		"inventory_id": lineID, "kind": "out", "amount": 20,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, body = call(t, app, http.MethodPost, "/api/inventory/movement", token, map[string]any{
		"inventory_id": lineID, "kind": "out", "amount": 6,
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.EqualValues(t, 10, body["before"])
	assert.EqualValues(t, 4, body["after"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/alerts/unseen-count", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["count"], "la salida deja la línea en stock bajo")

	status, body = call(t, app, http.MethodPost, "/api/receptions", token, map[string]any{
		"date":        "2024-05-01",
		"supplier_id": supplierID,
		"details":     []map[string]any{{"inventory_id": lineID, "amount": 12}},
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.NotEmpty(t, body["number"], "la recepción recibe un número consecutivo")
	assert.Equal(t, "completed", body["status"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/"+lineID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 16, body["quantity"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/"+lineID+"/movements", token, nil)
	require.Equal(t, http.StatusOK, status)
	items, _ := body["items"].([]any)
	assert.Len(t, items, 3, "alta inicial, salida y entrada por recepción")
}

func TestErrores_ValidacionYNoEncontrado(t *testing.T) {
	app := newTestServer(t)
	token := adminToken(t, app)

	status, body := call(t, app, http.MethodPost, "/api/inventory/movement", token, map[string]any{
		"inventory_id": "00000000-0000-0000-0000-000000000009", "kind": "out", "amount": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "amount")

	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movement", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_BODY")

	status, body = call(t, app, http.MethodGet, "/api/inventory/00000000-0000-0000-0000-000000000009", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestExport_DevuelveXLSX(t *testing.T) {
	app := newTestServer(t)
	token := adminToken(t, app)
	categoryID := create(t, app, token, "/api/categories", map[string]any{"name": "Etiquetas", "unit": "hojas"})
	create(t, app, token, "/api/inventory", map[string]any{"category_id": categoryID, "lot_code": "ETQ-01", "quantity": 3})

	req := httptest.NewRequest(http.MethodGet, "/api/inventory/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "un xlsx es un zip")
}

func TestRequestID_SeDevuelveEnCabecera(t *testing.T) {
	app := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}

func TestAuth_PerfilYCambioDePassword(t *testing.T) {
	app := newTestServer(t)
	admin := adminToken(t, app)
	create(t, app, admin, "/api/users", map[string]any{
		"email": "consulta@mezcal.mx", "password": "secreto123", "name": "Consulta", "role": "viewer",
	})
	viewer := login(t, app, "consulta@mezcal.mx", "secreto123")

	status, body := call(t, app, http.MethodPut, "/api/auth/change-password", viewer, map[string]any{
		"current_password": "incorrecta", "new_password": "otro-secreto",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, _ = call(t, app, http.MethodPut, "/api/auth/change-password", viewer, map[string]any{
		"current_password": "secreto123", "new_password": "otro-secreto",
	})
	require.Equal(t, http.StatusOK, status, "cualquier rol cambia su propio password")
	login(t, app, "consulta@mezcal.mx", "otro-secreto")

	status, body = call(t, app, http.MethodPut, "/api/auth/profile", viewer, map[string]any{"email": "admin@mezcal.mx"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "EMAIL_EXISTS", body["code"])

	status, body = call(t, app, http.MethodPut, "/api/auth/profile", viewer, map[string]any{"name": "Consulta Almacén"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Consulta Almacén", body["name"])
}

func TestClientes_Configuracion(t *testing.T) {
	app := newTestServer(t)
	token := adminToken(t, app)

	clientID := create(t, app, token, "/api/clients", map[string]any{"name": "Mezcal Tosba"})
	varietyID := create(t, app, token, "/api/varieties", map[string]any{"name": "Espadín"})
	presentationID := create(t, app, token, "/api/presentations", map[string]any{"volume": "750ml"})

	status, body := call(t, app, http.MethodPut, "/api/clients/"+clientID+"/config", token, map[string]any{
		"varieties":      []string{varietyID},
		"presentations":  []string{presentationID},
		"shipment_types": []string{"Nacional"},
	})
	require.Equal(t, http.StatusOK, status, "PUT config: %v", body)
	assert.Len(t, body["varieties"], 1)
	assert.Equal(t, []any{"Nacional"}, body["shipment_types"])

	status, body = call(t, app, http.MethodPut, "/api/clients/"+clientID+"/types", token, map[string]any{
		"shipment_types": []string{"Nacional", "Exportación"},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Nacional", "Exportación"}, body["shipment_types"])
	assert.Len(t, body["presentations"], 1, "solo cambian los tipos")

	status, body = call(t, app, http.MethodPut, "/api/clients/"+clientID+"/varieties", token, map[string]any{"varieties": []string{"no-es-uuid"}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodPut, "/api/clients/"+clientID+"/presentations", token, map[string]any{"presentations": []string{}})
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["presentations"])

	status, body = call(t, app, http.MethodGet, "/api/clients/"+clientID+"/config", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mezcal Tosba", body["client_name"])
	assert.Len(t, body["varieties"], 1)

	status, all := callList(t, app, "/api/clients/config", token)
	require.Equal(t, http.StatusOK, status, "/config no se confunde con /:id")
	assert.Len(t, all, 1)

	status, body = call(t, app, http.MethodGet, "/api/clients/"+uuid.NewString()+"/config", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}
