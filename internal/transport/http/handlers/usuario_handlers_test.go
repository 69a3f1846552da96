package http_handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/registroapp/usuario-service/internal/application/usuario"
	"github.com/registroapp/usuario-service/internal/infrastructure/memory"
	"github.com/registroapp/usuario-service/internal/infrastructure/security"
	"github.com/registroapp/usuario-service/internal/transport/http/router"
)

// newTestServer wires the full HTTP stack over the in-memory store. Bcrypt
// cost 4 keeps the tests fast.
func newTestServer(t *testing.T) (http.Handler, *memory.UsuarioRepo) {
	t.Helper()

	repo := memory.NewUsuarioRepo()
	svc := usuario.NewService(repo, security.NewBcryptHasher(4), memory.NewNoopPublisher())

	h, err := router.New(router.Deps{
		Health:  NewHealthHandler(nil),
		Usuario: NewUsuarioHandler(svc),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return h, repo
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body: %v, body=%q", err, rr.Body.String())
	}
}

func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	decodeBody(t, rr, &m)
	return m.Message
}

// ---------- registro ----------

func TestRegistro_Success_Returns201WithMessage(t *testing.T) {
	h, repo := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/registro",
		`{"nombre":"Ana","apellido":"López","email":"ana@example.com","password":"secret1"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%q", rr.Code, rr.Body.String())
	}
	if got := messageOf(t, rr); got != "Usuario registrado con éxito" {
		t.Fatalf("unexpected message: %q", got)
	}

	// stored hash, not the plaintext
	u, err := repo.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("expected stored user, got %v", err)
	}
	if u.Password == "secret1" || u.Password == "" {
		t.Fatalf("password not hashed: %q", u.Password)
	}
}

func TestRegistro_MissingFields_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/registro",
		`{"nombre":"Ana","email":"ana@example.com","password":"secret1"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "Todos los campos son obligatorios" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRegistro_InvalidEmail_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/registro",
		`{"nombre":"Ana","apellido":"López","email":"no-arroba","password":"secret1"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "El formato de correo electrónico no es válido" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRegistro_DuplicateEmail_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	body := `{"nombre":"Ana","apellido":"López","email":"ana@example.com","password":"secret1"}`
	if rr := doJSON(t, h, http.MethodPost, "/usuario/registro", body); rr.Code != http.StatusCreated {
		t.Fatalf("first registro: expected 201, got %d", rr.Code)
	}

	rr := doJSON(t, h, http.MethodPost, "/usuario/registro", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "El correo ya está registrado" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestRegistro_InvalidJSON_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/registro", `{"nombre":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

// ---------- login ----------

func registerAna(t *testing.T, h http.Handler) {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/usuario/registro",
		`{"nombre":"Ana","apellido":"López","email":"ana@example.com","password":"secret1"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("registro: expected 201, got %d body=%q", rr.Code, rr.Body.String())
	}
}

func TestLogin_Success_ReturnsNombreAndID(t *testing.T) {
	h, _ := newTestServer(t)
	registerAna(t, h)

	rr := doJSON(t, h, http.MethodPost, "/usuario/login",
		`{"email":"ana@example.com","password":"secret1"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%q", rr.Code, rr.Body.String())
	}

	var res struct {
		Message string `json:"message"`
		Nombre  string `json:"nombre"`
		ID      int64  `json:"id"`
	}
	decodeBody(t, rr, &res)

	if res.Message != "Inicio de sesión exitoso" {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if res.Nombre != "Ana" {
		t.Fatalf("expected nombre Ana, got %q", res.Nombre)
	}
	if res.ID == 0 {
		t.Fatalf("expected non-zero id")
	}
}

func TestLogin_WrongPassword_Returns401(t *testing.T) {
	h, _ := newTestServer(t)
	registerAna(t, h)

	rr := doJSON(t, h, http.MethodPost, "/usuario/login",
		`{"email":"ana@example.com","password":"nope"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "Contraseña incorrecta" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestLogin_UnknownEmail_Returns404(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/login",
		`{"email":"nadie@example.com","password":"secret1"}`)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "Usuario no encontrado" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestLogin_MissingCredentials_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/login", `{"email":"","password":""}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if got := messageOf(t, rr); got != "El correo y la contraseña son obligatorios" {
		t.Fatalf("unexpected message: %q", got)
	}
}

// ---------- crud ----------

func TestList_ReturnsViewsWithoutPassword(t *testing.T) {
	h, _ := newTestServer(t)
	registerAna(t, h)

	rr := doJSON(t, h, http.MethodGet, "/usuario", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var views []map[string]any
	decodeBody(t, rr, &views)

	if len(views) != 1 {
		t.Fatalf("expected 1 user, got %d", len(views))
	}
	if views[0]["email"] != "ana@example.com" {
		t.Fatalf("unexpected email: %v", views[0]["email"])
	}
	if _, leaked := views[0]["password"]; leaked {
		t.Fatalf("password leaked in list payload")
	}
}

func TestCreate_Returns201View(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario",
		`{"nombre":"Beto","apellido":"Mora","email":"beto@example.com","password":"x"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%q", rr.Code, rr.Body.String())
	}

	var view map[string]any
	decodeBody(t, rr, &view)
	if view["id"] == float64(0) {
		t.Fatalf("expected assigned id, got %v", view["id"])
	}
}

func TestCreate_InvalidEmail_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario",
		`{"nombre":"Beto","apellido":"Mora","email":"beto@","password":"x"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestCreateBatch_SavesAllInOrder(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/batch",
		`[{"nombre":"A","apellido":"X","email":"a@example.com","password":"1"},
		  {"nombre":"B","apellido":"Y","email":"b@example.com","password":"2"}]`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%q", rr.Code, rr.Body.String())
	}

	var views []map[string]any
	decodeBody(t, rr, &views)
	if len(views) != 2 {
		t.Fatalf("expected 2 users, got %d", len(views))
	}
	if views[0]["email"] != "a@example.com" || views[1]["email"] != "b@example.com" {
		t.Fatalf("unexpected order: %+v", views)
	}
}

func TestCreateBatch_InvalidItem_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/usuario/batch",
		`[{"nombre":"A","apellido":"X","email":"bad-email","password":"1"}]`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestGetByID_Absent_Returns200Null(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/usuario/999", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "null" {
		t.Fatalf("expected null body, got %q", rr.Body.String())
	}
}

func TestGetByID_Present_ReturnsView(t *testing.T) {
	h, _ := newTestServer(t)
	registerAna(t, h)

	rr := doJSON(t, h, http.MethodGet, "/usuario/1", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var view map[string]any
	decodeBody(t, rr, &view)
	if view["nombre"] != "Ana" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestGetByID_NonNumeric_Returns400(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/usuario/abc", "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestDelete_TwiceReportsPlainText(t *testing.T) {
	h, _ := newTestServer(t)
	registerAna(t, h)

	rr := doJSON(t, h, http.MethodDelete, "/usuario/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "Se eliminó el usuario con id 1" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected plain text, got %q", ct)
	}

	rr = doJSON(t, h, http.MethodDelete, "/usuario/1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "No pudo eliminar el usuario con id 1" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}
