package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/registroapp/usuario-service/internal/application/usuario"
	"github.com/registroapp/usuario-service/internal/domain"
	"github.com/registroapp/usuario-service/internal/logger"
	"github.com/registroapp/usuario-service/internal/metrics"
	"github.com/registroapp/usuario-service/internal/transport/http/dto"
	"github.com/registroapp/usuario-service/internal/transport/http/response"
)

type UsuarioHandler struct {
	svc *usuario.Service
}

func NewUsuarioHandler(svc *usuario.Service) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

// List handles GET /usuario
func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	us, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewUsuarioViews(us))
}

// Create handles POST /usuario
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UsuarioRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	saved, err := h.svc.Save(r.Context(), req.ToDomain())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.NewUsuarioView(saved))
}

// CreateBatch handles POST /usuario/batch
func (h *UsuarioHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.UsuarioRequest
	if err := response.DecodeJSON(r, &reqs); err != nil {
		response.WriteError(w, r, err)
		return
	}

	us := make([]domain.Usuario, 0, len(reqs))
	for i := range reqs {
		us = append(us, reqs[i].ToDomain())
	}

	saved, err := h.svc.SaveBatch(r.Context(), us)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUsuarioViews(saved))
}

// GetByID handles GET /usuario/{id}. A missing account answers 200 with a
// JSON null body; legacy clients distinguish absence by the null, not 404.
func (h *UsuarioHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			response.OK(w, nil)
			return
		}
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUsuarioView(u))
}

// Delete handles DELETE /usuario/{id}. The legacy contract answers 200 with
// a plain text sentence whether or not the account existed.
func (h *UsuarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if h.svc.Delete(r.Context(), id) {
		response.WriteText(w, http.StatusOK, "Se eliminó el usuario con id %d", id)
		return
	}
	response.WriteText(w, http.StatusOK, "No pudo eliminar el usuario con id %d", id)
}

// Registro handles POST /usuario/registro
func (h *UsuarioHandler) Registro(w http.ResponseWriter, r *http.Request) {
	var req dto.UsuarioRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	created, err := h.svc.Register(r.Context(), req.ToDomain())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordRegistro()
	logger.WithCtx(r.Context()).Info().
		Int64("usuario_id", created.ID).
		Str("email", created.Email).
		Msg("usuario_registrado")

	response.Created(w, response.Message{Message: "Usuario registrado con éxito"})
}

// Login handles POST /usuario/login
func (h *UsuarioHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if domain.Is(err, "wrong_password") || domain.Is(err, "user_not_found") {
			metrics.RecordLoginFailed()
		}
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordLogin()
	logger.WithCtx(r.Context()).Info().
		Int64("usuario_id", res.ID).
		Msg("inicio_de_sesion")

	response.OK(w, dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Nombre:  res.Nombre,
		ID:      res.ID,
	})
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrIDInvalido()
	}
	return id, nil
}
