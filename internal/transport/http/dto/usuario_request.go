package dto

import (
	"strings"

	"github.com/registroapp/usuario-service/internal/domain"
)

// UsuarioRequest carries an account payload for create, batch and register.
// Field-level validation lives in the service; Validate only rejects payloads
// with every field blank, which always means a malformed client call.
type UsuarioRequest struct {
	ID       int64  `json:"id,omitempty"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *UsuarioRequest) ToDomain() domain.Usuario {
	return domain.Usuario{
		ID:       r.ID,
		Nombre:   strings.TrimSpace(r.Nombre),
		Apellido: strings.TrimSpace(r.Apellido),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return domain.ErrCredencialesObligatorias()
	}
	return nil
}
