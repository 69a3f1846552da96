package dto

import "github.com/registroapp/usuario-service/internal/domain"

// UsuarioView is the standard account payload. The password hash never
// leaves the service.
type UsuarioView struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
}

func NewUsuarioView(u domain.Usuario) UsuarioView {
	return UsuarioView{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
	}
}

func NewUsuarioViews(us []domain.Usuario) []UsuarioView {
	out := make([]UsuarioView, 0, len(us))
	for _, u := range us {
		out = append(out, NewUsuarioView(u))
	}
	return out
}

// LoginResponse is the legacy login payload: the message plus the first
// name and identifier of the account.
type LoginResponse struct {
	Message string `json:"message"`
	Nombre  string `json:"nombre"`
	ID      int64  `json:"id"`
}
