package postgres

import "github.com/registroapp/usuario-service/internal/domain"

type usuarioRow struct {
	ID       int64
	Nombre   string
	Apellido string
	Email    string
	Password string
}

func toDomain(r usuarioRow) domain.Usuario {
	return domain.Usuario{
		ID:       r.ID,
		Nombre:   r.Nombre,
		Apellido: r.Apellido,
		Email:    r.Email,
		Password: r.Password,
	}
}
