package usuario

import (
	"context"
	"strings"

	"github.com/registroapp/usuario-service/internal/domain"
)

// LoginResult is the minimal success payload: display name and identifier,
// never the password or its hash.
type LoginResult struct {
	ID     int64
	Nombre string
}

// Login verifies the supplied password against the stored hash. Unknown
// email and wrong password are distinct outcomes on this surface (404 vs
// 401); that distinction is part of the legacy wire contract.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return LoginResult{}, domain.ErrCredencialesObligatorias()
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.Password, password); err != nil {
		return LoginResult{}, domain.ErrContrasenaIncorrecta()
	}

	return LoginResult{ID: u.ID, Nombre: u.Nombre}, nil
}
