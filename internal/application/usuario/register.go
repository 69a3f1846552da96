package usuario

import (
	"context"
	"strings"

	"github.com/registroapp/usuario-service/internal/domain"
	"github.com/registroapp/usuario-service/internal/logger"
)

// Register creates an account from self-service sign-up: every field is
// required, the email must pass the legacy pattern and be unused, and the
// password is stored only as a bcrypt hash.
func (s *Service) Register(ctx context.Context, u domain.Usuario) (domain.Usuario, error) {
	u.Nombre = strings.TrimSpace(u.Nombre)
	u.Apellido = strings.TrimSpace(u.Apellido)
	u.Email = strings.TrimSpace(u.Email)

	if u.Nombre == "" || u.Apellido == "" || u.Email == "" || strings.TrimSpace(u.Password) == "" {
		return domain.Usuario{}, domain.ErrCamposObligatorios()
	}

	hash, err := s.hasher.Hash(u.Password)
	if err != nil {
		return domain.Usuario{}, domain.ErrHashFailed(err)
	}
	u.Password = hash
	u.ID = 0 // registration always creates

	created, err := s.Save(ctx, u)
	if err != nil {
		return domain.Usuario{}, err
	}

	if s.pub != nil {
		evt := UsuarioRegistradoEvent{ID: created.ID, Email: created.Email}
		if err := s.pub.PublishUsuarioRegistrado(ctx, evt); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Int64("usuario_id", created.ID).
				Msg("registro_event_publish_failed")
		}
	}

	return created, nil
}
