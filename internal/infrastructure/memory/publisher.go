package memory

import (
	"context"

	"github.com/registroapp/usuario-service/internal/application/usuario"
	"github.com/registroapp/usuario-service/internal/logger"
)

// NoopPublisher stands in when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUsuarioRegistrado(ctx context.Context, evt usuario.UsuarioRegistradoEvent) error {
	logger.WithCtx(ctx).Debug().
		Int64("usuario_id", evt.ID).
		Str("email", evt.Email).
		Msg("noop publish usuario.registrado")
	return nil
}
