package usuario

import (
	"context"

	"github.com/registroapp/usuario-service/internal/domain"
)

/*
UsuarioRepo
-----------
Persistence port for accounts.
Only describes WHAT the service needs, not HOW it's stored.
*/
type UsuarioRepo interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	GetByID(ctx context.Context, id int64) (domain.Usuario, error)
	GetByEmail(ctx context.Context, email string) (domain.Usuario, error)

	// Save inserts when u.ID == 0 and updates the matching row otherwise.
	// It returns the persisted record with the identifier populated.
	Save(ctx context.Context, u domain.Usuario) (domain.Usuario, error)

	// DeleteByID reports whether a record existed.
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2. One instance is wired at startup and shared by
registration and login; there is no plaintext comparison path.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
EventPublisher
--------------
Publishes account lifecycle events. Best effort: a publish failure never
fails the request that produced it.
*/
type EventPublisher interface {
	PublishUsuarioRegistrado(ctx context.Context, evt UsuarioRegistradoEvent) error
}

type UsuarioRegistradoEvent struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
