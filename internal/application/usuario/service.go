package usuario

import (
	"context"
	"strings"

	"github.com/registroapp/usuario-service/internal/domain"
	"github.com/registroapp/usuario-service/internal/logger"
)

// Service is the business-rule layer over the store. It holds no per-request
// state; the repo is the only shared resource.
type Service struct {
	repo   UsuarioRepo
	hasher PasswordHasher
	pub    EventPublisher
}

func NewService(repo UsuarioRepo, hasher PasswordHasher, pub EventPublisher) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		pub:    pub,
	}
}

// validateForSave is the single validation boundary every creation path goes
// through: email format plus uniqueness. Uniqueness tolerates the record
// itself so update-by-id saves don't conflict with their own row.
func (s *Service) validateForSave(ctx context.Context, u domain.Usuario) error {
	if !domain.EmailValido(strings.TrimSpace(u.Email)) {
		return domain.ErrFormatoCorreo()
	}

	existing, err := s.repo.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		if u.ID == 0 || existing.ID != u.ID {
			return domain.ErrCorreoRegistrado()
		}
	case domain.Is(err, "user_not_found"):
		// free to use
	default:
		return err
	}
	return nil
}

// Save persists an account (insert when ID is zero, update otherwise) after
// running it through the validation boundary.
func (s *Service) Save(ctx context.Context, u domain.Usuario) (domain.Usuario, error) {
	u.Email = strings.TrimSpace(u.Email)
	if err := s.validateForSave(ctx, u); err != nil {
		return domain.Usuario{}, err
	}
	return s.repo.Save(ctx, u)
}

// SaveBatch persists the accounts in order through the same validated path.
// The first failure aborts the batch.
func (s *Service) SaveBatch(ctx context.Context, us []domain.Usuario) ([]domain.Usuario, error) {
	saved := make([]domain.Usuario, 0, len(us))
	for _, u := range us {
		created, err := s.Save(ctx, u)
		if err != nil {
			return nil, err
		}
		saved = append(saved, created)
	}
	return saved, nil
}

// List returns every account, unfiltered.
func (s *Service) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Usuario, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(email))
}

// EmailExists reports whether an account with the given email exists.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if domain.Is(err, "user_not_found") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete removes the account. Fail-soft: store errors are logged and
// reported as false, never propagated.
func (s *Service) Delete(ctx context.Context, id int64) bool {
	existed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn().Err(err).Int64("usuario_id", id).Msg("delete_failed")
		return false
	}
	return existed
}
