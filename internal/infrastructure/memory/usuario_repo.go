package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/registroapp/usuario-service/internal/domain"
)

// UsuarioRepo is an in-memory store used by tests and local wiring. It
// mirrors the postgres adapter's contract, including email normalization.
type UsuarioRepo struct {
	mu      sync.RWMutex
	byID    map[int64]domain.Usuario
	byEmail map[string]int64
	nextID  int64
}

func NewUsuarioRepo() *UsuarioRepo {
	return &UsuarioRepo{
		byID:    make(map[int64]domain.Usuario),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UsuarioRepo) List(ctx context.Context) ([]domain.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Usuario, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (domain.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.Usuario{}, domain.ErrUsuarioNotFound()
	}
	return u, nil
}

func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return domain.Usuario{}, domain.ErrUsuarioNotFound()
	}
	return r.byID[id], nil
}

func (r *UsuarioRepo) Save(ctx context.Context, u domain.Usuario) (domain.Usuario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.Email = normalizeEmail(u.Email)

	if owner, ok := r.byEmail[u.Email]; ok && owner != u.ID {
		return domain.Usuario{}, domain.ErrCorreoRegistrado()
	}

	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else {
		if old, ok := r.byID[u.ID]; ok && old.Email != u.Email {
			delete(r.byEmail, old.Email)
		}
		if u.ID >= r.nextID {
			r.nextID = u.ID + 1
		}
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UsuarioRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return true, nil
}
