package usuario

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/registroapp/usuario-service/internal/domain"
)

/*
Fakes for ports
*/

type fakeRepo struct {
	mu sync.Mutex

	byID    map[int64]domain.Usuario
	byEmail map[string]int64
	nextID  int64

	// injected errors (if set, method returns error)
	listErr       error
	getByIDErr    error
	getByEmailErr error
	saveErr       error
	deleteErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    map[int64]domain.Usuario{},
		byEmail: map[string]int64{},
		nextID:  1,
	}
}

func (f *fakeRepo) seed(u domain.Usuario) domain.Usuario {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	} else if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u
}

func (f *fakeRepo) List(ctx context.Context) ([]domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Usuario, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.Usuario{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.Usuario{}, domain.ErrUsuarioNotFound()
	}
	return u, nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.Usuario{}, f.getByEmailErr
	}
	id, ok := f.byEmail[email]
	if !ok {
		return domain.Usuario{}, domain.ErrUsuarioNotFound()
	}
	return f.byID[id], nil
}

func (f *fakeRepo) Save(ctx context.Context, u domain.Usuario) (domain.Usuario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return domain.Usuario{}, f.saveErr
	}
	if u.ID == 0 {
		u.ID = f.nextID
		f.nextID++
	} else if old, ok := f.byID[u.ID]; ok && old.Email != u.Email {
		delete(f.byEmail, old.Email)
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u.ID
	return u, nil
}

func (f *fakeRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	u, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	delete(f.byID, id)
	delete(f.byEmail, u.Email)
	return true, nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if f.compareFn != nil {
		return f.compareFn(hash, pw)
	}
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []UsuarioRegistradoEvent
	pubErr error
}

func (c *capturePublisher) PublishUsuarioRegistrado(ctx context.Context, evt UsuarioRegistradoEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pubErr != nil {
		return c.pubErr
	}
	c.events = append(c.events, evt)
	return nil
}

func newSvcForTest(t *testing.T) (*Service, *fakeRepo, *fakeHasher, *capturePublisher) {
	t.Helper()

	repo := newFakeRepo()
	hasher := &fakeHasher{}
	pub := &capturePublisher{}
	return NewService(repo, hasher, pub), repo, hasher, pub
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()

	if !domain.Is(err, code) {
		t.Fatalf("expected domain code %q, got %v", code, err)
	}
}
