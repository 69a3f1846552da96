package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/registroapp/usuario-service/internal/metrics"
	"github.com/registroapp/usuario-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type UsuarioHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	CreateBatch(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Registro(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Usuario UsuarioHandler

	// CORSOrigins is the allow list; empty means any origin.
	CORSOrigins []string
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Usuario == nil {
		return nil, fmt.Errorf("nil Usuario handler")
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.HTTPLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.Metrics())

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/usuario", func(r chi.Router) {
		r.Get("/", deps.Usuario.List)
		r.Post("/", deps.Usuario.Create)
		r.Post("/batch", deps.Usuario.CreateBatch)
		r.Get("/{id}", deps.Usuario.GetByID)
		r.Delete("/{id}", deps.Usuario.Delete)

		r.Post("/registro", deps.Usuario.Registro)
		r.Post("/login", deps.Usuario.Login)
	})

	return r, nil
}
