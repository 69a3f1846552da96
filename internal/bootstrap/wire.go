package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/registroapp/usuario-service/internal/application/usuario"
	"github.com/registroapp/usuario-service/internal/config"
	"github.com/registroapp/usuario-service/internal/infrastructure/db/postgres"
	"github.com/registroapp/usuario-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/registroapp/usuario-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/registroapp/usuario-service/internal/infrastructure/security"
	"github.com/registroapp/usuario-service/internal/logger"
	http_handlers "github.com/registroapp/usuario-service/internal/transport/http/handlers"
	"github.com/registroapp/usuario-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewPublisher func(rabbitURL string) (usuario.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) repo
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	repo := postgres.NewUsuarioRepo(sqlDB)

	// 3) publisher (best-effort: registration events are advisory)
	var pub usuario.EventPublisher
	if cfg.RabbitURL == "" {
		pub = memory.NewNoopPublisher()
	} else {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
			if c, ok := p.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// 5) service
	svc := usuario.NewService(repo, hasher, pub)

	// 6) handlers
	usuarioH := http_handlers.NewUsuarioHandler(svc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Usuario:     usuarioH,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewPublisher: func(url string) (usuario.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
