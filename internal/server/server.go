// Package server wires the application together: it owns the router, the
// database connection, and the dependency graph, and runs the HTTP server
// with graceful shutdown.
//
// This is the composition root — every constructor in the repo is called
// from here (or from main), so the layering is visible in one place:
//
//	sqlite.DB → AuthService/JobService → AuthHandler/JobHandler → routes
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/jobtracker/internal/auth"
	"github.com/sakif/jobtracker/internal/handler"
	"github.com/sakif/jobtracker/internal/middleware"
	sqliteRepo "github.com/sakif/jobtracker/internal/repository/sqlite"
	"github.com/sakif/jobtracker/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
}

// Server owns the router and the database connection. The DB is closed
// during shutdown, after in-flight requests have drained.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph. A bad JWT secret or an unopenable
// database fails here — construction, not first request — so main can abort
// startup instead of serving a broken process.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("configuring token service: %w", err)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes registers middleware and routes.
//
//	POST   /register     public
//	POST   /login        public
//	POST   /jobs         bearer token required
//	GET    /jobs         bearer token required
//	GET    /jobs/{id}    bearer token required
//	PATCH  /jobs/{id}    bearer token required
//	DELETE /jobs/{id}    bearer token required
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)

	jobService := service.NewJobService(s.db, s.logger)
	jobHandler := handler.NewJobHandler(jobService, s.logger)

	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)

	// RequireAuth guards the whole group; no /jobs handler runs without a
	// verified identity in the context.
	s.router.Route("/jobs", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Post("/", jobHandler.HandleCreate)
		r.Get("/", jobHandler.HandleList)
		r.Get("/{id}", jobHandler.HandleGet)
		r.Patch("/{id}", jobHandler.HandleUpdate)
		r.Delete("/{id}", jobHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database last (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
