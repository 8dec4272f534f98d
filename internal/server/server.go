package server

import (
	"context"
	"net/http"
	"time"

	"github.com/famfin/famfin-be/internal/auth"
	"github.com/famfin/famfin-be/internal/config"
	"github.com/famfin/famfin-be/internal/http/handlers"
	"github.com/famfin/famfin-be/internal/ledger"
	"github.com/famfin/famfin-be/internal/middleware"
	"github.com/famfin/famfin-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store) *Server {
	mux := http.NewServeMux()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authn := middleware.RequireAuth(tokens)
	ledgerService := ledger.NewService(store, store)

	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(store, store, tokens, &cfg).Register(mux, authn)
	handlers.NewFamilyHandler(ledgerService).Register(mux)
	handlers.NewCategoryHandler(store).Register(mux)
	handlers.NewReminderHandler(store).Register(mux, authn)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
