package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/chronoguard/chronoguard/internal/config"
	"github.com/chronoguard/chronoguard/internal/database"
	"github.com/chronoguard/chronoguard/internal/reporter"
)

// Server exposes the report API for local clients (extension popup,
// dashboards). Read-only: every endpoint is a projection over the
// event store.
type Server struct {
	config  *config.Config
	handler *Handler
	server  *http.Server
}

func NewServer(cfg *config.Config, repo *database.Repository, rep *reporter.Reporter) *Server {
	handler := NewHandler(repo, rep)
	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server:  httpServer,
	}
}

func (s *Server) Start() error {
	log.Printf("Starting report API on http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down report API...")
	return s.server.Shutdown(ctx)
}

func (s *Server) GetAddress() string {
	return s.server.Addr
}
