// Package httpserver exposes the request router over local HTTP for the
// extension and other local clients.
package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"tbo-go/internal/config"
	"tbo-go/internal/dispatch"
	"tbo-go/internal/model"
	"tbo-go/internal/tbo"
)

// RequestTimeout bounds a single request, export downloads included.
const RequestTimeout = 30 * time.Second

// MaxBodyBytes caps a dispatch message. Imports carry the whole store.
const MaxBodyBytes = 64 << 20

// Exporter produces the download formats.
type Exporter interface {
	ExportToJSON(ctx context.Context) (*model.Snapshot, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Dispatcher *dispatch.Dispatcher
	Store      Exporter
	Clock      tbo.Clock
	Logger     tbo.Logger
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger tbo.Logger
}

// NewRouter builds the chi router with middleware and routes mounted.
func NewRouter(cfg config.ServerConfig, d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))
	r.Use(accessLog(d.Logger))

	r.Get("/healthz", healthz)
	r.Route("/api", func(r chi.Router) {
		r.Post("/dispatch", dispatchHandler(d))
		r.Get("/export.json", exportJSON(d))
		r.Get("/export.csv", exportCSV(d))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	return c.Handler(r)
}

// New builds the HTTP server for cfg.ListenAddr.
func New(cfg config.ServerConfig, d Deps) *Server {
	addr := cfg.ListenAddr
	if addr == "" {
		addr = config.DefaultListenAddr
	}

	s := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg, d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       RequestTimeout,
		WriteTimeout:      RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{http: s, logger: d.Logger}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start runs the server until it fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server within ctx's deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}
