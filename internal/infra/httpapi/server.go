package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"voxlate/internal/application"
	"voxlate/internal/domain"
)

type Options struct {
	Addr           string
	AuthToken      string
	RateLimit      int
	AllowedOrigins []string
	// UploadDir receives multipart uploads for the lifetime of a request.
	UploadDir string

	Translation    domain.Catalog
	Speech         domain.Catalog
	Source         string
	Target         string
	Speak          string
	DocumentSource string
}

// Server exposes the screens over HTTP. Every request drives a fresh screen
// bound to the request context, so a client disconnect cancels the chain.
type Server struct {
	services application.Services
	opts     Options
	logger   *slog.Logger

	mu      sync.Mutex
	server  *http.Server
	running bool
	router  chi.Router
}

func NewServer(svc application.Services, opts Options, logger *slog.Logger) *Server {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 30
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		services: svc,
		opts:     opts,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Auth-Token"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	// No rate limiting or auth on health check
	r.Get("/health", s.handleHealth)

	r.Group(func(pr chi.Router) {
		pr.Use(httprate.LimitByIP(s.opts.RateLimit, time.Minute))
		pr.Use(s.requireToken)

		pr.Get("/languages", s.handleLanguages)
		pr.Post("/translate", s.handleTranslate)
		pr.Post("/speech", s.handleSpeech)
		pr.Post("/transcribe", s.handleTranscribe)
		pr.Post("/extract", s.handleExtract)
		pr.Post("/export", s.handleExport)
	})

	return r
}

func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Info("HTTP API starting", "addr", s.opts.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Warn("graceful shutdown failed, forcing close", "error", err)
			if err := s.server.Close(); err != nil {
				return fmt.Errorf("closing server: %w", err)
			}
		}
	}

	s.running = false
	return nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AuthToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Check header first, then query parameter
		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		if token != s.opts.AuthToken {
			s.logger.Warn("unauthorized request", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
