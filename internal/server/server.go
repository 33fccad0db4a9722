package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/session"
	"github.com/jonathan/docwriter/internal/template"
)

// Config holds server configuration
type Config struct {
	Port int
}

// Deps carries the wired application services.
type Deps struct {
	Templates *template.Store
	Assembler *report.Assembler
	Exporter  *export.Exporter
	Enhancer  *enhance.Enhancer // nil disables the ai-enhance endpoint
	Sessions  session.Store
	Logger    *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	templates  *template.Store
	assembler  *report.Assembler
	exporter   *export.Exporter
	enhancer   *enhance.Enhancer
	sessions   session.Store
	logger     *zap.Logger
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		templates: deps.Templates,
		assembler: deps.Assembler,
		exporter:  deps.Exporter,
		enhancer:  deps.Enhancer,
		sessions:  deps.Sessions,
		logger:    logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Router returns the HTTP handler, for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Post("/generate-reports", s.handleGenerateReports)

		r.Route("/reports/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Route("/{reportID}", func(r chi.Router) {
				r.Get("/", s.handleGetReport)
				r.Put("/", s.handleUpdateReport)
				r.Get("/preview", s.handlePreview)
				r.Post("/export", s.handleExport)
				r.Post("/ai-enhance", s.handleAIEnhance)
			})
		})
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

// Start runs the server until the context is cancelled or a shutdown signal
// arrives.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
