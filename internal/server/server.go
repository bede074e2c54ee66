// Package server exposes the study tools as a JSON API and hosts the web
// quiz.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abhisek/nckh/internal/assist"
	"github.com/abhisek/nckh/internal/webquiz"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	maxBodyBytes           = 1 << 20
)

// Config holds the listener settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// AllowOrigin, when set, is sent as Access-Control-Allow-Origin.
	AllowOrigin string
}

// DefaultConfig returns the settings used by `nckh serve`.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Server routes API and quiz requests.
type Server struct {
	router  *mux.Router
	handler http.Handler
	quiz    *assist.QuizGenerator
	tools   *assist.Tools
	logger  *slog.Logger
	config  Config
}

// New builds the router. web may be nil to serve the API only.
func New(gen *assist.QuizGenerator, tools *assist.Tools, web *webquiz.Handler, logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router: mux.NewRouter(),
		quiz:   gen,
		tools:  tools,
		logger: logger,
		config: cfg,
	}
	s.routes(web)

	var h http.Handler = s.router
	if cfg.AllowOrigin != "" {
		h = withCORS(cfg.AllowOrigin, h)
	}
	s.handler = requestID(s.recoverer(s.accessLog(h)))
	return s
}

func (s *Server) routes(web *webquiz.Handler) {
	r := s.router

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/quiz", s.handleQuiz).Methods(http.MethodPost)
	api.HandleFunc("/proposal", s.handleProposal).Methods(http.MethodPost)
	api.HandleFunc("/advisor", s.handleAdvisor).Methods(http.MethodPost)
	api.HandleFunc("/grader", s.handleGrader).Methods(http.MethodPost)
	api.HandleFunc("/scenario", s.handleScenario).Methods(http.MethodPost)
	api.HandleFunc("/assistant", s.handleAssistant).Methods(http.MethodPost)
	api.HandleFunc("/ethics_chat", s.handleEthics).Methods(http.MethodPost)
	api.HandleFunc("/chapters", s.handleChapters).Methods(http.MethodGet)
	api.HandleFunc("/chapters/{id}", s.handleChapter).Methods(http.MethodGet)
	api.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	if web != nil {
		web.Register(r)
		r.HandleFunc("/", web.Index).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.config.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.Info("server shutting down")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
