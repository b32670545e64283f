// Package server exposes an inspection tree over HTTP.
//
// The server follows the fragment protocol used by the HTML renderer:
// GET / returns a page containing the root node's header, and each
// expandable node fetches its children lazily from GET /node/{id}.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/objscope/objscope/pkg/errors"
	"github.com/objscope/objscope/pkg/inspect"
	"github.com/objscope/objscope/pkg/observability"
)

// Server serves an inspection tree as expandable HTML fragments.
type Server struct {
	cfg     Config
	logger  *log.Logger
	reg     *inspect.Registry
	factory *inspect.Factory
	root    *inspect.Node
}

// New creates a Server with its own registry and factory derived from cfg.
// A nil logger falls back to the default logger.
func New(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	var regOpts []inspect.RegistryOption
	if cfg.Capacity > 0 {
		regOpts = append(regOpts, inspect.WithCapacity(cfg.Capacity))
	}
	reg := inspect.NewRegistry(regOpts...)

	var facOpts []inspect.FactoryOption
	if cfg.MaxDepth > 0 {
		facOpts = append(facOpts, inspect.WithMaxDepth(cfg.MaxDepth))
	}

	return &Server{
		cfg:     cfg,
		logger:  logger,
		reg:     reg,
		factory: inspect.NewFactory(reg, facOpts...),
	}
}

// SetRoot builds the inspection tree for v and serves it at GET /.
func (s *Server) SetRoot(v any) error {
	root, err := s.factory.New(v)
	if err != nil {
		return err
	}
	s.root = root
	return nil
}

// Root returns the currently served root node, or nil before SetRoot.
func (s *Server) Root() *inspect.Node { return s.root }

// Handler returns the HTTP handler for the fragment protocol.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)

	r.Get("/", s.handleIndex)
	r.Get("/node/{id}", s.handleNode)
	r.Get("/healthz", s.handleHealth)

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.root == nil {
		http.Error(w, "no root object configured", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, renderPage(s.root))
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	n, err := s.reg.Lookup(id)
	if err != nil {
		s.logger.Debug("lookup failed", "id", id, "err", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "%s: %s\n", errors.GetCode(err), errors.UserMessage(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, n.InnerHTML())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// instrument logs each request and forwards timing to the HTTP hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", elapsed,
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
