// Package server exposes a model over a read-only HTTP API. The model can be
// swapped at runtime; every swap clears the response cache and is announced
// to websocket clients on /events.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/conduit-lang/metamodel/internal/dsl"
	"github.com/conduit-lang/metamodel/internal/server/cache"
	"github.com/conduit-lang/metamodel/internal/server/events"
	"github.com/conduit-lang/metamodel/internal/server/middleware"
	"github.com/conduit-lang/metamodel/pkg/metamodel"
	mmerrors "github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Config holds server configuration
type Config struct {
	// Addr is the listen address (e.g., "localhost:8089")
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// File is the definition the model was loaded from. Reload and Watch
	// need it; a server without a file serves its initial model only.
	File  string
	Watch bool

	// Cache stores rendered GET responses for CacheTTL. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	// Tokens enables bearer authentication on everything but /healthz
	Tokens *middleware.Tokens
}

// Server serves one model at a time
type Server struct {
	config Config
	logger *zap.Logger

	mu    sync.RWMutex
	model *metamodel.Model
	files []string

	hub     *events.Hub
	watcher *events.Watcher
	handler http.Handler
	http    *http.Server
}

// New creates a server for model
func New(model *metamodel.Model, config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config: config,
		logger: logger,
		model:  model,
		hub:    events.NewHub(logger),
	}
	if config.File != "" {
		s.files = []string{config.File}
	}
	s.handler = s.routes()
	s.http = &http.Server{
		Addr:              config.Addr,
		Handler:           s.handler,
		ReadTimeout:       config.ReadTimeout,
		WriteTimeout:      config.WriteTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Model returns the model currently served
func (s *Server) Model() *metamodel.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(s.logger, "/healthz"))
	r.Use(middleware.Recovery(s.logger))
	if s.config.Tokens != nil {
		r.Use(middleware.Auth(s.config.Tokens, "/healthz"))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/events", s.hub.ServeHTTP)
	r.Post("/reload", s.handleReload)

	r.Group(func(r chi.Router) {
		r.Use(cache.Middleware(s.config.Cache, s.config.CacheTTL, s.logger))

		r.Get("/model", s.handleModel)
		r.Get("/classifiers", s.handleClassifiers)
		r.Get("/classifiers/{name}", s.handleClassifier)
		r.Get("/classifiers/{name}/path", s.handlePath)
		r.Get("/objects", s.handleObjects)
		r.Get("/objects/{name}", s.handleObject)
		r.Get("/associations", s.handleAssociations)
		r.Get("/associations/{name}", s.handleAssociation)
		r.Get("/find/{name}", s.handleFind)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), nil)
	})
	return r
}

// Reload loads the definition file again and swaps the served model. On
// failure the current model stays in place and the error is returned.
func (s *Server) Reload(ctx context.Context) error {
	if s.config.File == "" {
		return errors.New("server has no definition file to reload")
	}
	start := time.Now()

	builder := dsl.NewBuilder(s.logger)
	model, err := builder.LoadFile(s.config.File)
	if err != nil {
		code := ""
		if me, ok := mmerrors.As(err); ok {
			code = string(me.Code)
		}
		s.logger.Warn("reload failed", zap.String("file", s.config.File), zap.Error(err))
		s.hub.NotifyError([]string{s.config.File}, err, code)
		return err
	}

	s.Swap(ctx, model, builder.Files())
	if s.watcher != nil {
		if err := s.watcher.SetFiles(builder.Files()); err != nil {
			s.logger.Warn("failed to update watched files", zap.Error(err))
		}
	}
	s.hub.NotifyReloaded(model.Name(), builder.Files(), time.Since(start))
	return nil
}

// Swap replaces the served model and clears the response cache
func (s *Server) Swap(ctx context.Context, model *metamodel.Model, files []string) {
	s.mu.Lock()
	s.model = model
	if len(files) > 0 {
		s.files = files
	}
	s.mu.Unlock()

	if s.config.Cache != nil {
		if err := s.config.Cache.Clear(ctx); err != nil {
			s.logger.Warn("failed to clear response cache", zap.Error(err))
		}
	}
	s.logger.Info("model swapped", zap.String("model", model.Name()))
}

// Watch reloads the model whenever one of its definition files changes.
// files are the paths to watch; empty means the configured file. Every
// successful reload replaces the watched set with the files it read.
func (s *Server) Watch(files []string) error {
	if len(files) == 0 {
		s.mu.RLock()
		files = s.files
		s.mu.RUnlock()
	}
	if len(files) == 0 {
		return errors.New("server has no definition file to watch")
	}

	w, err := events.NewWatcher(files, events.DefaultDebounce, func(changed []string) {
		s.logger.Info("definition changed, reloading", zap.Strings("files", changed))
		s.Reload(context.Background())
	}, s.logger)
	if err != nil {
		return err
	}
	s.watcher = w
	w.Start()
	return nil
}

// ListenAndServe serves until Shutdown is called
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln, starting the watcher first when configured
func (s *Server) Serve(ln net.Listener) error {
	if s.config.Watch && s.watcher == nil {
		if err := s.Watch(nil); err != nil {
			ln.Close()
			return err
		}
	}
	s.logger.Info("serving model",
		zap.String("addr", ln.Addr().String()),
		zap.String("model", s.Model().Name()),
		zap.Bool("watch", s.watcher != nil),
		zap.Bool("auth", s.config.Tokens != nil),
	)
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the watcher, disconnects event clients and drains requests
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("failed to stop watcher", zap.Error(err))
		}
	}
	s.hub.Close()
	err := s.http.Shutdown(ctx)
	if s.config.Cache != nil {
		s.config.Cache.Close()
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(v)
}

type errorResponse struct {
	Error       string   `json:"error"`
	Code        string   `json:"code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func writeError(w http.ResponseWriter, status int, message string, suggestions []string) {
	writeJSON(w, status, errorResponse{Error: message, Suggestions: suggestions})
}
