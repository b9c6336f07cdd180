// Package server exposes a game over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xraph/inject"
	"github.com/xraph/inject/game"
)

// Roster is the part of a game the server drives.
type Roster interface {
	CreateCharacter(name string) game.Response[*game.Character]
	Characters() game.Response[[]*game.Character]
}

// Server routes HTTP requests to a Roster.
type Server struct {
	roster   Roster
	registry *inject.Registry
	logger   *zap.Logger
	mux      chi.Router
}

// New creates a server for roster. The registry, when not nil, is served
// read-only at GET /registry.
func New(roster Roster, registry *inject.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		roster:   roster,
		registry: registry,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/registry", s.specifications)
	r.Route("/characters", func(r chi.Router) {
		r.Get("/", s.listCharacters)
		r.Post("/", s.createCharacter)
	})

	s.mux = r

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", zap.String("address", addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("server shutting down")

	return srv.Shutdown(shutdownCtx)
}

type createRequest struct {
	Name string `json:"name"`
}

func (s *Server) createCharacter(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, game.Response[*game.Character]{Error: "invalid request body"})
		return
	}

	resp := s.roster.CreateCharacter(req.Name)
	if !resp.Success {
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) listCharacters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.roster.Characters())
}

func (s *Server) specifications(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeJSON(w, http.StatusNotFound, game.Response[[]inject.SpecInfo]{Error: "registry not exposed"})
		return
	}

	var query inject.SpecQuery

	if name := r.URL.Query().Get("scope"); name != "" {
		scope, err := inject.ParseScope(name)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, game.Response[[]inject.SpecInfo]{Error: err.Error()})
			return
		}

		query.Scope = scope
	}

	infos := inject.Query(s.registry, query)
	if infos == nil {
		infos = []inject.SpecInfo{}
	}

	writeJSON(w, http.StatusOK, game.Response[[]inject.SpecInfo]{Success: true, Result: infos})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
