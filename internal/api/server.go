package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/airworthy/adcheck/internal/auth"
	"github.com/airworthy/adcheck/internal/snapshot"
	"github.com/airworthy/adcheck/internal/store"
	"github.com/airworthy/adcheck/internal/telemetry"
)

type Server struct {
	store       store.Store
	env         string
	adminAPIKey string
	log         zerolog.Logger
}

func NewServer(st store.Store, env, adminKey string, log zerolog.Logger) *Server {
	return &Server{store: st, env: env, adminAPIKey: adminKey, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))
	r.Use(telemetry.Middleware)

	// health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// public: directive snapshot (ETag)
	r.Get("/v1/directives", func(w http.ResponseWriter, req *http.Request) {
		snap := snapshot.Load()
		if inm := req.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("ETag", snap.ETag)
		_ = json.NewEncoder(w).Encode(snap)
	})

	// public: single directive
	r.Get("/v1/directives/{id}", s.handleGetDirective)

	// public: evaluate fleet aircraft against stored directives
	r.Post("/v1/evaluate", s.handleEvaluate)

	// admin (protected): extract a directive from source text
	r.Post("/v1/directives:extract", s.authAdmin(s.handleExtract))

	return r
}

func (s *Server) handleGetDirective(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, err := s.store.GetDirective(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFoundError(w, r, "directive not found: "+id)
			return
		}
		s.log.Error().Err(err).Str("directive_id", id).Msg("directive lookup failed")
		InternalError(w, r, "directive lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// RebuildSnapshot loads all directives and swaps the atomic snapshot.
func (s *Server) RebuildSnapshot(ctx context.Context) error {
	directives, err := s.store.ListDirectives(ctx)
	if err != nil {
		return err
	}
	snapshot.Update(snapshot.Build(directives))
	telemetry.SnapshotDirectives.Set(float64(len(directives)))
	return nil
}

// ---- middleware & helpers ----

func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := auth.ExtractBearerToken(r.Header.Get("Authorization"))
		if got == "" {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}
		if !auth.VerifyAPIKeyConstantTime(got, s.adminAPIKey) {
			ForbiddenError(w, r, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
