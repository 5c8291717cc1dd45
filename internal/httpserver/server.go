// internal/httpserver/server.go
//
// HTTP server wiring for the REddle backend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, request log, CORS).
//   - HTML game page: GET /, form posts under /play/*.
//   - JSON game API: POST /game/new, /game/answer, /game/giveup; GET /game/state.
//   - Live state push: GET /game/ws.
//   - Word of the day: GET /daily, POST /daily/new.
//   - Diagnostics: /health, /metrics, /debug/words, /api.
//
// Notes:
//   - Each session owns one game, identified by the "sid" claim of a signed
//     token carried in a cookie or an Authorization: Bearer header.
//   - Requests on one session are serialized; every operation loads the game
//     from the store, mutates it and saves it back.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/reddle/assets"
	"github.com/robalobadob/reddle/internal/config"
	"github.com/robalobadob/reddle/internal/store"
	"github.com/robalobadob/reddle/internal/words"
)

// Server bundles router, session store, word list and live-update hub.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	words *words.List
	tmpl  *template.Template
	hub   *hub
	locks sessionLocks
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, st store.Store, wl *words.List) (*Server, error) {
	tmpl, err := assets.Templates(templateFuncs)
	if err != nil {
		return nil, err
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = 10 * time.Second
	}
	if cfg.SessionDays <= 0 {
		cfg.SessionDays = 14
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("httpserver: empty JWT secret")
	}
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		words: wl,
		tmpl:  tmpl,
		hub:   newHub(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.corsFromConfig)

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "reddle",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/answer", "POST /game/giveup", "GET /game/state", "GET /game/ws", "GET /daily", "POST /daily/new"},
		})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"words": s.words.Len()})
	})
	s.r.Handle("/metrics", promhttp.Handler())

	// HTML page + form posts
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.HandlerTimeout))
		r.Get("/", s.handlePage)
		r.Post("/play/new", s.handlePlayNew)
		r.Post("/play/answer", s.handlePlayAnswer)
		r.Post("/play/giveup", s.handlePlayGiveUp)
	})

	// JSON API
	s.r.Route("/game", func(r chi.Router) {
		r.Get("/ws", s.handleWS) // long-lived, no timeout
		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(cfg.HandlerTimeout))
			r.Use(jsonContentType)
			r.Post("/new", s.handleNewGame)
			r.Post("/answer", s.handleAnswer)
			r.Post("/giveup", s.handleGiveUp)
			r.Get("/state", s.handleState)
		})
	})

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.HandlerTimeout))
		s.mountDaily(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.hub.closeAll()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromConfig enables credentialed CORS for the configured client origin.
func (s *Server) corsFromConfig(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with status and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
