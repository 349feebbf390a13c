// internal/httpserver/server.go
//
// HTTP server wiring for the game-session backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/state", "/leaderboard".
//   - Game endpoints (optional auth): POST /game/start, POST /game/guess, GET /game/events.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Every game request is a message submitted through the actor runner; the
//     handler waits for the coordinator's answer within the request deadline.
//   - Guests play under an anonymous cookie identity; their rounds are moved
//     to the account on signup/login.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/coordinator"
	"github.com/robalobadob/wordle/apps/game-session/internal/history"
)

// Config holds the HTTP-facing settings.
type Config struct {
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	SecureCookies  bool
	ClientOrigin   string
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.JWTSecret == "" {
		c.JWTSecret = "dev_secret_change_me"
	}
	if c.JWTExpiresDays <= 0 {
		c.JWTExpiresDays = 14
	}
	if c.CookieName == "" {
		c.CookieName = "wordle_token"
	}
	if c.ClientOrigin == "" {
		c.ClientOrigin = "http://localhost:5173"
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	return c
}

// Deps are the collaborators the handlers talk to.
type Deps struct {
	Runner        *actor.Runner
	Coordinator   *coordinator.Coordinator
	CoordinatorID actor.ID
	DB            *sql.DB
	History       *history.Store
}

// Server bundles router, actor runner and DB handle.
type Server struct {
	r       *chi.Mux
	cfg     Config
	runner  *actor.Runner
	coord   *coordinator.Coordinator
	coordID actor.ID
	db      *sql.DB
	history *history.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, d Deps) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		cfg:     cfg.withDefaults(),
		runner:  d.Runner,
		coord:   d.Coordinator,
		coordID: d.CoordinatorID,
		db:      d.DB,
		history: d.History,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                     // add X-Request-ID
	s.r.Use(chimw.RealIP)                        // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                     // recover from panics
	s.r.Use(chimw.Timeout(s.cfg.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                     // default JSON responses
	s.r.Use(cors(s.cfg.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"game-session","endpoints":["/health","/state","POST /game/start","POST /game/guess","GET /game/events","/leaderboard","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/state", s.handleState)
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// Game endpoints, optional auth (guests can play)
	s.r.Group(func(g chi.Router) {
		g.Use(s.withOptionalAuth())
		g.Post("/game/start", s.handleStart)
		g.Post("/game/guess", s.handleGuess)
		g.Get("/game/events", s.handleEvents)
	})

	// Auth + profile/stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
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
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
