// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the Game of Fifteen backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints (optional auth): POST /game/new, POST /game/move, GET /game/{id}.
//   - Daily puzzle endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Active games live in a store.Store; the games table only keeps history.
//   - Every move runs inside store.Update, which serialises access to a Game.
//   - History and stats writes are best effort: failures are logged, not returned.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fifteen/apps/go-server/internal/auth"
	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
	"github.com/robalobadob/fifteen/apps/go-server/internal/config"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
	"github.com/robalobadob/fifteen/apps/go-server/internal/metrics"
	"github.com/robalobadob/fifteen/apps/go-server/internal/store"
)

// Server bundles router, active game store, DB handle and metrics.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	auth    auth.Options
	store   store.Store
	db      *sql.DB
	metrics *metrics.Metrics
}

// New constructs a Server, installs middleware, and registers routes.
// Metrics are registered on reg and exposed at /metrics.
func New(cfg config.Config, st store.Store, db *sql.DB, reg *prometheus.Registry) *Server {
	s := &Server{
		r:     chi.NewRouter(),
		cfg:   cfg,
		store: st,
		db:    db,
		auth: auth.Options{
			Secret:     []byte(cfg.JWTSecret),
			TTL:        cfg.JWTTTL,
			CookieName: cfg.CookieName,
			Secure:     cfg.Production,
		},
		metrics: metrics.New(reg),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"fifteen-go","endpoints":["/health","/metrics","POST /game/new","POST /game/move","GET /game/{id}","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Game endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/move", s.handleMove)
		r.Get("/game/{id}", s.handleGetGame)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

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

// accessLog writes one zerolog event per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("http")
	})
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// gameView is the JSON shape of a game returned by every game endpoint.
// Board is indexed [row-1][col-1]; null marks the gap.
type gameView struct {
	GameID string                  `json:"gameId"`
	Board  [][]board.Optional[int] `json:"board"`
	State  game.State              `json:"state"`
	Moves  int                     `json:"moves"`
}

func viewOf(g *game.Game) gameView {
	rows := make([][]board.Optional[int], game.Size)
	for i := range rows {
		rows[i] = make([]board.Optional[int], game.Size)
		for j := range rows[i] {
			rows[i][j], _ = g.ValueAt(i+1, j+1)
		}
	}
	return gameView{GameID: g.ID, Board: rows, State: g.State(), Moves: g.Moves()}
}

// moveStatus maps a ProcessMove/store error to an HTTP status, error code and
// metrics outcome.
func moveStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found", ""
	case errors.Is(err, game.ErrIllegalMove):
		return http.StatusConflict, "illegal_move", metrics.OutcomeIllegal
	case errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict, "game_finished", metrics.OutcomeFinished
	case errors.Is(err, game.ErrNoEmptyCell):
		return http.StatusInternalServerError, "corrupt_game", metrics.OutcomeCorrupt
	}
	return http.StatusInternalServerError, "server_error", ""
}
