// apps/go-server/internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's puzzle (creates or reuses session)
//   - POST /daily/move        → slide a tile in today's puzzle
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Each player solves the daily puzzle once per day (enforced by DB + in-memory session).
// Sessions are held in memory for active play; the result is persisted on win.
// The layout is derived from date + salt, so everyone gets the same puzzle.

package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
	"github.com/robalobadob/fifteen/apps/go-server/internal/daily"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
	"github.com/robalobadob/fifteen/apps/go-server/internal/metrics"
	"github.com/robalobadob/fifteen/apps/go-server/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	results  *daily.Store
	games    store.Store // daily games, kept apart from free play
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // keyed by userID|date
	mu       sync.Mutex               // guards sessions
}

// dailySession tracks one player's attempt at one day's puzzle.
type dailySession struct {
	GameID   string
	Date     string
	Finished bool
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		results:  daily.NewStore(s.db),
		games:    store.NewMemoryStore(),
		salt:     s.cfg.DailySalt,
		now:      time.Now,
		sessions: make(map[string]*dailySession),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/move", dd.handleMove)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// playerID returns the authenticated user ID if logged in,
// otherwise the anonymous cookie ID.
func (d *dailyServer) playerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
//   - If the player already has a result for today → Played=true, no game.
//   - Otherwise return the (possibly existing) game.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)
	date := daily.DateKey(d.now())

	played, err := d.results.AlreadyPlayed(r.Context(), uid, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	if !ok {
		g := game.New(daily.Initializer(date, d.salt))
		g.Initialize()
		if err := d.games.Save(r.Context(), g); err != nil {
			d.mu.Unlock()
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		sess = &dailySession{GameID: g.ID, Date: date}
		d.sessions[key] = sess
		d.srv.metrics.GamesStarted.WithLabelValues("daily").Inc()
	}
	gameID, finished := sess.GameID, sess.Finished
	d.mu.Unlock()

	var view gameView
	if err := d.games.Get(r.Context(), gameID, func(g *game.Game) error {
		view = viewOf(g)
		return nil
	}); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: finished, Game: &view})
}

// -----------------------------------------------------------------------------
// /daily/move

// dailyMoveRes is the response payload for /daily/move.
type dailyMoveRes struct {
	gameView
	Locked bool `json:"locked,omitempty"`
}

// handleMove applies a move to today's puzzle and records the result on win.
func (d *dailyServer) handleMove(w http.ResponseWriter, r *http.Request) {
	uid := d.playerID(w, r)

	var p moveReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dir, err := board.ParseDirection(p.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_direction")
		return
	}
	date := daily.DateKey(d.now())

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || sess.GameID != p.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	var view gameView
	err = d.games.Update(r.Context(), sess.GameID, func(g *game.Game) error {
		if err := g.ProcessMove(dir); err != nil {
			view = viewOf(g)
			return err
		}
		view = viewOf(g)
		if g.HasWon() {
			elapsed := int(d.now().Sub(g.StartedAt).Milliseconds())
			if err := d.results.InsertResult(r.Context(), daily.Result{
				UserID: uid, Date: date, Moves: g.Moves(), ElapsedMs: elapsed,
			}); err != nil {
				log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
			}
		}
		return nil
	})
	if err != nil {
		status, code, outcome := moveStatus(err)
		if outcome != "" {
			d.srv.metrics.MovesTotal.WithLabelValues(outcome).Inc()
		}
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("gameId", sess.GameID).Msg("process daily move")
		}
		if code == "game_finished" {
			writeJSON(w, http.StatusOK, dailyMoveRes{gameView: view, Locked: true})
			return
		}
		writeError(w, status, code)
		return
	}
	d.srv.metrics.MovesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	if view.State == game.Won {
		d.mu.Lock()
		sess.Finished = true
		d.mu.Unlock()
		d.srv.metrics.Won("daily", view.Moves)
	}
	writeJSON(w, http.StatusOK, dailyMoveRes{gameView: view})
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(d.now())
	}
	rows, err := d.results.Leaderboard(r.Context(), date, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
