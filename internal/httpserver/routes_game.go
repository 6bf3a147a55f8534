// apps/go-server/internal/httpserver/routes_game.go
//
// Free-play puzzle endpoints:
//   - POST /game/new  → start a game (random solvable layout, or a supplied one)
//   - POST /game/move → slide a tile: {"gameId": "...", "direction": "up"}
//   - GET  /game/{id} → current board readout

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
	"github.com/robalobadob/fifteen/apps/go-server/internal/metrics"
)

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	// Layout is an optional row-major starting layout, 0 for the gap.
	// It must be a solvable permutation of 1..15 plus one gap.
	Layout []int `json:"layout"`
}

// handleNewGame creates a new in-memory game and records a history row
// owned by the user (or the anonymous cookie).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	mode := "normal"
	var src game.Initializer = game.RandomInitializer{}
	if req.Layout != nil {
		fixed := game.FromInts(req.Layout)
		if err := game.Validate(fixed); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_layout", "detail": err.Error()})
			return
		}
		mode, src = "custom", fixed
	}

	g := game.New(src)
	g.Initialize()
	view := viewOf(g)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.GamesStarted.WithLabelValues(mode).Inc()
	s.recordNewGame(w, r, g)

	writeJSON(w, http.StatusOK, view)
}

// moveReq is the payload for POST /game/move and POST /daily/move.
type moveReq struct {
	GameID    string `json:"gameId"`
	Direction string `json:"direction"`
}

// handleMove applies one move under the store's lock, then records progress.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	dir, err := board.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_direction")
		return
	}

	var view gameView
	err = s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if err := g.ProcessMove(dir); err != nil {
			return err
		}
		view = viewOf(g)
		return nil
	})
	if err != nil {
		status, code, outcome := moveStatus(err)
		if outcome != "" {
			s.metrics.MovesTotal.WithLabelValues(outcome).Inc()
		}
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("gameId", req.GameID).Msg("process move")
		}
		writeError(w, status, code)
		return
	}
	s.metrics.MovesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	if view.State == game.Won {
		s.metrics.Won("normal", view.Moves)
	}
	s.recordMove(w, r, view)

	writeJSON(w, http.StatusOK, view)
}

// handleGetGame returns the current board of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	var view gameView
	err := s.store.Get(r.Context(), chi.URLParam(r, "id"), func(g *game.Game) error {
		view = viewOf(g)
		return nil
	})
	if err != nil {
		status, code, _ := moveStatus(err)
		writeError(w, status, code)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ------------------------------ history ------------------------------------

// owner returns the WHERE clause fragment and argument identifying the
// caller's rows in games.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, any, *authUser) {
	if me := userFrom(r); me != nil {
		return `user_id=?`, me.ID, me
	}
	return `anonymous_id=?`, s.ensureAnonID(w, r), nil
}

// recordNewGame inserts the history row and, for users, counts the game.
// A user's previous game left unsolved breaks their win streak.
func (s *Server) recordNewGame(w http.ResponseWriter, r *http.Request, g *game.Game) {
	layout, _ := json.Marshal(g.Layout())
	now := g.StartedAt.Format(time.RFC3339)
	ctx := r.Context()

	me := userFrom(r)
	if me == nil {
		if _, err := s.db.ExecContext(ctx, `INSERT INTO games (id, anonymous_id, layout, status, moves, started_at)
		                                    VALUES (?,?,?,?,0,?)`, g.ID, s.ensureAnonID(w, r), string(layout), game.InProgress, now); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert anon game row")
		}
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	var last string
	err = tx.QueryRowContext(ctx, `SELECT status FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 1`, me.ID).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Warn().Err(err).Msg("last game")
		return
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO games (id, user_id, layout, status, moves, started_at)
	                                  VALUES (?,?,?,?,0,?)`, g.ID, me.ID, string(layout), game.InProgress, now); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert user game row")
		return
	}
	resetStreak := last == string(game.InProgress)
	if _, err := tx.ExecContext(ctx, `UPDATE users SET games_played = games_played + 1,
	                                  streak = CASE WHEN ? THEN 0 ELSE streak END WHERE id=?`, resetStreak, me.ID); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("bump games played")
		return
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit new game")
	}
}

// recordMove updates the history row after a legal move and, when the move
// solved the puzzle, marks it finished and credits the user.
func (s *Server) recordMove(w http.ResponseWriter, r *http.Request, view gameView) {
	ownerClause, ownerArg, me := s.owner(w, r)
	ctx := r.Context()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE games SET moves=? WHERE id=? AND `+ownerClause, view.Moves, view.GameID, ownerArg)
	if err != nil {
		log.Warn().Err(err).Msg("update moves")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// someone else's game, or a game that predates the caller's cookie
		return
	}
	if view.State == game.Won {
		if _, err := tx.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
			game.Won, time.Now().UTC().Format(time.RFC3339), view.GameID); err != nil {
			log.Warn().Err(err).Msg("finish game")
			return
		}
		if me != nil {
			if _, err := tx.ExecContext(ctx, `UPDATE users SET wins = wins + 1, streak = streak + 1 WHERE id=?`, me.ID); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
				return
			}
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit move")
	}
}
