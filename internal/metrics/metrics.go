// apps/go-server/internal/metrics/metrics.go
//
// Prometheus metrics for puzzle sessions.
// Metrics are registered on a caller-supplied Registerer so tests can use an
// isolated registry instead of the global one.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fifteen"

// Move outcomes used as the "outcome" label of MovesTotal.
const (
	OutcomeOK       = "ok"
	OutcomeIllegal  = "illegal"
	OutcomeFinished = "finished"
	OutcomeCorrupt  = "corrupt"
)

// Metrics bundles the collectors the HTTP layer updates.
type Metrics struct {
	// GamesStarted counts new games by mode (normal, custom, daily).
	GamesStarted *prometheus.CounterVec
	// MovesTotal counts move requests by outcome.
	MovesTotal *prometheus.CounterVec
	// GamesWon counts solved puzzles by mode.
	GamesWon *prometheus.CounterVec
	// MovesToWin is the distribution of move counts for solved puzzles.
	MovesToWin prometheus.Histogram
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GamesStarted: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "started_total",
			Help:      "Games started by mode",
		}, []string{"mode"}),
		MovesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "moves_total",
			Help:      "Move requests by outcome",
		}, []string{"outcome"}),
		GamesWon: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "won_total",
			Help:      "Solved games by mode",
		}, []string{"mode"}),
		MovesToWin: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "games",
			Name:      "moves_to_win",
			Help:      "Number of moves taken to solve a game",
			Buckets:   []float64{10, 25, 50, 100, 200, 400, 800, 1600},
		}),
	}
}

// Won records a solved game.
func (m *Metrics) Won(mode string, moves int) {
	m.GamesWon.WithLabelValues(mode).Inc()
	m.MovesToWin.Observe(float64(moves))
}
