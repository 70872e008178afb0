package http

import (
	"pastfool/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Counter for answers by outcome: correct, wrong or rejected (after time ran out)
	answersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pastfool_answers_total",
			Help: "Total number of answers submitted",
		},
		[]string{"outcome"},
	)

	roundsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pastfool_rounds_completed_total",
			Help: "Total number of rounds that ran out of time",
		},
	)

	finalScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pastfool_final_score",
			Help:    "Score at the end of a round",
			Buckets: prometheus.LinearBuckets(0, 5, 12),
		},
	)

	// Gauge for open game screens
	activeGames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pastfool_active_games",
			Help: "Current number of open game screens",
		},
	)
)

// ObserveRoundEnd is installed as the game's round-end hook.
func ObserveRoundEnd(final, _ int) {
	roundsCompleted.Inc()
	finalScores.Observe(float64(final))
}

func observeAnswer(out domain.Outcome) {
	switch {
	case !out.Accepted:
		answersTotal.WithLabelValues("rejected").Inc()
	case out.Correct:
		answersTotal.WithLabelValues("correct").Inc()
	default:
		answersTotal.WithLabelValues("wrong").Inc()
	}
}
