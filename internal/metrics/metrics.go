// Package metrics holds the Prometheus counters for game activity.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddle_games_started_total",
			Help: "Games started or restarted, by word selection mode",
		},
		[]string{"mode"},
	)
	Answers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddle_answers_total",
			Help: "Answers scored by the game, by kind (literal/pattern) and result",
		},
		[]string{"kind", "matched"},
	)
	GamesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddle_games_completed_total",
			Help: "Games completed, by outcome (correct/giveup)",
		},
		[]string{"outcome"},
	)
	RejectedAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddle_rejected_answers_total",
			Help: "Submissions rejected before reaching the game",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(Answers)
	prometheus.MustRegister(GamesCompleted)
	prometheus.MustRegister(RejectedAnswers)
}

// ObserveAnswer records one scored answer.
func ObserveAnswer(literal, matched bool) {
	kind := "pattern"
	if literal {
		kind = "literal"
	}
	Answers.WithLabelValues(kind, strconv.FormatBool(matched)).Inc()
}
