package worker

import "github.com/prometheus/client_golang/prometheus"

var (
	ticks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "game",
		Name:      "ticks_total",
		Help:      "Ticks in which the snake moved.",
	})
	foodEaten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "game",
		Name:      "food_eaten_total",
		Help:      "Food items eaten.",
	})
	gameOvers = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "game",
		Name:      "game_overs_total",
		Help:      "Games that ended in a self collision.",
	})
	restarts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "game",
		Name:      "restarts_total",
		Help:      "Games restarted after a game over.",
	})
	score = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "snake",
		Subsystem: "game",
		Name:      "score",
		Help:      "Current score.",
	})
	tickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "snake",
		Subsystem: "worker",
		Name:      "tick_duration_seconds",
		Help:      "Time spent stepping, drawing and storing a tick.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)

func init() {
	prometheus.MustRegister(ticks, foodEaten, gameOvers, restarts, score, tickDuration)
}
