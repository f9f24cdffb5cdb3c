// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorycare_job_runs_total",
			Help: "Total number of periodic job runs",
		},
		[]string{"job", "result"},
	)
	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "memorycare_job_duration_seconds",
			Help:    "Periodic job run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorycare_notifications_created_total",
			Help: "Total number of notifications written by periodic rules",
		},
		[]string{"type"},
	)
	ChatMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorycare_chat_messages_total",
			Help: "Total number of chat turns by response category",
		},
		[]string{"category"},
	)
	GameScores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "memorycare_game_scores_total",
			Help: "Total number of saved game scores",
		},
		[]string{"game"},
	)
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Result maps an error to the result label value.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
