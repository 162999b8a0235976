package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_questions_resolved_total",
			Help: "Total number of questions resolved, by query category",
		},
		[]string{"category"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_cache_hits_total",
			Help: "Total number of responses served from the cache",
		},
	)

	QueryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_query_failures_total",
			Help: "Total number of generated queries that failed validation or execution",
		},
	)

	WeatherLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_weather_lookup_failures_total",
			Help: "Total number of weather lookups downgraded to unknown",
		},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "agent_run_duration_seconds",
			Help: "Duration of a full question run in seconds",
		},
	)
)
