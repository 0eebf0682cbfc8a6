// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: 2f3a4b5c-6d7e-8f9a-0b1c-2d3e4f5a6b7c

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	queryStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booksearch",
		Name:      "queries_started_total",
		Help:      "Total number of queries submitted by source",
	}, []string{"source"})
	queryCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booksearch",
		Name:      "queries_completed_total",
		Help:      "Total number of queries whose results were delivered by source",
	}, []string{"source"})
	queryFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booksearch",
		Name:      "queries_failed_total",
		Help:      "Total number of queries that failed by source",
	}, []string{"source"})
	querySuperseded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booksearch",
		Name:      "queries_superseded_total",
		Help:      "Total number of query results dropped because a newer query arrived",
	}, []string{"source"})
	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "booksearch",
		Name:      "query_duration_seconds",
		Help:      "Histogram of query scoring durations in seconds by source",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	}, []string{"source"})

	datasetTitlesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "booksearch",
		Name:      "dataset_titles_total",
		Help:      "Current number of titles in the loaded dataset",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(queryStarted, queryCompleted, queryFailed,
			querySuperseded, queryDuration, datasetTitlesGauge)
	})
}

// Query lifecycle helpers
func IncQueryStarted(source string)    { queryStarted.WithLabelValues(source).Inc() }
func IncQueryCompleted(source string)  { queryCompleted.WithLabelValues(source).Inc() }
func IncQueryFailed(source string)     { queryFailed.WithLabelValues(source).Inc() }
func IncQuerySuperseded(source string) { querySuperseded.WithLabelValues(source).Inc() }
func ObserveQueryDuration(source string, d time.Duration) {
	queryDuration.WithLabelValues(source).Observe(d.Seconds())
}

// Gauges
func SetDatasetTitles(n int) { datasetTitlesGauge.Set(float64(n)) }
