package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// Simulation Metrics
var (
	LevelsSearched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelsSearched,
			Help: HelpTextLevelsSearched,
		},
		[]string{LabelConfig, LabelFound, LabelReused},
	)

	LevelSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameLevelSearchDuration,
			Help:    HelpTextLevelSearchDuration,
			Buckets: SearchLatencyBuckets,
		},
		[]string{LabelConfig},
	)

	BestDPS = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameBestDPS,
			Help: HelpTextBestDPS,
		},
		[]string{LabelConfig},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCacheLookups,
			Help: HelpTextCacheLookups,
		},
		[]string{LabelConfig, LabelOutcome},
	)

	ConfigsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameConfigsFinished,
			Help: HelpTextConfigsFinished,
		},
		[]string{LabelConfig, LabelStatus},
	)

	ConfigSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameConfigSearchDuration,
			Help:    HelpTextConfigSearchDuration,
			Buckets: SearchLatencyBuckets,
		},
		[]string{LabelConfig},
	)
)
