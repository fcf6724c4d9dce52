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

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	ActivitiesLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesLogged,
			Help: HelpTextActivitiesLogged,
		},
		[]string{LabelActivityType},
	)

	XPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
		[]string{LabelStat},
	)

	CharacterLevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCharacterLevelUps,
			Help: HelpTextCharacterLevelUps,
		},
	)

	StatLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStatLevelUps,
			Help: HelpTextStatLevelUps,
		},
		[]string{LabelStat},
	)

	NodesAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameNodesAllocated,
			Help: HelpTextNodesAllocated,
		},
	)

	RespecsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRespecsTotal,
			Help: HelpTextRespecsTotal,
		},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelEventType},
	)
)
