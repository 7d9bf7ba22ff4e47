// Package metrics registers the Prometheus instrumentation for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the stock data service.
type Metrics struct {
	RequestsTotal *prometheus.CounterVec // labels: endpoint, status
	RequestDur    prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	ProviderErrors  prometheus.Counter
	ReportsComputed prometheus.Counter
	ReportDur       prometheus.Histogram

	MentionsStored prometheus.Counter
	ScansTotal     prometheus.Counter

	WSClients prometheus.Gauge
}

// New registers and returns all collectors on the default registry.
func New() *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stocksurge_requests_total",
			Help: "API requests by endpoint and status class",
		}, []string{"endpoint", "status"}),
		RequestDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocksurge_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.DefBuckets,
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_cache_hits_total",
			Help: "Cache hits across all endpoints",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_cache_misses_total",
			Help: "Cache misses across all endpoints",
		}),
		ProviderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_provider_errors_total",
			Help: "Upstream market data provider failures",
		}),
		ReportsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_indicator_reports_total",
			Help: "Indicator reports computed",
		}),
		ReportDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stocksurge_indicator_compute_seconds",
			Help:    "Indicator engine compute time per report",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		MentionsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_reddit_mentions_total",
			Help: "Reddit mentions persisted by the tracker",
		}),
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stocksurge_reddit_scans_total",
			Help: "Subreddit scans completed",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stocksurge_ws_clients",
			Help: "Connected live-price WebSocket clients",
		}),
	}

	prometheus.MustRegister(
		m.RequestsTotal, m.RequestDur,
		m.CacheHits, m.CacheMisses,
		m.ProviderErrors, m.ReportsComputed, m.ReportDur,
		m.MentionsStored, m.ScansTotal,
		m.WSClients,
	)
	return m
}

// Handler exposes the /metrics scrape endpoint.
func Handler() http.Handler { return promhttp.Handler() }
