package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	// Ledger
	EntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_entries_total",
			Help: "Ledger entries created by type",
		},
		[]string{"type"},
	)
	EntriesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_entries_rejected_total",
			Help: "Ledger operations rejected by reason",
		},
		[]string{"reason"},
	)

	// Campaigns
	ClicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "campaign_clicks_total",
			Help: "Clicks recorded against active campaigns",
		},
	)
)

// Handler serves the /metrics endpoint
var Handler = promhttp.Handler

// Init registers all collectors with the default registry
func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestLatency)
	prometheus.MustRegister(EntriesTotal)
	prometheus.MustRegister(EntriesRejected)
	prometheus.MustRegister(ClicksTotal)
}
