package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "api_http_requests_total", Help: "HTTP requests"},
		[]string{"method", "path", "status"},
	)
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_events_total", Help: "Webhook deliveries by event type and outcome"},
		[]string{"event_type", "outcome"},
	)
	CampaignsScheduledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "campaigns_scheduled_total", Help: "Campaigns scheduled with the provider"},
	)
	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Outbound call duration by upstream service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "upstream_errors_total", Help: "Failed outbound calls by upstream service"},
		[]string{"service", "operation"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestsTotal, APIRequestDuration,
		WebhookEventsTotal, CampaignsScheduledTotal,
		UpstreamRequestDuration, UpstreamErrorsTotal,
	)
}

func Handler() http.Handler { return promhttp.Handler() }
