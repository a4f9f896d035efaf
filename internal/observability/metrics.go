package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_http_requests_total",
			Help: "Total number of HTTP requests issued by the chat client.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_client_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	socketState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_client_socket_state",
			Help: "Current socket state (0=disconnected, 1=connecting, 2=connected, 3=reconnecting).",
		},
	)
	socketEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_client_socket_events_total",
			Help: "Total number of inbound socket events by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)
	notificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_client_notifications_total",
			Help: "Total number of desktop notifications raised.",
		},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_client_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		socketState,
		socketEventsTotal,
		notificationsTotal,
		amqpPublishErrorsTotal,
	)
}

// ObserveHTTPRequest records one outbound HTTP call. A status of 0 means the
// request never completed.
func ObserveHTTPRequest(method, endpoint string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func SetSocketState(state int) {
	socketState.Set(float64(state))
}

func IncSocketEvent(kind, outcome string) {
	socketEventsTotal.WithLabelValues(kind, outcome).Inc()
}

func IncNotification() {
	notificationsTotal.Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
