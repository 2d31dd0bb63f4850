package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK        = "ok"
	outcomeHTTPError = "http_error"
	outcomeTransport = "transport_error"
	outcomeDecode    = "decode_error"
)

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "rizz_backend_request_duration_seconds",
	Help:    "Duration of scoring API requests",
	Buckets: prometheus.DefBuckets,
}, []string{"endpoint", "outcome"})

func observe(endpoint, outcome string, start time.Time) {
	requestDuration.WithLabelValues(endpoint, outcome).Observe(time.Since(start).Seconds())
}
