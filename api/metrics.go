package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method and status",
	}, []string{"method", "status"})

	httpDurationMetric = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name: "http_request_duration_seconds",
		Help: "HTTP request latency, by method",
	}, []string{"method"})
)

// metricsMiddleware records request counts and latencies. Labels stay on
// method and status only; paths carry uuids and would blow up cardinality.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		httpRequestsMetric.WithLabelValues(r.Method, strconv.Itoa(srw.status)).Inc()
		httpDurationMetric.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
