package common

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(incomingRequestsCounter)
	prometheus.MustRegister(pendingRequestsCounter)
}

var incomingRequestsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path"},
)

var pendingRequestsCounter = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_pending",
		Help: "Total number of HTTP requests being processed",
	},
	[]string{"method", "path"},
)

// GetCommonMetricsMiddleware records request counts keyed on the route
// template so that path parameters do not explode label cardinality
func GetCommonMetricsMiddleware(serviceLogs chan<- ServiceLog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if pathTemplate, err := route.GetPathTemplate(); err == nil {
					path = pathTemplate
				}
			}
			incomingRequestsCounter.WithLabelValues(r.Method, path).Inc()
			pendingRequestsCounter.WithLabelValues(r.Method, path).Inc()
			defer pendingRequestsCounter.WithLabelValues(r.Method, path).Dec()
			next.ServeHTTP(w, r)
		})
	}
}
