package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CommonHttpEndpointsOpts struct {
	Router          *mux.Router
	ServiceLogs     chan<- ServiceLog
	LivenessChecks  []func() error
	ReadinessChecks []func() error
}

func RegisterCommonHttpEndpoints(opts CommonHttpEndpointsOpts) {
	opts.Router.HandleFunc("/healthz", getLivenessHandler(opts)).Methods(http.MethodGet)
	opts.Router.HandleFunc("/readyz", getReadinessHandler(opts)).Methods(http.MethodGet)
	opts.Router.Handle("/metrics", promhttp.Handler())
}

type healthOutput struct {
	Status string `json:"status"`
}

func getLivenessHandler(opts CommonHttpEndpointsOpts) http.HandlerFunc {
	return getHealthHandler("liveness", opts.LivenessChecks)
}

func getReadinessHandler(opts CommonHttpEndpointsOpts) http.HandlerFunc {
	return getHealthHandler("readiness", opts.ReadinessChecks)
}

func getHealthHandler(kind string, checks []func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issues := []error{}
		for _, check := range checks {
			if err := check(); err != nil {
				issues = append(issues, err)
			}
		}
		if len(issues) > 0 {
			SendHttpFailResponse(w, r, http.StatusServiceUnavailable, fmt.Sprintf("%s check failed: %s", kind, errors.Join(issues...)))
			return
		}
		SendHttpSuccessResponse(w, r, http.StatusOK, "ok", healthOutput{Status: "ok"})
	}
}
