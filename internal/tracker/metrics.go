package tracker

import "github.com/prometheus/client_golang/prometheus"

func init() {
	prometheus.MustRegister(challengesCounter)
	prometheus.MustRegister(checkinsCounter)
}

var challengesCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rollcall_challenges_total",
		Help: "Total number of attendance challenges requested, by result",
	},
	[]string{"result"},
)

var checkinsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rollcall_checkins_total",
		Help: "Total number of scanned challenges submitted, by result",
	},
	[]string{"result"},
)

const (
	resultIssued        = "issued"
	resultRecorded      = "recorded"
	resultAlreadyMarked = "already_marked"
)

func countChallenge(result string) {
	challengesCounter.WithLabelValues(result).Inc()
}

func countCheckin(result string) {
	checkinsCounter.WithLabelValues(result).Inc()
}
