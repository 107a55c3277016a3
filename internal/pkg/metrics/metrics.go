package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "supervision"

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	AssignmentOps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "assignment_operations_total", Help: "Assignment operations by outcome",
	}, []string{"operation", "result"})
	StudentsAssigned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "students_assigned_total", Help: "Students assigned to supervisors",
	}, []string{"operation"})

	TokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "tokens_issued_total", Help: "Session tokens issued",
	})
	TokensRevoked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "tokens_revoked_total", Help: "Session tokens revoked",
	})
	AuthFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "auth_failures_total", Help: "Rejected credentials by layer",
	}, []string{"layer"})

	PresenceChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "presence_checks_total", Help: "Presence verifications by result",
	}, []string{"result"})

	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		AssignmentOps, StudentsAssigned,
		TokensIssued, TokensRevoked, AuthFailures,
		PresenceChecks, DBPing,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

// Result labels an operation outcome
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
