package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "medflow", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	MailSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "mail_sent_total", Help: "Emails handed to the SMTP server",
	}, []string{"kind"})
	MailFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "mail_failed_total", Help: "Emails that could not be sent",
	}, []string{"kind"})

	PushSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "medflow", Name: "push_sent_total", Help: "Push messages accepted by FCM",
	})
	PushFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "medflow", Name: "push_failed_total", Help: "Push messages rejected by FCM",
	})
	PushPruned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "medflow", Name: "push_tokens_pruned_total", Help: "Invalid device tokens removed",
	})

	Verifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "verifications_total", Help: "Verification link attempts",
	}, []string{"result"})

	JobRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "job_runs_total", Help: "Background job runs",
	}, []string{"job"})
	JobErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medflow", Name: "job_errors_total", Help: "Background job errors",
	}, []string{"job"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		MailSent, MailFailed,
		PushSent, PushFailed, PushPruned,
		Verifications,
		JobRuns, JobErrors,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(method, route string, status int, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, http.StatusText(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
