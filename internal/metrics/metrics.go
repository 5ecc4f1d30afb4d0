package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hela9"

// Registry - свой реестр Prometheus на процесс. Методы записи безопасны для nil.
type Registry struct {
	reg *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	signups      *prometheus.CounterVec
	confirmed    *prometheus.CounterVec
	bidding      *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "signups_total",
			Help:      "Accounts created, by role.",
		}, []string{"role"}),
		confirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "confirmations_total",
			Help:      "Email confirmations, by role.",
		}, []string{"role"}),
		bidding: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "deplacement",
			Name:      "events_total",
			Help:      "Mobile-stylist bidding events (broadcast, proposal, accepted, refused).",
		}, []string{"event"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"scope"}),
	}

	r.reg.MustRegister(
		r.httpRequests,
		r.httpDuration,
		r.signups,
		r.confirmed,
		r.bidding,
		r.rateLimited,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return r
}

// Handler отдает метрики в формате Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer нужен в тестах для чтения значений.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

func (r *Registry) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (r *Registry) SignupCompleted(role string) {
	if r == nil {
		return
	}
	r.signups.WithLabelValues(role).Inc()
}

func (r *Registry) AccountConfirmed(role string) {
	if r == nil {
		return
	}
	r.confirmed.WithLabelValues(role).Inc()
}

func (r *Registry) BiddingEvent(event string) {
	if r == nil {
		return
	}
	r.bidding.WithLabelValues(event).Inc()
}

func (r *Registry) RateLimited(scope string) {
	if r == nil {
		return
	}
	r.rateLimited.WithLabelValues(scope).Inc()
}
