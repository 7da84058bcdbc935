package services

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the process-wide Prometheus registry and the engagement
// counters. A nil *MetricsService records nothing.
type MetricsService struct {
	registry *prometheus.Registry

	submissions     *prometheus.CounterVec
	prayers         *prometheus.CounterVec
	mediaRejections *prometheus.CounterVec
	approvals       prometheus.Counter
	httpRequests    *prometheus.CounterVec
}

func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prayerwall",
			Name:      "submissions_total",
			Help:      "Prayer items, comments and replies accepted.",
		}, []string{"kind"}),
		prayers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prayerwall",
			Name:      "prayers_total",
			Help:      "Pray actions recorded.",
		}, []string{"target"}),
		mediaRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prayerwall",
			Name:      "media_rejections_total",
			Help:      "Attachments refused by the media validator.",
		}, []string{"reason"}),
		approvals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prayerwall",
			Name:      "approvals_total",
			Help:      "Prayer items approved by a moderator.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prayerwall",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status.",
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.submissions,
		m.prayers,
		m.mediaRejections,
		m.approvals,
		m.httpRequests,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer is used by tests to read collected values.
func (m *MetricsService) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *MetricsService) Submitted(kind string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(kind).Inc()
}

func (m *MetricsService) Prayed(target string) {
	if m == nil {
		return
	}
	m.prayers.WithLabelValues(target).Inc()
}

func (m *MetricsService) Rejected(reason string) {
	if m == nil {
		return
	}
	m.mediaRejections.WithLabelValues(reason).Inc()
}

func (m *MetricsService) Approved() {
	if m == nil {
		return
	}
	m.approvals.Inc()
}

func (m *MetricsService) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
