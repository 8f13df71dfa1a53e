package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge

	BookingsCreated     *prometheus.CounterVec
	ConflictsDetected   *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
	ConversionsRecorded *prometheus.CounterVec
}

var (
	once     sync.Once
	instance *Metrics
)

// New создает и регистрирует метрики (идемпотентно, повторный вызов возвращает тот же коллектор)
func New(serviceName string) *Metrics {
	once.Do(func() {
		instance = newMetrics(serviceName, prometheus.DefaultRegisterer)
	})
	return instance
}

// NewWithRegistry регистрирует метрики в отдельном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	return newMetrics(serviceName, reg)
}

func newMetrics(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Count of HTTP requests by method, route and status.",
				ConstLabels: constLabels,
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency.",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query latency by operation.",
				ConstLabels: constLabels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		DBOpenConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "db_open_connections",
				Help:        "Open database connections.",
				ConstLabels: constLabels,
			},
		),
		DBInUse: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "db_in_use_connections",
				Help:        "Database connections currently in use.",
				ConstLabels: constLabels,
			},
		),
		BookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_created_total",
				Help:        "Count of bookings created by status.",
				ConstLabels: constLabels,
			},
			[]string{"status"},
		),
		ConflictsDetected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_conflict_total",
				Help:        "Count of rejected booking drafts by conflict kind.",
				ConstLabels: constLabels,
			},
			[]string{"kind"},
		),
		StatusTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_status_transition_total",
				Help:        "Count of booking status transitions.",
				ConstLabels: constLabels,
			},
			[]string{"from", "to"},
		),
		ConversionsRecorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "booking_conversion_total",
				Help:        "Count of conversion records by outcome.",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.BookingsCreated,
		m.ConflictsDetected,
		m.StatusTransitions,
		m.ConversionsRecorded,
	)

	return m
}

// IncBookingCreated увеличивает счетчик созданных бронирований. Безопасен для nil
func (m *Metrics) IncBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(status).Inc()
}

// IncConflict увеличивает счетчик отклоненных черновиков
func (m *Metrics) IncConflict(kind string) {
	if m == nil {
		return
	}
	m.ConflictsDetected.WithLabelValues(kind).Inc()
}

// IncTransition увеличивает счетчик переходов статусов
func (m *Metrics) IncTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to).Inc()
}

// IncConversion увеличивает счетчик записей конверсии
func (m *Metrics) IncConversion(outcome string) {
	if m == nil {
		return
	}
	m.ConversionsRecorded.WithLabelValues(outcome).Inc()
}
