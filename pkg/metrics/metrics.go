package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReservationsCreated  *prometheus.CounterVec
	ReservationConflicts *prometheus.CounterVec
	SeriesOccurrences    *prometheus.CounterVec
	NotificationsFailed  prometheus.Counter
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		ReservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reservations_created_total",
			Help:      "Reservations written to the store",
		}, []string{"path", "slot"}),

		ReservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reservation_conflicts_total",
			Help:      "Reservation attempts rejected because the slot was taken",
		}, []string{"stage"}),

		SeriesOccurrences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "series_occurrences_total",
			Help:      "Occurrences processed by recurring series creation",
		}, []string{"result"}),

		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "notifications_failed_total",
			Help:      "Notification events that could not be published",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsCreated,
		m.ReservationConflicts,
		m.SeriesOccurrences,
		m.NotificationsFailed,
	)

	return m
}

// ObserveHTTP учитывает один HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReservationCreated увеличивает счетчик созданных бронирований
func (m *Metrics) ReservationCreated(path, slot string) {
	if m == nil {
		return
	}
	m.ReservationsCreated.WithLabelValues(path, slot).Inc()
}

// Conflict увеличивает счетчик конфликтов на указанной стадии (check, lock, recheck, insert)
func (m *Metrics) Conflict(stage string) {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(stage).Inc()
}

// SeriesOccurrence учитывает результат вставки одного вхождения серии
func (m *Metrics) SeriesOccurrence(result string) {
	if m == nil {
		return
	}
	m.SeriesOccurrences.WithLabelValues(result).Inc()
}

// NotificationFailed учитывает неудачную публикацию события
func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationsFailed.Inc()
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
