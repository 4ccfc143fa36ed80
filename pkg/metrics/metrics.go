package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec

	FlowTransitions         *prometheus.CounterVec
	PaymentsTotal           *prometheus.CounterVec
	BookingsCompleted       prometheus.Counter
	TierActivationsRejected prometheus.Counter
}

// New создает и регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{"db"}),
		FlowTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_flow_transitions_total",
			Help:        "Booking flow state transitions",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		PaymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_payments_total",
			Help:        "Payment capture attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		BookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_completed_total",
			Help:        "Bookings that reached the success state",
			ConstLabels: labels,
		}),
		TierActivationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pricing_tier_activations_rejected_total",
			Help:        "Tier activations rejected by the active tier limit",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.FlowTransitions,
		m.PaymentsTotal,
		m.BookingsCompleted,
		m.TierActivationsRejected,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveTransition фиксирует переход booking flow между состояниями
func (m *Metrics) ObserveTransition(from, to string) {
	m.FlowTransitions.WithLabelValues(from, to).Inc()
}

// ObservePayment фиксирует результат попытки оплаты
func (m *Metrics) ObservePayment(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.PaymentsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCompletion фиксирует успешно завершённое бронирование
func (m *Metrics) ObserveCompletion() {
	m.BookingsCompleted.Inc()
}

// ObserveCapacityRejection фиксирует отказ в активации тарифа сверх лимита
func (m *Metrics) ObserveCapacityRejection() {
	m.TierActivationsRejected.Inc()
}
