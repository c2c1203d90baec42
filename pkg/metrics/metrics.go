// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// MongoDB metrics
	mongoOperationsTotal   *prometheus.CounterVec
	mongoOperationDuration *prometheus.HistogramVec

	// Kafka metrics
	kafkaMessagesPublished *prometheus.CounterVec
	kafkaPublishErrors     *prometheus.CounterVec

	// Circuit breaker metrics
	circuitBreakerState *prometheus.GaugeVec
	circuitBreakerTrips *prometheus.CounterVec

	// Business metrics
	ordersCreated    prometheus.Counter
	barcodesIssued   prometheus.Counter
	stageTransitions *prometheus.CounterVec
	loginAttempts    *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),

		httpRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: constLabels,
		}),

		mongoOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "mongodb_operations_total",
			Help:        "Total number of MongoDB operations",
			ConstLabels: constLabels,
		}, []string{"operation", "collection", "status"}),

		mongoOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "mongodb_operation_duration_seconds",
			Help:        "MongoDB operation duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "collection"}),

		kafkaMessagesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "kafka_messages_published_total",
			Help:        "Total number of Kafka messages published",
			ConstLabels: constLabels,
		}, []string{"topic"}),

		kafkaPublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "kafka_publish_errors_total",
			Help:        "Total number of Kafka publish errors",
			ConstLabels: constLabels,
		}, []string{"topic"}),

		circuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "circuit_breaker_state",
			Help:        "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			ConstLabels: constLabels,
		}, []string{"name"}),

		circuitBreakerTrips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "circuit_breaker_trips_total",
			Help:        "Total number of circuit breaker trips",
			ConstLabels: constLabels,
		}, []string{"name"}),

		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "production_orders_created_total",
			Help:        "Total number of production orders submitted",
			ConstLabels: constLabels,
		}),

		barcodesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "production_barcodes_issued_total",
			Help:        "Total number of unit barcodes issued",
			ConstLabels: constLabels,
		}),

		stageTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "production_stage_transitions_total",
			Help:        "Total number of recorded stage transitions",
			ConstLabels: constLabels,
		}, []string{"stage", "verdict"}),

		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "auth_login_attempts_total",
			Help:        "Total number of login attempts",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.httpRequestsInFlight,
		m.mongoOperationsTotal,
		m.mongoOperationDuration,
		m.kafkaMessagesPublished,
		m.kafkaPublishErrors,
		m.circuitBreakerState,
		m.circuitBreakerTrips,
		m.ordersCreated,
		m.barcodesIssued,
		m.stageTransitions,
		m.loginAttempts,
	)

	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments the in-flight request gauge.
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight request gauge.
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.httpRequestsInFlight.Dec()
}

// RecordMongoOperation records a MongoDB operation with its outcome.
func (m *Metrics) RecordMongoOperation(operation, collection string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.mongoOperationsTotal.WithLabelValues(operation, collection, status).Inc()
	m.mongoOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic string, err error) {
	if err != nil {
		m.kafkaPublishErrors.WithLabelValues(topic).Inc()
		return
	}
	m.kafkaMessagesPublished.WithLabelValues(topic).Inc()
}

// SetCircuitBreakerState records the current state of a circuit breaker.
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker opening.
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.circuitBreakerTrips.WithLabelValues(name).Inc()
}

// RecordOrderCreated records a submitted production order.
func (m *Metrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordBarcodesIssued records a batch of issued barcodes.
func (m *Metrics) RecordBarcodesIssued(count int) {
	m.barcodesIssued.Add(float64(count))
}

// RecordStageTransition records a committed stage transition by stage and
// delay verdict.
func (m *Metrics) RecordStageTransition(stage, verdict string) {
	m.stageTransitions.WithLabelValues(stage, verdict).Inc()
}

// RecordLoginAttempt records a login attempt outcome.
func (m *Metrics) RecordLoginAttempt(outcome string) {
	m.loginAttempts.WithLabelValues(outcome).Inc()
}
