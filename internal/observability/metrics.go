package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. A nil *Metrics records nothing, so
// tests and tools can pass nil.
type Metrics struct {
	gatherer promclient.Gatherer

	httpRequests *promclient.CounterVec
	httpDuration *promclient.HistogramVec
	readings     *promclient.CounterVec
	payments     *promclient.CounterVec
	gateway      *promclient.HistogramVec
	wsClients    promclient.Gauge
}

// NewMetrics registers the collectors on reg. When reg is nil a private
// registry is created so repeated construction in tests never collides.
func NewMetrics(namespace string, reg *promclient.Registry) (*Metrics, error) {
	if namespace == "" {
		namespace = "numguru"
	}
	if reg == nil {
		reg = promclient.NewRegistry()
	}

	m := &Metrics{gatherer: reg}
	var err error

	m.httpRequests, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"}))
	if err != nil {
		return nil, err
	}

	m.httpDuration, err = register(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   promclient.DefBuckets,
	}, []string{"method", "route"}))
	if err != nil {
		return nil, err
	}

	m.readings, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "readings_generated_total",
		Help:      "Readings generated by kind (full, preview, free, shared).",
	}, []string{"kind"}))
	if err != nil {
		return nil, err
	}

	m.payments, err = register(reg, promclient.NewCounterVec(promclient.CounterOpts{
		Namespace: namespace,
		Name:      "payment_operations_total",
		Help:      "Payment operations by operation and outcome.",
	}, []string{"operation", "outcome"}))
	if err != nil {
		return nil, err
	}

	m.gateway, err = register(reg, promclient.NewHistogramVec(promclient.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of calls to the payment gateway and the geo lookup.",
		Buckets:   promclient.DefBuckets,
	}, []string{"upstream"}))
	if err != nil {
		return nil, err
	}

	m.wsClients, err = register(reg, promclient.NewGauge(promclient.GaugeOpts{
		Namespace: namespace,
		Name:      "ws_clients",
		Help:      "Connected payment status subscribers.",
	}))
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register[C promclient.Collector](reg promclient.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are promclient.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register collector: %w", err)
	}
	return c, nil
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) RecordReading(kind string) {
	if m == nil {
		return
	}
	m.readings.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordPayment(operation, outcome string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveUpstream(upstream string, d time.Duration) {
	if m == nil {
		return
	}
	m.gateway.WithLabelValues(upstream).Observe(d.Seconds())
}

func (m *Metrics) SetWSClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
