// Package metrics expone métricas Prometheus del flujo de pedidos.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Almacen-api/internal/application/ordering"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var _ ordering.Metrics = (*OrderMetrics)(nil)

// OrderMetrics implementa ordering.Metrics sobre un registro Prometheus propio.
type OrderMetrics struct {
	registry *prometheus.Registry
	created  *prometheus.CounterVec
	failed   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewOrderMetrics crea el registro con los colectores de proceso y Go más las métricas de pedidos.
func NewOrderMetrics(namespace string) *OrderMetrics {
	reg := prometheus.NewRegistry()
	m := &OrderMetrics{
		registry: reg,
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Pedidos creados con su factura, por tipo.",
		}, []string{"type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "failed_total",
			Help:      "Creaciones de pedido rechazadas o revertidas, por motivo.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "create_duration_seconds",
			Help:      "Duración de la creación transaccional de pedidos.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.created, m.failed, m.duration,
	)
	return m
}

// OrderCreated registra un pedido confirmado.
func (m *OrderMetrics) OrderCreated(t entity.OrderType, elapsed time.Duration) {
	m.created.WithLabelValues(string(t)).Inc()
	m.duration.WithLabelValues(string(t)).Observe(elapsed.Seconds())
}

// OrderFailed registra un intento fallido.
func (m *OrderMetrics) OrderFailed(reason string) {
	m.failed.WithLabelValues(reason).Inc()
}

// Registry devuelve el registro subyacente.
func (m *OrderMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato Prometheus.
func (m *OrderMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
