package controllerutils

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	ReconcileTotalMetricName       = "bindy_reconcile_total"
	ReconcileDurationMetricName    = "bindy_reconcile_duration_seconds"
	InstanceSyncStateMetricName    = "bindy_instance_sync_state"
	BreakerTripsTotalMetricName    = "bindy_circuit_breaker_trips_total"
)

// ControllerMetrics holds the Prometheus metrics shared by every reconciler
// registered with the manager. One instance is created at startup and
// passed to each controller's constructor.
type ControllerMetrics struct {
	ReconcileTotal    *prometheus.CounterVec
	ReconcileDuration *prometheus.HistogramVec
	InstanceSyncState *prometheus.GaugeVec
	BreakerTripsTotal *prometheus.CounterVec
}

var (
	sharedMetricsOnce sync.Once
	sharedMetrics     *ControllerMetrics
)

// NewControllerMetrics returns the process-wide metric set, registering it
// with the controller-runtime metrics registry (the same registry every
// manager exposes on its /metrics endpoint) the first time it's called.
// Every controller's constructor and every controller test calls this, so it
// must be idempotent rather than re-registering collectors under the same
// names on each call.
func NewControllerMetrics() *ControllerMetrics {
	sharedMetricsOnce.Do(func() {
		m := &ControllerMetrics{
			ReconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: ReconcileTotalMetricName,
				Help: "Total reconcile attempts, labeled by controller and outcome.",
			}, []string{"controller", "outcome"}),
			ReconcileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    ReconcileDurationMetricName,
				Help:    "Reconcile loop latency in seconds, labeled by controller.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			}, []string{"controller"}),
			InstanceSyncState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: InstanceSyncStateMetricName,
				Help: "1 for the instance's current sync state, labeled by zone, instance and state; 0 for the others.",
			}, []string{"zone", "instance", "state"}),
			BreakerTripsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: BreakerTripsTotalMetricName,
				Help: "Total times a bind9client or dnsupdate circuit breaker opened, labeled by instance and client kind.",
			}, []string{"instance", "client"}),
		}
		crmetrics.Registry.MustRegister(m.ReconcileTotal, m.ReconcileDuration, m.InstanceSyncState, m.BreakerTripsTotal)
		sharedMetrics = m
	})
	return sharedMetrics
}
