package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetricsCollector counts what the tick processors did
type SimulationMetricsCollector struct {
	entitiesProcessed *prometheus.CounterVec
	unitsProduced     *prometheus.CounterVec
	workerEvents      *prometheus.CounterVec
	balanceDebited    *prometheus.CounterVec
}

// NewSimulationMetricsCollector creates a new simulation metrics collector
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		entitiesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "entities_processed_total",
				Help:      "Entities handled by each processor, by outcome",
			},
			[]string{"processor", "outcome"},
		),
		unitsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "units_produced_total",
				Help:      "Goods credited to stock by production source (npc, player)",
			},
			[]string{"source"},
		),
		workerEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "worker_events_total",
				Help:      "Worker lifecycle events (injured, died, purged, generated)",
			},
			[]string{"event"},
		),
		balanceDebited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "balance_debited_total",
				Help:      "Money removed from company balances by transaction type",
			},
			[]string{"transaction_type"},
		),
	}
}

// Register registers all simulation metrics with the Prometheus registry
func (c *SimulationMetricsCollector) Register() error {
	return register(c.entitiesProcessed, c.unitsProduced, c.workerEvents, c.balanceDebited)
}

func (c *SimulationMetricsCollector) RecordProcessed(processor, outcome string, n int) {
	c.entitiesProcessed.WithLabelValues(processor, outcome).Add(float64(n))
}

func (c *SimulationMetricsCollector) RecordUnitsProduced(source string, n int) {
	c.unitsProduced.WithLabelValues(source).Add(float64(n))
}

func (c *SimulationMetricsCollector) RecordWorkerEvent(event string, n int) {
	c.workerEvents.WithLabelValues(event).Add(float64(n))
}

func (c *SimulationMetricsCollector) RecordBalanceDebit(transactionType string, amount float64) {
	c.balanceDebited.WithLabelValues(transactionType).Add(amount)
}
