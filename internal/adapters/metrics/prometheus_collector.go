package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "carrierplus"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSimulationCollector is the singleton simulation metrics collector.
	// Set by SetGlobalSimulationCollector() when metrics are enabled.
	globalSimulationCollector SimulationRecorder
)

// SimulationRecorder defines the interface for recording simulation outcomes.
// Command handlers report through the package-level Record functions.
type SimulationRecorder interface {
	RecordProcessed(processor, outcome string, n int)
	RecordUnitsProduced(source string, n int)
	RecordWorkerEvent(event string, n int)
	RecordBalanceDebit(transactionType string, amount float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSimulationCollector sets the global simulation collector
func SetGlobalSimulationCollector(collector SimulationRecorder) {
	globalSimulationCollector = collector
}

// RecordProcessed counts entities a processor handled with the given outcome
func RecordProcessed(processor, outcome string, n int) {
	if globalSimulationCollector != nil && n > 0 {
		globalSimulationCollector.RecordProcessed(processor, outcome, n)
	}
}

// RecordUnitsProduced counts goods credited by production
func RecordUnitsProduced(source string, n int) {
	if globalSimulationCollector != nil && n > 0 {
		globalSimulationCollector.RecordUnitsProduced(source, n)
	}
}

// RecordWorkerEvent counts worker lifecycle events
func RecordWorkerEvent(event string, n int) {
	if globalSimulationCollector != nil && n > 0 {
		globalSimulationCollector.RecordWorkerEvent(event, n)
	}
}

// RecordBalanceDebit adds an amount removed from company balances
func RecordBalanceDebit(transactionType string, amount float64) {
	if globalSimulationCollector != nil && amount > 0 {
		globalSimulationCollector.RecordBalanceDebit(transactionType, amount)
	}
}

func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil // Metrics not enabled
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}
