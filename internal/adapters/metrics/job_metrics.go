package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetricsCollector observes scheduler job runs
type JobMetricsCollector struct {
	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
	jobsRunning *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
}

// NewJobMetricsCollector creates a new job metrics collector
func NewJobMetricsCollector() *JobMetricsCollector {
	return &JobMetricsCollector{
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_runs_total",
				Help:      "Scheduler job runs by job and status",
			},
			[]string{"job", "status"},
		),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_duration_seconds",
				Help:      "Scheduler job run duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"job"},
		),
		jobsRunning: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_running",
				Help:      "1 while the job is executing",
			},
			[]string{"job"},
		),
		lastSuccess: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "job_last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run",
			},
			[]string{"job"},
		),
	}
}

// Register registers all job metrics with the Prometheus registry
func (c *JobMetricsCollector) Register() error {
	return register(c.jobRuns, c.jobDuration, c.jobsRunning, c.lastSuccess)
}

// JobStarted marks the job as running
func (c *JobMetricsCollector) JobStarted(name string) {
	c.jobsRunning.WithLabelValues(name).Set(1)
}

// JobFinished records the outcome and duration of a run
func (c *JobMetricsCollector) JobFinished(name string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	} else {
		c.lastSuccess.WithLabelValues(name).SetToCurrentTime()
	}
	c.jobsRunning.WithLabelValues(name).Set(0)
	c.jobRuns.WithLabelValues(name, status).Inc()
	c.jobDuration.WithLabelValues(name).Observe(duration.Seconds())
}
