// Package metrics provides Prometheus instrumentation for pipeline components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for pipeline components.
type Registry struct {
	// Pipeline Metrics
	PipelineRuns     *prometheus.CounterVec
	PipelineFailures *prometheus.CounterVec
	StepExecutions   *prometheus.CounterVec
	StepFailures     *prometheus.CounterVec
	StepDuration     *prometheus.HistogramVec

	// Training Metrics
	EpochsRun       *prometheus.CounterVec
	TrainingRuns    *prometheus.CounterVec
	TrainingErrors  *prometheus.CounterVec
	EpochDuration   *prometheus.HistogramVec
	RetrainRuns     *prometheus.CounterVec
	RetrainFailures *prometheus.CounterVec
	RetrainSkipped  *prometheus.CounterVec

	// Checkpoint Metrics
	CheckpointSaves  *prometheus.CounterVec
	CheckpointLoads  *prometheus.CounterVec
	CheckpointErrors *prometheus.CounterVec
	CheckpointBytes  *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by pipeline components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Pipeline Metrics
		PipelineRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "pipeline",
				Name:      "runs_total",
				Help:      "Total number of pipeline runs",
			},
			[]string{"pipeline", "operation"},
		),

		PipelineFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "pipeline",
				Name:      "failures_total",
				Help:      "Total number of failed pipeline runs",
			},
			[]string{"pipeline", "operation"},
		),

		StepExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "step",
				Name:      "executions_total",
				Help:      "Total number of step executions",
			},
			[]string{"pipeline", "step", "operation"},
		),

		StepFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "step",
				Name:      "failures_total",
				Help:      "Total number of failed step executions",
			},
			[]string{"pipeline", "step", "operation"},
		),

		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "neuraxle",
				Subsystem: "step",
				Name:      "duration_seconds",
				Help:      "Time spent executing steps",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pipeline", "step", "operation"},
		),

		// Training Metrics
		EpochsRun: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "training",
				Name:      "epochs_total",
				Help:      "Total number of training epochs run",
			},
			[]string{"trainer"},
		),

		TrainingRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "training",
				Name:      "runs_total",
				Help:      "Total number of training runs",
			},
			[]string{"trainer"},
		),

		TrainingErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "training",
				Name:      "errors_total",
				Help:      "Total number of failed training runs",
			},
			[]string{"trainer"},
		),

		EpochDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "neuraxle",
				Subsystem: "training",
				Name:      "epoch_duration_seconds",
				Help:      "Time spent per training epoch",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"trainer"},
		),

		RetrainRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "retrain",
				Name:      "runs_total",
				Help:      "Total number of scheduled retraining runs",
			},
			[]string{"scheduler"},
		),

		RetrainFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "retrain",
				Name:      "failures_total",
				Help:      "Total number of failed retraining runs",
			},
			[]string{"scheduler"},
		),

		RetrainSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "retrain",
				Name:      "skipped_total",
				Help:      "Total number of retraining runs skipped due to overlap",
			},
			[]string{"scheduler"},
		),

		// Checkpoint Metrics
		CheckpointSaves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "checkpoint",
				Name:      "saves_total",
				Help:      "Total number of container snapshots saved",
			},
			[]string{"store"},
		),

		CheckpointLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "checkpoint",
				Name:      "loads_total",
				Help:      "Total number of container snapshots loaded",
			},
			[]string{"store"},
		),

		CheckpointErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "checkpoint",
				Name:      "errors_total",
				Help:      "Total number of checkpoint store errors",
			},
			[]string{"store"},
		),

		CheckpointBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "neuraxle",
				Subsystem: "checkpoint",
				Name:      "bytes_total",
				Help:      "Total bytes written to checkpoint stores",
			},
			[]string{"store"},
		),
	}
}
