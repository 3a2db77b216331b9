package pipeline

import "time"

// observeStep records per-step Prometheus metrics when enabled.
func (p *Pipeline) observeStep(stepName, operation string, duration time.Duration, err error) {
	reg := p.config.Metrics
	if reg == nil {
		return
	}

	reg.StepDuration.WithLabelValues(p.name, stepName, operation).Observe(duration.Seconds())
	reg.StepExecutions.WithLabelValues(p.name, stepName, operation).Inc()
	if err != nil {
		reg.StepFailures.WithLabelValues(p.name, stepName, operation).Inc()
	}
}

// observeRun records run-level Prometheus metrics when enabled.
func (p *Pipeline) observeRun(operation string, err error) {
	reg := p.config.Metrics
	if reg == nil {
		return
	}

	reg.PipelineRuns.WithLabelValues(p.name, operation).Inc()
	if err != nil {
		reg.PipelineFailures.WithLabelValues(p.name, operation).Inc()
	}
}
