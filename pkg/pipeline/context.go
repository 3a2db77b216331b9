package pipeline

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExecutionMode distinguishes training runs from test/inference runs.
type ExecutionMode int

const (
	// ModeTrain marks a training run.
	ModeTrain ExecutionMode = iota

	// ModeTest marks a test or inference run.
	ModeTest
)

// String returns the mode name.
func (m ExecutionMode) String() string {
	switch m {
	case ModeTrain:
		return "train"
	case ModeTest:
		return "test"
	default:
		return "unknown"
	}
}

// ExecutionContext carries run-scoped state through a pipeline execution.
// It is passed alongside context.Context, which governs cancellation.
type ExecutionContext struct {
	// Mode selects train or test behavior for mode-sensitive steps.
	Mode ExecutionMode

	// RunID identifies this pipeline run.
	RunID string

	// Logger receives step-level progress. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// NewExecutionContext creates a train-mode context with a fresh run ID
// and a no-op logger.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{
		Mode:   ModeTrain,
		RunID:  uuid.NewString(),
		Logger: zerolog.Nop(),
	}
}

// WithMode returns a copy of the context with the given mode.
func (ec *ExecutionContext) WithMode(mode ExecutionMode) *ExecutionContext {
	cp := *ec
	cp.Mode = mode
	return &cp
}

// WithLogger returns a copy of the context with the given logger.
func (ec *ExecutionContext) WithLogger(logger zerolog.Logger) *ExecutionContext {
	cp := *ec
	cp.Logger = logger
	return &cp
}

// IsTrain reports whether the context is in training mode.
func (ec *ExecutionContext) IsTrain() bool {
	return ec.Mode == ModeTrain
}
