package training

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/knowater521/Neuraxle/internal/testutil"
	"github.com/knowater521/Neuraxle/pkg/data"
	"github.com/knowater521/Neuraxle/pkg/pipeline"
)

func floatSource(n int) Source {
	return func(ctx context.Context) (*data.Container, error) {
		return testutil.FloatContainer(n), nil
	}
}

func TestNewRetrainSchedulerValidation(t *testing.T) {
	trainer := New(&fittableModel{})

	_, err := NewRetrainScheduler(nil, floatSource(5), SchedulerConfig{Interval: time.Second})
	testutil.AssertError(t, err)

	_, err = NewRetrainScheduler(trainer, nil, SchedulerConfig{Interval: time.Second})
	testutil.AssertError(t, err)

	_, err = NewRetrainScheduler(trainer, floatSource(5), SchedulerConfig{})
	testutil.AssertError(t, err)

	_, err = NewRetrainScheduler(trainer, floatSource(5), SchedulerConfig{CronExpr: "not a cron"})
	testutil.AssertError(t, err)
}

func TestRetrainSchedulerCronNextRun(t *testing.T) {
	trainer := New(&fittableModel{})
	s, err := NewRetrainScheduler(trainer, floatSource(5), SchedulerConfig{
		CronExpr: "0 0 3 * * *",
		Location: time.UTC,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Start())
	defer func() { <-s.Stop() }()

	next := s.NextRun()
	testutil.AssertEqual(t, next.Hour(), 3)
	testutil.AssertEqual(t, next.Minute(), 0)
}

func TestRetrainSchedulerRunsOnInterval(t *testing.T) {
	model := &fittableModel{}
	s, err := NewRetrainScheduler(New(model), floatSource(5), SchedulerConfig{
		Interval:     20 * time.Millisecond,
		TickInterval: 5 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Start())
	defer func() { <-s.Stop() }()

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return model.fitCount() >= 2
	})
	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		return s.LastReport() != nil
	})
	testutil.AssertEqual(t, s.LastReport().Epochs, 1)
}

func TestRetrainSchedulerDoubleStart(t *testing.T) {
	s, err := NewRetrainScheduler(New(&fittableModel{}), floatSource(5), SchedulerConfig{
		Interval: time.Minute,
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.Start())
	testutil.AssertError(t, s.Start())
	<-s.Stop()
}

func TestRetrainSchedulerStopWaitsForRun(t *testing.T) {
	release := make(chan struct{})
	var fitted atomic.Bool

	blockingModel := &blockingStep{release: release, fitted: &fitted}
	s, err := NewRetrainScheduler(New(blockingModel), floatSource(5), SchedulerConfig{
		Interval:     10 * time.Millisecond,
		TickInterval: 5 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Start())

	testutil.Eventually(t, testutil.TestTimeout, func() bool { return fitted.Load() })

	stopped := s.Stop()
	select {
	case <-stopped:
		t.Fatal("Stop must wait for the in-flight run")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(testutil.TestTimeout):
		t.Fatal("Stop never completed after the run finished")
	}
}

func TestRetrainSchedulerSkipsOverlappingRuns(t *testing.T) {
	release := make(chan struct{})
	var fitted atomic.Bool
	var concurrent, maxConcurrent atomic.Int32

	model := &blockingStep{
		release: release,
		fitted:  &fitted,
		onFit: func() func() {
			n := concurrent.Add(1)
			for {
				seen := maxConcurrent.Load()
				if n <= seen || maxConcurrent.CompareAndSwap(seen, n) {
					break
				}
			}
			return func() { concurrent.Add(-1) }
		},
	}

	s, err := NewRetrainScheduler(New(model), floatSource(5), SchedulerConfig{
		Interval:     10 * time.Millisecond,
		TickInterval: 5 * time.Millisecond,
	})
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Start())

	testutil.Eventually(t, testutil.TestTimeout, func() bool { return fitted.Load() })
	// Give several triggers a chance to fire while the run is blocked.
	time.Sleep(60 * time.Millisecond)

	close(release)
	<-s.Stop()

	testutil.AssertEqual(t, maxConcurrent.Load(), int32(1))
}

// blockingStep blocks every fit until release is closed.
type blockingStep struct {
	pipeline.NonTransformable

	release chan struct{}
	fitted  *atomic.Bool
	onFit   func() func()
}

func (s *blockingStep) Name() string { return "blocking" }

func (s *blockingStep) Fit(ctx context.Context, dc *data.Container, ec *pipeline.ExecutionContext) error {
	if s.onFit != nil {
		done := s.onFit()
		defer done()
	}
	s.fitted.Store(true)
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
