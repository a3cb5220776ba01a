package tasks_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/castwatch/internal/app/system/tasks"
	"go.uber.org/zap"
)

func TestRunner_StartAndStop(t *testing.T) {
	logger := zap.NewNop()
	runner := tasks.New(logger)

	var runCount atomic.Int32
	runner.Register(tasks.Job{
		Name:     "test-job",
		Interval: 100 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runCount.Add(1)
			return nil
		},
	})

	runner.Start()

	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := runner.Stop(ctx); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}

	// Jobs run once immediately on start.
	if runCount.Load() < 1 {
		t.Errorf("expected job to run at least once, ran %d times", runCount.Load())
	}
}

func TestRunner_StopWithTimeout(t *testing.T) {
	logger := zap.NewNop()
	runner := tasks.New(logger)

	inSleep := make(chan struct{})
	runner.Register(tasks.Job{
		Name:     "slow-job",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			close(inSleep)
			// A job that ignores its context; Stop must time out rather
			// than hang.
			time.Sleep(5 * time.Second)
			return nil
		},
	})

	runner.Start()
	<-inSleep
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := runner.Stop(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded error, got: %v", err)
	}
}

func TestRunner_RunOnce(t *testing.T) {
	logger := zap.NewNop()
	runner := tasks.New(logger)

	var ran atomic.Bool
	runner.Register(tasks.Job{
		Name:     "manual-job",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			ran.Store(true)
			return nil
		},
	})

	if err := runner.RunOnce(context.Background(), "manual-job"); err != nil {
		t.Errorf("RunOnce() error = %v", err)
	}
	if !ran.Load() {
		t.Error("RunOnce() did not execute the job")
	}

	// Unknown names are a no-op.
	if err := runner.RunOnce(context.Background(), "missing"); err != nil {
		t.Errorf("RunOnce(missing) error = %v", err)
	}
}
