package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// stubExecutor records executions and completes jobs with fixed counts
type stubExecutor struct {
	executed atomic.Int64
	err      error
}

func (e *stubExecutor) Execute(_ context.Context, job *PullJob) error {
	e.executed.Add(1)
	if e.err != nil {
		return e.err
	}
	job.Complete(10, 8, 1, 1)
	return nil
}

// ---------------------------------------------------------------------------
// PullJob Tests
// ---------------------------------------------------------------------------

func TestNewPullJob(t *testing.T) {
	entityType := syncdomain.EntityTypeCustomer
	job := NewPullJob(&entityType, "co_01")

	assert.NotEqual(t, uuid.Nil, job.ID)
	require.NotNil(t, job.EntityType)
	assert.Equal(t, syncdomain.EntityTypeCustomer, *job.EntityType)
	assert.Equal(t, "co_01", job.NinjaCompanyID)
	assert.Equal(t, PullJobStatusPending, job.Status)
	assert.Nil(t, job.StartedAt)
	assert.Nil(t, job.CompletedAt)
}

func TestPullJob_Start(t *testing.T) {
	job := NewPullJob(nil, "")
	job.Error = "previous error"

	job.Start()

	assert.Equal(t, PullJobStatusRunning, job.Status)
	assert.NotNil(t, job.StartedAt)
	assert.Empty(t, job.Error)
}

func TestPullJob_Complete(t *testing.T) {
	tests := []struct {
		name    string
		fetched int
		synced  int
		skipped int
		failed  int
		want    PullJobStatus
	}{
		{"all synced", 10, 10, 0, 0, PullJobStatusSuccess},
		{"skips still succeed", 10, 7, 3, 0, PullJobStatusSuccess},
		{"some failures", 10, 8, 0, 2, PullJobStatusPartial},
		{"everything failed", 10, 0, 0, 10, PullJobStatusFailed},
		{"empty pull", 0, 0, 0, 0, PullJobStatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewPullJob(nil, "")
			job.Start()

			job.Complete(tt.fetched, tt.synced, tt.skipped, tt.failed)

			assert.Equal(t, tt.want, job.Status)
			assert.NotNil(t, job.CompletedAt)
			assert.Equal(t, tt.fetched, job.Fetched)
			assert.Equal(t, tt.synced, job.Synced)
			assert.Equal(t, tt.skipped, job.Skipped)
			assert.Equal(t, tt.failed, job.Failed)
		})
	}
}

func TestPullJob_Fail(t *testing.T) {
	job := NewPullJob(nil, "")
	job.Start()

	job.Fail("connection timeout")

	assert.Equal(t, PullJobStatusFailed, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Equal(t, "connection timeout", job.Error)
}

// ---------------------------------------------------------------------------
// PullSchedulerConfig Tests
// ---------------------------------------------------------------------------

func TestPullSchedulerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PullSchedulerConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *PullSchedulerConfig) {}, false},
		{"zero workers", func(c *PullSchedulerConfig) { c.MaxConcurrentJobs = 0 }, true},
		{"zero timeout", func(c *PullSchedulerConfig) { c.JobTimeout = 0 }, true},
		{"zero queue", func(c *PullSchedulerConfig) { c.QueueSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPullSchedulerConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// PullScheduler Tests
// ---------------------------------------------------------------------------

func TestPullScheduler_SubmitBeforeStart(t *testing.T) {
	scheduler, err := NewPullScheduler(DefaultPullSchedulerConfig(), &stubExecutor{}, newTestLogger())
	require.NoError(t, err)

	_, err = scheduler.SchedulePull(nil, "")

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestPullScheduler_ProcessesJobs(t *testing.T) {
	executor := &stubExecutor{}
	scheduler, err := NewPullScheduler(DefaultPullSchedulerConfig(), executor, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, scheduler.Start(ctx))

	job, err := scheduler.SchedulePull(nil, "")
	require.NoError(t, err)
	require.NotNil(t, job)
	entityType := syncdomain.EntityTypeSalesInvoice
	_, err = scheduler.SchedulePull(&entityType, "co_01")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return executor.executed.Load() == 2
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(stopCtx))

	history := scheduler.GetJobHistory(10)
	require.Len(t, history, 2)
	for _, job := range history {
		assert.Equal(t, PullJobStatusPartial, job.Status)
		assert.Equal(t, 10, job.Fetched)
	}
}

func TestPullScheduler_RecordsFailures(t *testing.T) {
	executor := &stubExecutor{err: errors.New("remote unavailable")}
	scheduler, err := NewPullScheduler(DefaultPullSchedulerConfig(), executor, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, scheduler.Start(ctx))

	_, err = scheduler.SchedulePull(nil, "")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(scheduler.GetJobHistory(1)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, scheduler.Stop(stopCtx))

	history := scheduler.GetJobHistory(1)
	require.Len(t, history, 1)
	assert.Equal(t, PullJobStatusFailed, history[0].Status)
	assert.Equal(t, "remote unavailable", history[0].Error)
}

func TestPullScheduler_QueueFull(t *testing.T) {
	cfg := PullSchedulerConfig{
		MaxConcurrentJobs: 1,
		JobTimeout:        time.Minute,
		QueueSize:         1,
	}

	// Executor that blocks so the queue backs up
	blocker := make(chan struct{})
	executor := blockingExecutor{release: blocker}
	scheduler, err := NewPullScheduler(cfg, executor, newTestLogger())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, scheduler.Start(ctx))
	defer func() {
		close(blocker)
		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		_ = scheduler.Stop(stopCtx)
	}()

	// First job occupies the worker, second fills the queue
	_, err = scheduler.SchedulePull(nil, "")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := scheduler.SchedulePull(nil, "")
		return err == nil
	}, time.Second, 10*time.Millisecond)

	// Queue is now full
	_, err = scheduler.SchedulePull(nil, "")
	assert.ErrorIs(t, err, ErrJobQueueFull)
}

// blockingExecutor holds jobs until released
type blockingExecutor struct {
	release chan struct{}
}

func (e blockingExecutor) Execute(ctx context.Context, job *PullJob) error {
	select {
	case <-e.release:
	case <-ctx.Done():
	}
	job.Complete(0, 0, 0, 0)
	return nil
}
