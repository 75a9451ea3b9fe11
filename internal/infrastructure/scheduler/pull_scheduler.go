package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Pull Job Types
// ---------------------------------------------------------------------------

// PullJobStatus represents the status of an inbound pull job
type PullJobStatus string

const (
	PullJobStatusPending PullJobStatus = "PENDING"
	PullJobStatusRunning PullJobStatus = "RUNNING"
	PullJobStatusSuccess PullJobStatus = "SUCCESS"
	PullJobStatusPartial PullJobStatus = "PARTIAL"
	PullJobStatusFailed  PullJobStatus = "FAILED"
)

// PullJob represents one scheduled inbound pull. A nil EntityType pulls
// every inbound-enabled type; an empty NinjaCompanyID covers every enabled
// mapping.
type PullJob struct {
	ID             uuid.UUID
	EntityType     *syncdomain.EntityType
	NinjaCompanyID string
	Status         PullJobStatus
	Error          string
	StartedAt      *time.Time
	CompletedAt    *time.Time

	// Pull results
	Fetched int
	Synced  int
	Skipped int
	Failed  int
}

// NewPullJob creates a new pull job
func NewPullJob(entityType *syncdomain.EntityType, ninjaCompanyID string) *PullJob {
	return &PullJob{
		ID:             uuid.New(),
		EntityType:     entityType,
		NinjaCompanyID: ninjaCompanyID,
		Status:         PullJobStatusPending,
	}
}

// Start marks the job as running
func (j *PullJob) Start() {
	now := time.Now()
	j.Status = PullJobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete records pull counts and derives the final status
func (j *PullJob) Complete(fetched, synced, skipped, failed int) {
	now := time.Now()
	j.Fetched = fetched
	j.Synced = synced
	j.Skipped = skipped
	j.Failed = failed
	j.CompletedAt = &now

	if failed == 0 {
		j.Status = PullJobStatusSuccess
	} else if synced > 0 || skipped > 0 {
		j.Status = PullJobStatusPartial
	} else {
		j.Status = PullJobStatusFailed
	}
}

// Fail marks the job as failed
func (j *PullJob) Fail(err string) {
	now := time.Now()
	j.Status = PullJobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// scope names the job target for logging
func (j *PullJob) scope() string {
	switch {
	case j.EntityType != nil && j.NinjaCompanyID != "":
		return j.EntityType.String() + "@" + j.NinjaCompanyID
	case j.EntityType != nil:
		return j.EntityType.String()
	case j.NinjaCompanyID != "":
		return "all@" + j.NinjaCompanyID
	default:
		return "all"
	}
}

// ---------------------------------------------------------------------------
// PullExecutor Interface
// ---------------------------------------------------------------------------

// PullExecutor executes inbound pull jobs
type PullExecutor interface {
	// Execute pulls remote records and records the result on the job
	Execute(ctx context.Context, job *PullJob) error
}

// ---------------------------------------------------------------------------
// PullSchedulerConfig
// ---------------------------------------------------------------------------

// PullSchedulerConfig holds configuration for the pull scheduler
type PullSchedulerConfig struct {
	// MaxConcurrentJobs is the maximum number of concurrent pull jobs
	MaxConcurrentJobs int
	// JobTimeout is the maximum time a job can run
	JobTimeout time.Duration
	// QueueSize is the capacity of the job queue
	QueueSize int
}

// DefaultPullSchedulerConfig returns default configuration
func DefaultPullSchedulerConfig() PullSchedulerConfig {
	return PullSchedulerConfig{
		MaxConcurrentJobs: 3,
		JobTimeout:        30 * time.Minute,
		QueueSize:         100,
	}
}

// Validate validates the configuration
func (c *PullSchedulerConfig) Validate() error {
	if c.MaxConcurrentJobs <= 0 {
		return ErrInvalidConfig
	}
	if c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.QueueSize <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// PullScheduler
// ---------------------------------------------------------------------------

// PullScheduler manages queued inbound pull jobs over a worker pool
type PullScheduler struct {
	config   PullSchedulerConfig
	executor PullExecutor
	logger   *zap.Logger

	jobs      chan *PullJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// Job history for monitoring (in-memory, limited size)
	historyMu  sync.RWMutex
	history    []*PullJob
	maxHistory int
}

// NewPullScheduler creates a new pull scheduler
func NewPullScheduler(config PullSchedulerConfig, executor PullExecutor, logger *zap.Logger) (*PullScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PullScheduler{
		config:     config,
		executor:   executor,
		logger:     logger,
		jobs:       make(chan *PullJob, config.QueueSize),
		history:    make([]*PullJob, 0, 100),
		maxHistory: 100,
	}, nil
}

// Start starts the scheduler
func (s *PullScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Pull scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *PullScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	close(s.jobs)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Pull scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Pull scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob submits a job for execution
func (s *PullScheduler) SubmitJob(job *PullJob) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	select {
	case s.jobs <- job:
		s.logger.Debug("Pull job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("scope", job.scope()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// SchedulePull queues a pull for one entity type and company. Pass nil and
// an empty company ID to pull everything.
func (s *PullScheduler) SchedulePull(entityType *syncdomain.EntityType, ninjaCompanyID string) (*PullJob, error) {
	job := NewPullJob(entityType, ninjaCompanyID)
	if err := s.SubmitJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

// worker processes jobs from the queue
func (s *PullScheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	s.logger.Debug("Pull worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Pull worker stopping", zap.Int("worker_id", workerID))
			return
		case job, ok := <-s.jobs:
			if !ok {
				s.logger.Debug("Pull job channel closed", zap.Int("worker_id", workerID))
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single job
func (s *PullScheduler) processJob(ctx context.Context, job *PullJob, workerID int) {
	job.Start()
	s.logger.Info("Processing pull job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("scope", job.scope()),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.executor.Execute(jobCtx, job); err != nil {
		job.Fail(err.Error())
		s.logger.Error("Pull job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("scope", job.scope()),
			zap.Error(err),
		)
		s.addToHistory(job)
		return
	}

	s.logger.Info("Pull job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("scope", job.scope()),
		zap.String("status", string(job.Status)),
		zap.Int("fetched", job.Fetched),
		zap.Int("synced", job.Synced),
		zap.Int("skipped", job.Skipped),
		zap.Int("failed", job.Failed),
	)

	s.addToHistory(job)
}

// addToHistory adds a completed job to history
func (s *PullScheduler) addToHistory(job *PullJob) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	s.history = append([]*PullJob{job}, s.history...)

	if len(s.history) > s.maxHistory {
		s.history = s.history[:s.maxHistory]
	}
}

// GetJobHistory returns recent job history, newest first
func (s *PullScheduler) GetJobHistory(limit int) []*PullJob {
	s.historyMu.RLock()
	defer s.historyMu.RUnlock()

	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}

	result := make([]*PullJob, limit)
	copy(result, s.history[:limit])
	return result
}
