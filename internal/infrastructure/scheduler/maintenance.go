package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// MaintenanceConfig
// ---------------------------------------------------------------------------

// MaintenanceConfig holds the periodic trigger intervals
type MaintenanceConfig struct {
	// PullInterval is how often to trigger a full inbound pull
	PullInterval time.Duration
	// CleanupInterval is how often to prune the sync log
	CleanupInterval time.Duration
	// LogRetention is how long closed log entries are kept
	LogRetention time.Duration
	// ReportInterval is how often to send the aggregate report
	ReportInterval time.Duration
	// ReportEnabled toggles the periodic report
	ReportEnabled bool
}

// DefaultMaintenanceConfig returns default trigger intervals
func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{
		PullInterval:    time.Hour,
		CleanupInterval: 24 * time.Hour,
		LogRetention:    30 * 24 * time.Hour,
		ReportInterval:  7 * 24 * time.Hour,
		ReportEnabled:   false,
	}
}

// Validate validates the configuration
func (c *MaintenanceConfig) Validate() error {
	if c.PullInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.CleanupInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.LogRetention <= 0 {
		return ErrInvalidConfig
	}
	if c.ReportEnabled && c.ReportInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// MaintenanceTrigger
// ---------------------------------------------------------------------------

// MaintenanceTrigger drives the periodic work of the bridge: the recurring
// inbound pull, sync log pruning, and the aggregate report.
type MaintenanceTrigger struct {
	config    MaintenanceConfig
	scheduler *PullScheduler
	logs      syncdomain.LogRepository
	notifier  syncdomain.Notifier
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewMaintenanceTrigger creates a new maintenance trigger. The notifier may
// be nil when reporting is disabled.
func NewMaintenanceTrigger(
	config MaintenanceConfig,
	scheduler *PullScheduler,
	logs syncdomain.LogRepository,
	notifier syncdomain.Notifier,
	logger *zap.Logger,
) (*MaintenanceTrigger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &MaintenanceTrigger{
		config:    config,
		scheduler: scheduler,
		logs:      logs,
		notifier:  notifier,
		logger:    logger,
	}, nil
}

// Start starts the trigger loops
func (t *MaintenanceTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.pullLoop(ctx)

	t.wg.Add(1)
	go t.cleanupLoop(ctx)

	if t.config.ReportEnabled && t.notifier != nil {
		t.wg.Add(1)
		go t.reportLoop(ctx)
	}

	t.logger.Info("Maintenance trigger started",
		zap.Duration("pull_interval", t.config.PullInterval),
		zap.Duration("cleanup_interval", t.config.CleanupInterval),
		zap.Duration("log_retention", t.config.LogRetention),
		zap.Bool("report_enabled", t.config.ReportEnabled),
	)

	return nil
}

// Stop stops the trigger loops
func (t *MaintenanceTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Maintenance trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pullLoop queues a full inbound pull on every tick
func (t *MaintenanceTrigger) pullLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.PullInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := t.scheduler.SchedulePull(nil, ""); err != nil {
				t.logger.Warn("Failed to queue scheduled pull", zap.Error(err))
			}
		}
	}
}

// cleanupLoop prunes closed log entries past retention
func (t *MaintenanceTrigger) cleanupLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-t.config.LogRetention)
			pruned, err := t.logs.PruneOlderThan(ctx, cutoff)
			if err != nil {
				t.logger.Error("Sync log pruning failed", zap.Error(err))
				continue
			}
			t.logger.Info("Sync log pruned",
				zap.Int64("pruned", pruned),
				zap.Time("cutoff", cutoff),
			)
		}
	}
}

// reportLoop sends the aggregate report for the past interval
func (t *MaintenanceTrigger) reportLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			since := time.Now().Add(-t.config.ReportInterval)
			stats, err := t.logs.Stats(ctx, since)
			if err != nil {
				t.logger.Error("Report aggregation failed", zap.Error(err))
				continue
			}
			if err := t.notifier.SendReport(ctx, stats); err != nil {
				t.logger.Error("Report delivery failed", zap.Error(err))
				continue
			}
			t.logger.Info("Sync report sent",
				zap.Int64("total", stats.Total),
				zap.Int64("failed", stats.FailedCount),
			)
		}
	}
}
