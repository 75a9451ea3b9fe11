package scheduler

import (
	"context"

	"go.uber.org/zap"

	appsync "github.com/novizna/ninjasync/internal/application/sync"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// DocumentPuller Interface
// ---------------------------------------------------------------------------

// DocumentPuller is the slice of the sync orchestrator the executor needs
type DocumentPuller interface {
	// PullEntityForCompany pulls all records of one entity type from one
	// remote company
	PullEntityForCompany(ctx context.Context, entityType syncdomain.EntityType, ninjaCompanyID string) (*appsync.PullResult, error)

	// PullAll pulls every inbound-enabled entity type across every enabled
	// mapping
	PullAll(ctx context.Context) []appsync.PullResult
}

// ---------------------------------------------------------------------------
// PullExecutorImpl
// ---------------------------------------------------------------------------

// PullExecutorImpl implements PullExecutor over the sync orchestrator
type PullExecutorImpl struct {
	puller DocumentPuller
	logger *zap.Logger
}

// NewPullExecutor creates a new pull executor
func NewPullExecutor(puller DocumentPuller, logger *zap.Logger) *PullExecutorImpl {
	return &PullExecutorImpl{
		puller: puller,
		logger: logger,
	}
}

// Execute runs the pull the job describes and records the aggregated counts
// on the job.
func (e *PullExecutorImpl) Execute(ctx context.Context, job *PullJob) error {
	if job.EntityType != nil && job.NinjaCompanyID != "" {
		result, err := e.puller.PullEntityForCompany(ctx, *job.EntityType, job.NinjaCompanyID)
		if err != nil {
			if result != nil {
				job.Complete(result.Fetched, result.Synced, result.Skipped, result.Failed)
			}
			return err
		}
		job.Complete(result.Fetched, result.Synced, result.Skipped, result.Failed)
		return nil
	}

	results := e.puller.PullAll(ctx)

	var fetched, synced, skipped, failed int
	for _, r := range results {
		fetched += r.Fetched
		synced += r.Synced
		skipped += r.Skipped
		failed += r.Failed
	}
	job.Complete(fetched, synced, skipped, failed)
	return nil
}

// Ensure PullExecutorImpl implements PullExecutor
var _ PullExecutor = (*PullExecutorImpl)(nil)
