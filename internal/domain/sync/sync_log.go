package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// LogStatus represents the outcome recorded for a sync attempt
// ---------------------------------------------------------------------------

// LogStatus represents the outcome recorded for a sync attempt.
type LogStatus string

const (
	// LogStatusInProgress indicates the attempt has started
	LogStatusInProgress LogStatus = "IN_PROGRESS"
	// LogStatusSuccess indicates the attempt completed
	LogStatusSuccess LogStatus = "SUCCESS"
	// LogStatusFailed indicates the attempt failed
	LogStatusFailed LogStatus = "FAILED"
	// LogStatusSkipped indicates the attempt was skipped as a duplicate
	LogStatusSkipped LogStatus = "SKIPPED"
)

// IsValid returns true if the status is valid
func (s LogStatus) IsValid() bool {
	switch s {
	case LogStatusInProgress, LogStatusSuccess, LogStatusFailed, LogStatusSkipped:
		return true
	default:
		return false
	}
}

// String returns the string representation of LogStatus
func (s LogStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// LogEntry Entity
// ---------------------------------------------------------------------------

// LogEntry is the audit trail of a single sync attempt. The log is written
// for observability only; sync decisions never read it.
type LogEntry struct {
	// ID is the unique identifier of this entry
	ID uuid.UUID
	// EntityType is the document type that was synced
	EntityType EntityType
	// Direction is the flow of the attempt
	Direction Direction
	// DocumentRef identifies the local document (name/code), if any
	DocumentRef string
	// RemoteID identifies the remote record, if any
	RemoteID string
	// ERPCompany is the local company the attempt ran under
	ERPCompany string
	// NinjaCompanyID is the remote company the attempt ran against
	NinjaCompanyID string
	// Status is the recorded outcome
	Status LogStatus
	// Message carries the error or skip reason
	Message string
	// DurationMs is how long the attempt took
	DurationMs int64
	// CreatedAt is when the attempt started
	CreatedAt time.Time
	// UpdatedAt is when the entry was last updated
	UpdatedAt time.Time
}

// NewLogEntry opens a log entry for a sync attempt
func NewLogEntry(entityType EntityType, direction Direction, documentRef string) *LogEntry {
	now := time.Now()
	return &LogEntry{
		ID:          uuid.New(),
		EntityType:  entityType,
		Direction:   direction,
		DocumentRef: documentRef,
		Status:      LogStatusInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Complete closes the entry as successful
func (e *LogEntry) Complete(remoteID string) {
	now := time.Now()
	e.Status = LogStatusSuccess
	e.RemoteID = remoteID
	e.DurationMs = now.Sub(e.CreatedAt).Milliseconds()
	e.UpdatedAt = now
}

// Fail closes the entry as failed
func (e *LogEntry) Fail(message string) {
	now := time.Now()
	e.Status = LogStatusFailed
	e.Message = message
	e.DurationMs = now.Sub(e.CreatedAt).Milliseconds()
	e.UpdatedAt = now
}

// Skip closes the entry as a duplicate skip
func (e *LogEntry) Skip(reason string) {
	now := time.Now()
	e.Status = LogStatusSkipped
	e.Message = reason
	e.DurationMs = now.Sub(e.CreatedAt).Milliseconds()
	e.UpdatedAt = now
}

// ---------------------------------------------------------------------------
// LogRepository Interface
// ---------------------------------------------------------------------------

// LogFilter defines filter criteria for listing log entries
type LogFilter struct {
	// EntityType filters by document type (optional)
	EntityType *EntityType
	// Direction filters by flow (optional)
	Direction *Direction
	// Status filters by outcome (optional)
	Status *LogStatus
	// ERPCompany filters by local company (optional)
	ERPCompany string
	// Limit caps the number of entries returned (default 50)
	Limit int
}

// LogStats aggregates sync outcomes over a window
type LogStats struct {
	// Since is the start of the aggregation window
	Since time.Time
	// Total is the number of closed attempts in the window
	Total int64
	// SuccessCount is the number of successful attempts
	SuccessCount int64
	// FailedCount is the number of failed attempts
	FailedCount int64
	// SkippedCount is the number of duplicate skips
	SkippedCount int64
	// ByEntityType breaks the total down per document type
	ByEntityType map[EntityType]int64
}

// LogRepository defines the interface for sync log persistence
type LogRepository interface {
	// Create opens a new log entry
	Create(ctx context.Context, entry *LogEntry) error

	// Update records the final outcome of an entry
	Update(ctx context.Context, entry *LogEntry) error

	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*LogEntry, error)

	// ListRecent returns the most recent entries matching the filter,
	// newest first
	ListRecent(ctx context.Context, filter LogFilter) ([]LogEntry, error)

	// Stats aggregates outcomes since the given time
	Stats(ctx context.Context, since time.Time) (*LogStats, error)

	// PruneOlderThan deletes entries created before the cutoff and returns
	// the number deleted
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
