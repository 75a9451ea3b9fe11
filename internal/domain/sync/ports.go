package sync

import (
	"context"
	"encoding/json"
)

// ---------------------------------------------------------------------------
// EntityFetcher Port Interface
// ---------------------------------------------------------------------------

// FetchResult is one page of remote records of a single entity type.
type FetchResult struct {
	// EntityType is the document type fetched
	EntityType EntityType
	// NinjaCompanyID is the remote company the records belong to
	NinjaCompanyID string
	// Records are the raw remote records
	Records []json.RawMessage
	// Page is the page that was fetched (1-indexed)
	Page int
	// HasMore indicates another page exists
	HasMore bool
}

// EntityFetcher is the read-only preview port over the remote API. It never
// writes to the local store; callers inspect the returned records.
type EntityFetcher interface {
	// FetchEntitiesForCompany fetches one page of records for a single
	// remote company
	FetchEntitiesForCompany(ctx context.Context, ninjaCompanyID string, entityType EntityType, page, perPage int) (*FetchResult, error)

	// FetchEntitiesForMappedCompanies fetches the first page for every
	// enabled mapping. One company failing never blocks the others; failed
	// companies are absent from the result.
	FetchEntitiesForMappedCompanies(ctx context.Context, entityType EntityType, perPage int) (map[string]*FetchResult, error)

	// FetchEntityByID fetches a single remote record
	FetchEntityByID(ctx context.Context, ninjaCompanyID string, entityType EntityType, remoteID string) (json.RawMessage, error)
}

// ---------------------------------------------------------------------------
// DocumentLocker Port Interface
// ---------------------------------------------------------------------------

// DocumentLock is a held per-document lock.
type DocumentLock interface {
	// Release releases the lock
	Release(ctx context.Context) error
}

// DocumentLocker serializes sync attempts per document. The outbound
// create path acquires the lock around its check-then-create sequence so
// concurrent workers cannot both miss the external ID and create twice.
type DocumentLocker interface {
	// Acquire takes the lock for a document, returning ErrDocumentLocked
	// when another worker holds it
	Acquire(ctx context.Context, entityType EntityType, documentRef string) (DocumentLock, error)
}

// ---------------------------------------------------------------------------
// Notifier Port Interface
// ---------------------------------------------------------------------------

// Notifier delivers sync failure alerts and periodic reports.
type Notifier interface {
	// NotifyFailure sends an alert for a failed sync attempt
	NotifyFailure(ctx context.Context, entry *LogEntry) error

	// SendReport sends an aggregate sync report
	SendReport(ctx context.Context, stats *LogStats) error
}
