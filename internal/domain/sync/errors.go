package sync

import "errors"

// ---------------------------------------------------------------------------
// Sync Errors
// ---------------------------------------------------------------------------

var (
	// Configuration errors
	ErrNotConfigured      = errors.New("sync: integration not configured")
	ErrCompanyDisabled    = errors.New("sync: company integration disabled")
	ErrMissingAPIToken    = errors.New("sync: missing API token")
	ErrMissingBaseURL     = errors.New("sync: missing base URL")
	ErrNoCompanyMapping   = errors.New("sync: no company mapping found")
	ErrNoDefaultMapping   = errors.New("sync: no default company mapping configured")
	ErrDirectionDisabled  = errors.New("sync: direction disabled for entity type")
	ErrEntityTypeDisabled = errors.New("sync: entity type disabled")

	// Mapping integrity errors
	ErrMappingInvalidCompany   = errors.New("sync: invalid ERP company")
	ErrMappingInvalidNinjaID   = errors.New("sync: invalid Invoice Ninja company ID")
	ErrMappingDuplicateCompany = errors.New("sync: ERP company already mapped")
	ErrMappingDuplicateNinjaID = errors.New("sync: Invoice Ninja company already mapped")
	ErrMappingMultipleDefaults = errors.New("sync: more than one default mapping enabled")
	ErrMappingNotFound         = errors.New("sync: company mapping not found")

	// Field mapping errors
	ErrMappingFailed       = errors.New("sync: field mapping failed")
	ErrUnknownEntityType   = errors.New("sync: unknown entity type")
	ErrMissingClientLink   = errors.New("sync: document client not linked to remote")
	ErrItemCodeUnavailable = errors.New("sync: could not derive a unique item code")

	// Transport errors
	ErrRequestFailed     = errors.New("sync: remote request failed")
	ErrRemoteUnavailable = errors.New("sync: remote temporarily unavailable")
	ErrInvalidResponse   = errors.New("sync: invalid remote response")
	ErrInvalidSignature  = errors.New("sync: invalid webhook signature")

	// Duplicate handling
	ErrAlreadySynced  = errors.New("sync: record already synced")
	ErrDocumentLocked = errors.New("sync: document locked by another sync worker")

	// Credential errors
	ErrCredentialNotFound = errors.New("sync: company credential not found")

	// Sync log errors
	ErrLogEntryNotFound = errors.New("sync: log entry not found")
)
