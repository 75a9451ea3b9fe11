package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when a webhook signature is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used when a mapping collides with the stored set
	ErrCodeConflict = "ERR_CONFLICT"
)

// Sync error codes
const (
	// ErrCodeSyncDisabled is used when the entity type or direction is gated off
	ErrCodeSyncDisabled = "ERR_SYNC_DISABLED"
	// ErrCodeNoMapping is used when no company mapping can route a document
	ErrCodeNoMapping = "ERR_NO_MAPPING"
	// ErrCodeNotConfigured is used when required credentials are missing
	ErrCodeNotConfigured = "ERR_NOT_CONFIGURED"
	// ErrCodeAlreadySynced is used when a record is already mirrored locally
	ErrCodeAlreadySynced = "ERR_ALREADY_SYNCED"
	// ErrCodeDocumentLocked is used when another worker holds the document lock
	ErrCodeDocumentLocked = "ERR_DOCUMENT_LOCKED"
	// ErrCodeRemoteFailed is used when the remote API call failed
	ErrCodeRemoteFailed = "ERR_REMOTE_FAILED"
	// ErrCodeQueueFull is used when the pull scheduler queue is saturated
	ErrCodeQueueFull = "ERR_QUEUE_FULL"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeSyncDisabled:   http.StatusUnprocessableEntity,
	ErrCodeNoMapping:      http.StatusUnprocessableEntity,
	ErrCodeNotConfigured:  http.StatusUnprocessableEntity,
	ErrCodeAlreadySynced:  http.StatusConflict,
	ErrCodeDocumentLocked: http.StatusConflict,
	ErrCodeRemoteFailed:   http.StatusBadGateway,
	ErrCodeQueueFull:      http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
