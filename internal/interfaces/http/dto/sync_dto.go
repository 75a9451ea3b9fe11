package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Company mapping DTOs
// ---------------------------------------------------------------------------

// MappingRequest is the create/update payload for a company mapping
type MappingRequest struct {
	ERPCompany       string `json:"erp_company" binding:"required"`
	NinjaCompanyID   string `json:"ninja_company_id" binding:"required"`
	NinjaCompanyName string `json:"ninja_company_name"`
	Enabled          *bool  `json:"enabled"`
	IsDefault        bool   `json:"is_default"`
}

// MappingResponse represents a company mapping
type MappingResponse struct {
	ID               string    `json:"id"`
	ERPCompany       string    `json:"erp_company"`
	NinjaCompanyID   string    `json:"ninja_company_id"`
	NinjaCompanyName string    `json:"ninja_company_name,omitempty"`
	Enabled          bool      `json:"enabled"`
	IsDefault        bool      `json:"is_default"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MappingResponseFromDomain converts a domain mapping to its response form
func MappingResponseFromDomain(m *syncdomain.CompanyMapping) MappingResponse {
	return MappingResponse{
		ID:               m.ID.String(),
		ERPCompany:       m.ERPCompany,
		NinjaCompanyID:   m.NinjaCompanyID,
		NinjaCompanyName: m.NinjaCompanyName,
		Enabled:          m.Enabled,
		IsDefault:        m.IsDefault,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// Company credential DTOs
// ---------------------------------------------------------------------------

// CredentialRequest is the update payload for a company credential. The
// token is write-only; an empty token leaves the stored one untouched.
type CredentialRequest struct {
	APIToken string `json:"api_token"`
	BaseURL  string `json:"base_url"`
	Enabled  *bool  `json:"enabled"`
}

// CredentialResponse represents a company credential with the token masked
type CredentialResponse struct {
	ID               string     `json:"id"`
	NinjaCompanyID   string     `json:"ninja_company_id"`
	CompanyName      string     `json:"company_name"`
	BaseURL          string     `json:"base_url"`
	APIToken         string     `json:"api_token"`
	Enabled          bool       `json:"enabled"`
	ConnectionStatus string     `json:"connection_status"`
	LastSyncAt       *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CredentialResponseFromDomain converts a credential to its response form.
// Tokens never leave the service in clear; only the last four characters show.
func CredentialResponseFromDomain(c *syncdomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:               c.ID.String(),
		NinjaCompanyID:   c.NinjaCompanyID,
		CompanyName:      c.CompanyName,
		BaseURL:          c.BaseURL,
		APIToken:         MaskToken(c.APIToken),
		Enabled:          c.Enabled,
		ConnectionStatus: c.ConnectionStatus.String(),
		LastSyncAt:       c.LastSyncAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// MaskToken hides all but the last four characters of a token
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

// ---------------------------------------------------------------------------
// Sync trigger DTOs
// ---------------------------------------------------------------------------

// SyncDocumentRequest triggers an outbound sync of one local document
type SyncDocumentRequest struct {
	EntityType  string `json:"entity_type" binding:"required"`
	DocumentRef string `json:"document" binding:"required"`
}

// SyncRecordRequest triggers an inbound sync of one remote record
type SyncRecordRequest struct {
	EntityType     string `json:"entity_type" binding:"required"`
	NinjaCompanyID string `json:"ninja_company_id" binding:"required"`
	RemoteID       string `json:"remote_id" binding:"required"`
}

// PullRequest schedules a bulk pull. Empty fields widen the scope: no
// entity type means every inbound-enabled type, no company means every
// enabled mapping.
type PullRequest struct {
	EntityType     string `json:"entity_type"`
	NinjaCompanyID string `json:"ninja_company_id"`
}

// PullJobResponse describes a scheduled or finished pull job
type PullJobResponse struct {
	ID          string     `json:"id"`
	EntityType  string     `json:"entity_type,omitempty"`
	CompanyID   string     `json:"ninja_company_id,omitempty"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Fetched     int        `json:"fetched"`
	Synced      int        `json:"synced"`
	Skipped     int        `json:"skipped"`
	Failed      int        `json:"failed"`
}

// ---------------------------------------------------------------------------
// Sync log DTOs
// ---------------------------------------------------------------------------

// LogListRequest carries the sync log list filters
type LogListRequest struct {
	EntityType string `form:"entity_type"`
	Direction  string `form:"direction"`
	Status     string `form:"status"`
	ERPCompany string `form:"erp_company"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

// LogEntryResponse represents one sync log entry
type LogEntryResponse struct {
	ID             string    `json:"id"`
	EntityType     string    `json:"entity_type"`
	Direction      string    `json:"direction"`
	DocumentRef    string    `json:"document,omitempty"`
	RemoteID       string    `json:"remote_id,omitempty"`
	ERPCompany     string    `json:"erp_company,omitempty"`
	NinjaCompanyID string    `json:"ninja_company_id,omitempty"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// LogEntryResponseFromDomain converts a log entry to its response form
func LogEntryResponseFromDomain(e *syncdomain.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:             e.ID.String(),
		EntityType:     e.EntityType.String(),
		Direction:      e.Direction.String(),
		DocumentRef:    e.DocumentRef,
		RemoteID:       e.RemoteID,
		ERPCompany:     e.ERPCompany,
		NinjaCompanyID: e.NinjaCompanyID,
		Status:         e.Status.String(),
		Message:        e.Message,
		DurationMs:     e.DurationMs,
		CreatedAt:      e.CreatedAt,
	}
}

// StatsResponse aggregates sync outcomes over a window
type StatsResponse struct {
	Since        time.Time        `json:"since"`
	Total        int64            `json:"total"`
	Success      int64            `json:"success"`
	Failed       int64            `json:"failed"`
	Skipped      int64            `json:"skipped"`
	ByEntityType map[string]int64 `json:"by_entity_type"`
}

// StatsResponseFromDomain converts log stats to their response form
func StatsResponseFromDomain(s *syncdomain.LogStats) StatsResponse {
	byType := make(map[string]int64, len(s.ByEntityType))
	for t, n := range s.ByEntityType {
		byType[t.String()] = n
	}
	return StatsResponse{
		Since:        s.Since,
		Total:        s.Total,
		Success:      s.SuccessCount,
		Failed:       s.FailedCount,
		Skipped:      s.SkippedCount,
		ByEntityType: byType,
	}
}

// ---------------------------------------------------------------------------
// Fetch preview DTOs
// ---------------------------------------------------------------------------

// FetchRequest carries the remote fetch preview parameters. An empty
// ninja_company_id fetches the first page from every mapped company.
type FetchRequest struct {
	EntityType     string `form:"entity_type" binding:"required"`
	NinjaCompanyID string `form:"ninja_company_id"`
	Page           int    `form:"page" binding:"omitempty,min=1"`
	PerPage        int    `form:"per_page" binding:"omitempty,min=1,max=200"`
}

// FetchResultResponse is one page of raw remote records
type FetchResultResponse struct {
	EntityType     string            `json:"entity_type"`
	NinjaCompanyID string            `json:"ninja_company_id"`
	Records        []json.RawMessage `json:"records"`
	Page           int               `json:"page"`
	HasMore        bool              `json:"has_more"`
}

// FetchResultResponseFromDomain converts a fetch result to its response form
func FetchResultResponseFromDomain(r *syncdomain.FetchResult) FetchResultResponse {
	records := r.Records
	if records == nil {
		records = []json.RawMessage{}
	}
	return FetchResultResponse{
		EntityType:     r.EntityType.String(),
		NinjaCompanyID: r.NinjaCompanyID,
		Records:        records,
		Page:           r.Page,
		HasMore:        r.HasMore,
	}
}

// ---------------------------------------------------------------------------
// Webhook DTOs
// ---------------------------------------------------------------------------

// WebhookRequest is the Invoice Ninja webhook payload
type WebhookRequest struct {
	EventType  string      `json:"event_type" binding:"required"`
	EntityType string      `json:"entity_type" binding:"required"`
	Data       WebhookData `json:"data" binding:"required"`
}

// WebhookData keeps the raw record alongside the identifiers the handler
// routes on.
type WebhookData struct {
	Raw       json.RawMessage
	ID        string
	CompanyID string
}

// UnmarshalJSON captures the raw record and lifts out id and company_id.
// The remote sends ids as strings or numbers depending on the entity.
func (d *WebhookData) UnmarshalJSON(raw []byte) error {
	d.Raw = append(d.Raw[:0], raw...)
	var probe struct {
		ID        any    `json:"id"`
		CompanyID string `json:"company_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return err
	}
	switch v := probe.ID.(type) {
	case string:
		d.ID = v
	case float64:
		d.ID = strconv.FormatFloat(v, 'f', -1, 64)
	}
	d.CompanyID = probe.CompanyID
	return nil
}
