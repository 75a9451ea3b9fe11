package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeNoMapping, http.StatusUnprocessableEntity},
		{ErrCodeSyncDisabled, http.StatusUnprocessableEntity},
		{ErrCodeRemoteFailed, http.StatusBadGateway},
		{ErrCodeQueueFull, http.StatusServiceUnavailable},
		{"ERR_NO_SUCH_CODE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "mapping not found", "req-42")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "mapping not found", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty", "", ""},
		{"short", "abc", "***"},
		{"normal", "tok_1234567890abcd", "********abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskToken(tt.token))
		})
	}
}

func TestCredentialResponseFromDomain_MasksToken(t *testing.T) {
	cred, err := syncdomain.NewCredential("co_1", "Acme", "https://ninja.example.com")
	require.NoError(t, err)
	cred.APIToken = "secret-token-abcd"

	resp := CredentialResponseFromDomain(cred)

	assert.Equal(t, "co_1", resp.NinjaCompanyID)
	assert.NotContains(t, resp.APIToken, "secret")
	assert.Equal(t, "********abcd", resp.APIToken)
}

func TestWebhookData_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantID      string
		wantCompany string
	}{
		{"string id", `{"id":"abc123","company_id":"co_7","name":"Bob"}`, "abc123", "co_7"},
		{"numeric id", `{"id":5,"name":"Bob"}`, "5", ""},
		{"missing id", `{"name":"Bob"}`, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req WebhookRequest
			body := `{"event_type":"deleted","entity_type":"client","data":` + tt.raw + `}`
			require.NoError(t, json.Unmarshal([]byte(body), &req))

			assert.Equal(t, "deleted", req.EventType)
			assert.Equal(t, "client", req.EntityType)
			assert.Equal(t, tt.wantID, req.Data.ID)
			assert.Equal(t, tt.wantCompany, req.Data.CompanyID)
			assert.JSONEq(t, tt.raw, string(req.Data.Raw))
		})
	}
}

func TestLogEntryResponseFromDomain(t *testing.T) {
	entry := syncdomain.NewLogEntry(syncdomain.EntityTypeCustomer, syncdomain.DirectionOutbound, "CUST-0001")
	entry.ERPCompany = "Acme GmbH"
	entry.Complete("abc")

	resp := LogEntryResponseFromDomain(entry)

	assert.Equal(t, "Customer", resp.EntityType)
	assert.Equal(t, "OUTBOUND", resp.Direction)
	assert.Equal(t, "CUST-0001", resp.DocumentRef)
	assert.Equal(t, "abc", resp.RemoteID)
	assert.Equal(t, "SUCCESS", resp.Status)
}

func TestStatsResponseFromDomain(t *testing.T) {
	stats := &syncdomain.LogStats{
		Since:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Total:        10,
		SuccessCount: 7,
		FailedCount:  2,
		SkippedCount: 1,
		ByEntityType: map[syncdomain.EntityType]int64{
			syncdomain.EntityTypeSalesInvoice: 6,
			syncdomain.EntityTypeCustomer:     4,
		},
	}

	resp := StatsResponseFromDomain(stats)

	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, int64(6), resp.ByEntityType["Sales Invoice"])
	assert.Equal(t, int64(4), resp.ByEntityType["Customer"])
}
