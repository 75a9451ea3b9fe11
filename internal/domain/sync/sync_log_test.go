package sync

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// LogEntry Tests
// ---------------------------------------------------------------------------

func TestNewLogEntry(t *testing.T) {
	e := NewLogEntry(EntityTypeCustomer, DirectionOutbound, "CUST-0001")
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, EntityTypeCustomer, e.EntityType)
	assert.Equal(t, DirectionOutbound, e.Direction)
	assert.Equal(t, "CUST-0001", e.DocumentRef)
	assert.Equal(t, LogStatusInProgress, e.Status)
	assert.Empty(t, e.RemoteID)
}

func TestLogEntryOutcomes(t *testing.T) {
	t.Run("Complete records the remote ID", func(t *testing.T) {
		e := NewLogEntry(EntityTypeItem, DirectionOutbound, "WIDGET-01")
		e.Complete("prod_42")
		assert.Equal(t, LogStatusSuccess, e.Status)
		assert.Equal(t, "prod_42", e.RemoteID)
		assert.GreaterOrEqual(t, e.DurationMs, int64(0))
	})

	t.Run("Fail records the message", func(t *testing.T) {
		e := NewLogEntry(EntityTypeSalesInvoice, DirectionOutbound, "INV-0007")
		e.Fail("remote returned 422")
		assert.Equal(t, LogStatusFailed, e.Status)
		assert.Equal(t, "remote returned 422", e.Message)
	})

	t.Run("Skip records the reason", func(t *testing.T) {
		e := NewLogEntry(EntityTypeCustomer, DirectionInbound, "CUST-0001")
		e.Skip("unchanged since last sync")
		assert.Equal(t, LogStatusSkipped, e.Status)
		assert.Equal(t, "unchanged since last sync", e.Message)
	})
}

func TestLogStatusIsValid(t *testing.T) {
	for _, s := range []LogStatus{LogStatusInProgress, LogStatusSuccess, LogStatusFailed, LogStatusSkipped} {
		assert.True(t, s.IsValid(), "expected %q to be valid", s)
	}
	assert.False(t, LogStatus("DONE").IsValid())
	assert.False(t, LogStatus("").IsValid())
}
