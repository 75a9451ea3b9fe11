package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSyncLogRepository_ListRecent(t *testing.T) {
	t.Run("applies filter and default limit", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSyncLogRepository(gormDB)

		entryID := uuid.New()
		now := time.Now()
		entityType := syncdomain.EntityTypeCustomer
		status := syncdomain.LogStatusFailed

		rows := sqlmock.NewRows([]string{"id", "entity_type", "direction", "document_ref", "remote_id", "erp_company", "ninja_company_id", "status", "message", "duration_ms", "created_at", "updated_at"}).
			AddRow(entryID, "Customer", "OUTBOUND", "CUST-0001", "", "Acme Corp", "co_01", "FAILED", "remote request failed", int64(120), now, now)

		mock.ExpectQuery(`SELECT \* FROM "sync_logs" WHERE entity_type = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .*`).
			WithArgs("Customer", "FAILED", 50).
			WillReturnRows(rows)

		entries, err := repo.ListRecent(context.Background(), syncdomain.LogFilter{
			EntityType: &entityType,
			Status:     &status,
		})

		assert.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entryID, entries[0].ID)
		assert.Equal(t, syncdomain.LogStatusFailed, entries[0].Status)
		assert.Equal(t, "remote request failed", entries[0].Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSyncLogRepository_Stats(t *testing.T) {
	t.Run("aggregates closed outcomes", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSyncLogRepository(gormDB)

		since := time.Now().Add(-7 * 24 * time.Hour)

		statusRows := sqlmock.NewRows([]string{"status", "count"}).
			AddRow("SUCCESS", 8).
			AddRow("FAILED", 2).
			AddRow("SKIPPED", 1)

		mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "sync_logs" WHERE created_at >= \$1 AND status <> \$2 GROUP BY .*`).
			WithArgs(since, "IN_PROGRESS").
			WillReturnRows(statusRows)

		entityRows := sqlmock.NewRows([]string{"entity_type", "count"}).
			AddRow("Customer", 6).
			AddRow("Sales Invoice", 5)

		mock.ExpectQuery(`SELECT entity_type, COUNT\(\*\) AS count FROM "sync_logs" WHERE created_at >= \$1 AND status <> \$2 GROUP BY .*`).
			WithArgs(since, "IN_PROGRESS").
			WillReturnRows(entityRows)

		stats, err := repo.Stats(context.Background(), since)

		assert.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, int64(11), stats.Total)
		assert.Equal(t, int64(8), stats.SuccessCount)
		assert.Equal(t, int64(2), stats.FailedCount)
		assert.Equal(t, int64(1), stats.SkippedCount)
		assert.Equal(t, int64(6), stats.ByEntityType[syncdomain.EntityTypeCustomer])
		assert.Equal(t, int64(5), stats.ByEntityType[syncdomain.EntityTypeSalesInvoice])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSyncLogRepository_PruneOlderThan(t *testing.T) {
	t.Run("returns number of pruned entries", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSyncLogRepository(gormDB)

		cutoff := time.Now().Add(-30 * 24 * time.Hour)

		mock.ExpectExec(`DELETE FROM "sync_logs" WHERE created_at < \$1`).
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 42))

		pruned, err := repo.PruneOlderThan(context.Background(), cutoff)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), pruned)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
