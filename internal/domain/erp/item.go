package erp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Item Entity
// ---------------------------------------------------------------------------

// Item is the local item/product master record.
type Item struct {
	// ID is the unique identifier
	ID uuid.UUID
	// ItemCode is the business key
	ItemCode string
	// ItemName is the display name
	ItemName string
	// Description is the sales description
	Description string
	// StandardRate is the default selling price
	StandardRate decimal.Decimal
	// StockUOM is the stock unit of measure
	StockUOM string
	// NinjaID links to the Invoice Ninja product, empty when unsynced
	NinjaID string
	// NinjaCompanyID is the remote company the link lives in
	NinjaCompanyID string
	// SyncStatus is the per-document sync state
	SyncStatus string
	// Disabled excludes the item from sync
	Disabled bool
	// CreatedAt is when the record was created
	CreatedAt time.Time
	// UpdatedAt is when the record was last updated
	UpdatedAt time.Time
}

// ---------------------------------------------------------------------------
// ItemStore Interface
// ---------------------------------------------------------------------------

// ItemStore defines item persistence.
type ItemStore interface {
	// FindByCode finds an item by item code
	FindByCode(ctx context.Context, itemCode string) (*Item, error)

	// FindByNinjaID finds the item linked to a remote product
	FindByNinjaID(ctx context.Context, ninjaID string) (*Item, error)

	// ExistsByCode reports whether an item code is taken
	ExistsByCode(ctx context.Context, itemCode string) (bool, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error
}
