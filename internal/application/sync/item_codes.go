package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/novizna/ninjasync/internal/domain/erp"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/invoiceninja"
)

// itemCodePrefix marks item codes synthesized for pulled products.
const itemCodePrefix = "IN-ITEM-"

// ---------------------------------------------------------------------------
// ItemCodeResolver
// ---------------------------------------------------------------------------

// ItemCodeResolver derives local item codes for remote products. A product
// key that already names an item is reused; otherwise a stable code is
// synthesized from the key, with a suffix to break the rare collision.
type ItemCodeResolver struct {
	items  erp.ItemStore
	mapper *FieldMapper
}

// NewItemCodeResolver creates an item code resolver.
func NewItemCodeResolver(items erp.ItemStore, mapper *FieldMapper) *ItemCodeResolver {
	return &ItemCodeResolver{items: items, mapper: mapper}
}

// ResolveCode returns the local item code for a product key.
func (r *ItemCodeResolver) ResolveCode(ctx context.Context, productKey string) (string, error) {
	if productKey != "" {
		exists, err := r.items.ExistsByCode(ctx, productKey)
		if err != nil {
			return "", fmt.Errorf("itemcodes: checking product key: %w", err)
		}
		if exists {
			return productKey, nil
		}
	}

	seed := productKey
	if seed == "" {
		seed = "unnamed"
	}
	code := itemCodePrefix + hashHex(seed, 8)
	exists, err := r.items.ExistsByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("itemcodes: checking synthesized code: %w", err)
	}
	if !exists {
		return code, nil
	}

	suffixed := code + "-" + hashHex(seed+code, 4)
	exists, err = r.items.ExistsByCode(ctx, suffixed)
	if err != nil {
		return "", fmt.Errorf("itemcodes: checking suffixed code: %w", err)
	}
	if exists {
		return "", syncdomain.ErrItemCodeUnavailable
	}
	return suffixed, nil
}

// EnsureItem returns the local item for a remote product, creating it when
// nothing is linked. Lookup order: remote ID link, product key as code,
// then a fresh item under a synthesized code.
func (r *ItemCodeResolver) EnsureItem(ctx context.Context, record *invoiceninja.ProductRecord, sctx *syncdomain.SyncContext) (*erp.Item, error) {
	if record == nil || record.ID == "" {
		return nil, syncdomain.ErrMappingFailed
	}

	if item, err := r.items.FindByNinjaID(ctx, record.ID); err == nil {
		updated, mapErr := r.mapper.ProductToItem(record, item.ItemCode, item, sctx)
		if mapErr != nil {
			return nil, mapErr
		}
		if err := r.items.Save(ctx, updated); err != nil {
			return nil, err
		}
		return updated, nil
	} else if !errors.Is(err, erp.ErrItemNotFound) {
		return nil, err
	}

	if record.ProductKey != "" {
		if item, err := r.items.FindByCode(ctx, record.ProductKey); err == nil {
			updated, mapErr := r.mapper.ProductToItem(record, item.ItemCode, item, sctx)
			if mapErr != nil {
				return nil, mapErr
			}
			if err := r.items.Save(ctx, updated); err != nil {
				return nil, err
			}
			return updated, nil
		} else if !errors.Is(err, erp.ErrItemNotFound) {
			return nil, err
		}
	}

	code, err := r.ResolveCode(ctx, record.ProductKey)
	if err != nil {
		return nil, err
	}
	item, err := r.mapper.ProductToItem(record, code, nil, sctx)
	if err != nil {
		return nil, err
	}
	if err := r.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// EnsureLineItem returns the local item backing an invoice or quote line,
// creating a minimal item when the product key is unknown. Lines carry no
// remote product ID, so lookup is by code only.
func (r *ItemCodeResolver) EnsureLineItem(ctx context.Context, productKey, notes string, rate decimal.Decimal, sctx *syncdomain.SyncContext) (*erp.Item, error) {
	if productKey != "" {
		if item, err := r.items.FindByCode(ctx, productKey); err == nil {
			return item, nil
		} else if !errors.Is(err, erp.ErrItemNotFound) {
			return nil, err
		}
	}

	code, err := r.ResolveCode(ctx, productKey)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &erp.Item{
		ID:           uuid.New(),
		ItemCode:     code,
		ItemName:     firstNonEmpty(productKey, notes, code),
		Description:  notes,
		StandardRate: rate,
		StockUOM:     "Nos",
		SyncStatus:   syncdomain.DocStatusSynced.String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sctx != nil {
		item.NinjaCompanyID = sctx.NinjaCompanyID
	}
	if err := r.items.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func hashHex(value string, length int) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:length]
}
