package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// CompanyMapper
// ---------------------------------------------------------------------------

// CompanyMapper resolves ERP companies to Invoice Ninja companies through the
// mapping set. Mappings are read fresh from the repository on every call, so
// an edit takes effect on the next resolution.
type CompanyMapper struct {
	mappings syncdomain.CompanyMappingRepository
	logger   *zap.Logger
}

// NewCompanyMapper creates a company mapper.
func NewCompanyMapper(mappings syncdomain.CompanyMappingRepository, logger *zap.Logger) *CompanyMapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyMapper{mappings: mappings, logger: logger}
}

// ResolveMapping finds the enabled mapping matching the ERP company exactly.
// Enabled mappings are scanned in creation order; the first match wins.
func (m *CompanyMapper) ResolveMapping(ctx context.Context, erpCompany string) (*syncdomain.CompanyMapping, error) {
	if erpCompany == "" {
		return nil, syncdomain.ErrNoCompanyMapping
	}
	enabled, err := m.mappings.FindEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("companymapper: loading mappings: %w", err)
	}
	for i := range enabled {
		if enabled[i].ERPCompany == erpCompany {
			return &enabled[i], nil
		}
	}
	return nil, syncdomain.ErrNoCompanyMapping
}

// EnabledMappings returns the enabled mappings in resolution order.
func (m *CompanyMapper) EnabledMappings(ctx context.Context) ([]syncdomain.CompanyMapping, error) {
	return m.mappings.FindEnabled(ctx)
}

// ResolveByNinjaCompany finds the enabled mapping for a remote company.
// Inbound syncs route through this to land records in the right ERP company.
func (m *CompanyMapper) ResolveByNinjaCompany(ctx context.Context, ninjaCompanyID string) (*syncdomain.CompanyMapping, error) {
	if ninjaCompanyID == "" {
		return nil, syncdomain.ErrNoCompanyMapping
	}
	enabled, err := m.mappings.FindEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("companymapper: loading mappings: %w", err)
	}
	for i := range enabled {
		if enabled[i].NinjaCompanyID == ninjaCompanyID {
			return &enabled[i], nil
		}
	}
	return nil, syncdomain.ErrNoCompanyMapping
}

// BuildInboundContext resolves the routing for an inbound sync from a
// remote company.
func (m *CompanyMapper) BuildInboundContext(ctx context.Context, ninjaCompanyID string, entityType syncdomain.EntityType) (*syncdomain.SyncContext, error) {
	mapping, err := m.ResolveByNinjaCompany(ctx, ninjaCompanyID)
	if err != nil {
		return nil, err
	}
	return &syncdomain.SyncContext{
		ERPCompany:     mapping.ERPCompany,
		NinjaCompanyID: mapping.NinjaCompanyID,
		Mapping:        mapping,
		Direction:      syncdomain.DirectionInbound,
		EntityType:     entityType,
	}, nil
}

// ResolveDefault finds the enabled mapping marked as default.
func (m *CompanyMapper) ResolveDefault(ctx context.Context) (*syncdomain.CompanyMapping, error) {
	enabled, err := m.mappings.FindEnabled(ctx)
	if err != nil {
		return nil, fmt.Errorf("companymapper: loading mappings: %w", err)
	}
	for i := range enabled {
		if enabled[i].IsDefault {
			return &enabled[i], nil
		}
	}
	return nil, syncdomain.ErrNoDefaultMapping
}

// Resolve finds the mapping for an ERP company, falling back to the default
// mapping when no exact match exists. The second return reports whether the
// fallback was used.
func (m *CompanyMapper) Resolve(ctx context.Context, erpCompany string) (*syncdomain.CompanyMapping, bool, error) {
	mapping, err := m.ResolveMapping(ctx, erpCompany)
	if err == nil {
		return mapping, false, nil
	}
	if !errors.Is(err, syncdomain.ErrNoCompanyMapping) {
		return nil, false, err
	}

	fallback, err := m.ResolveDefault(ctx)
	if err != nil {
		return nil, false, syncdomain.ErrNoCompanyMapping
	}
	m.logger.Debug("company resolution fell back to default mapping",
		zap.String("erp_company", erpCompany),
		zap.String("ninja_company_id", fallback.NinjaCompanyID))
	return fallback, true, nil
}

// BuildContext resolves the routing for a sync operation.
func (m *CompanyMapper) BuildContext(ctx context.Context, erpCompany string, entityType syncdomain.EntityType, direction syncdomain.Direction) (*syncdomain.SyncContext, error) {
	mapping, usedDefault, err := m.Resolve(ctx, erpCompany)
	if err != nil {
		return nil, err
	}
	return &syncdomain.SyncContext{
		ERPCompany:     erpCompany,
		NinjaCompanyID: mapping.NinjaCompanyID,
		Mapping:        mapping,
		UsedDefault:    usedDefault,
		Direction:      direction,
		EntityType:     entityType,
	}, nil
}

// ValidateDocument reports whether a document of the given company can be
// routed at all. It never touches the remote API.
func (m *CompanyMapper) ValidateDocument(ctx context.Context, erpCompany string) bool {
	_, _, err := m.Resolve(ctx, erpCompany)
	return err == nil
}

// ValidateSet checks a candidate mapping against the stored set before
// saving. Uniqueness and the single-default rule bind among enabled mappings.
func (m *CompanyMapper) ValidateSet(ctx context.Context, candidate *syncdomain.CompanyMapping) error {
	all, err := m.mappings.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("companymapper: loading mappings: %w", err)
	}
	return candidate.ValidateAgainst(all)
}
