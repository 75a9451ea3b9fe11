package sync

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// CompanyMapping Entity
// ---------------------------------------------------------------------------

// CompanyMapping links an ERP company to an Invoice Ninja company. All
// routing of documents between the two systems resolves through these
// mappings; a disabled mapping is invisible to resolution.
type CompanyMapping struct {
	// ID is the unique identifier of this mapping
	ID uuid.UUID
	// ERPCompany is the local company name
	ERPCompany string
	// NinjaCompanyID is the Invoice Ninja company identifier
	NinjaCompanyID string
	// NinjaCompanyName is the remote company name (for reference)
	NinjaCompanyName string
	// Enabled indicates whether this mapping participates in sync
	Enabled bool
	// IsDefault marks the fallback mapping used when no exact match exists.
	// At most one enabled mapping may be the default.
	IsDefault bool
	// CreatedAt is when this mapping was created
	CreatedAt time.Time
	// UpdatedAt is when this mapping was last updated
	UpdatedAt time.Time
}

// NewCompanyMapping creates a new company mapping
func NewCompanyMapping(erpCompany, ninjaCompanyID string) (*CompanyMapping, error) {
	if strings.TrimSpace(erpCompany) == "" {
		return nil, ErrMappingInvalidCompany
	}
	if strings.TrimSpace(ninjaCompanyID) == "" {
		return nil, ErrMappingInvalidNinjaID
	}

	now := time.Now()
	return &CompanyMapping{
		ID:             uuid.New(),
		ERPCompany:     erpCompany,
		NinjaCompanyID: ninjaCompanyID,
		Enabled:        true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Validate validates the company mapping
func (m *CompanyMapping) Validate() error {
	if strings.TrimSpace(m.ERPCompany) == "" {
		return ErrMappingInvalidCompany
	}
	if strings.TrimSpace(m.NinjaCompanyID) == "" {
		return ErrMappingInvalidNinjaID
	}
	return nil
}

// Enable enables this mapping
func (m *CompanyMapping) Enable() {
	m.Enabled = true
	m.UpdatedAt = time.Now()
}

// Disable disables this mapping
func (m *CompanyMapping) Disable() {
	m.Enabled = false
	m.UpdatedAt = time.Now()
}

// MarkDefault marks this mapping as the fallback
func (m *CompanyMapping) MarkDefault() {
	m.IsDefault = true
	m.UpdatedAt = time.Now()
}

// ValidateAgainst checks this mapping against the rest of the mapping set.
// Uniqueness and the single-default rule only bind among enabled mappings.
func (m *CompanyMapping) ValidateAgainst(others []CompanyMapping) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if !m.Enabled {
		return nil
	}
	for _, o := range others {
		if o.ID == m.ID || !o.Enabled {
			continue
		}
		if o.ERPCompany == m.ERPCompany {
			return ErrMappingDuplicateCompany
		}
		if o.NinjaCompanyID == m.NinjaCompanyID {
			return ErrMappingDuplicateNinjaID
		}
		if o.IsDefault && m.IsDefault {
			return ErrMappingMultipleDefaults
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// SyncContext Value Object
// ---------------------------------------------------------------------------

// SyncContext carries the resolved routing for a single sync operation.
type SyncContext struct {
	// ERPCompany is the local company the operation runs under
	ERPCompany string
	// NinjaCompanyID is the resolved remote company
	NinjaCompanyID string
	// Mapping is the mapping the resolution landed on
	Mapping *CompanyMapping
	// UsedDefault is true when resolution fell back to the default mapping
	UsedDefault bool
	// Direction is the flow this context was built for
	Direction Direction
	// EntityType is the document type being synced
	EntityType EntityType
}

// ---------------------------------------------------------------------------
// CompanyMappingRepository Interface
// ---------------------------------------------------------------------------

// CompanyMappingReader defines the interface for reading company mappings
type CompanyMappingReader interface {
	// FindByID finds a mapping by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CompanyMapping, error)

	// FindAll returns every mapping ordered by creation time then ID.
	// Resolution iterates this order, so it is deterministic.
	FindAll(ctx context.Context) ([]CompanyMapping, error)

	// FindEnabled returns the enabled mappings in the same order
	FindEnabled(ctx context.Context) ([]CompanyMapping, error)
}

// CompanyMappingWriter defines the interface for persisting company mappings
type CompanyMappingWriter interface {
	// Save creates or updates a mapping
	Save(ctx context.Context, mapping *CompanyMapping) error

	// Delete deletes a mapping
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompanyMappingRepository defines the full interface for mapping persistence
type CompanyMappingRepository interface {
	CompanyMappingReader
	CompanyMappingWriter
}
