package sync

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// ConnectionStatus represents the state of a company's API credentials
// ---------------------------------------------------------------------------

// ConnectionStatus represents the state of a company's API credentials.
type ConnectionStatus string

const (
	// ConnectionStatusNotTested means the credential has never been verified.
	// Discovered companies start here until a token is entered and tested.
	ConnectionStatusNotTested ConnectionStatus = "Not Tested"
	// ConnectionStatusConnected means the last ping succeeded
	ConnectionStatusConnected ConnectionStatus = "Connected"
	// ConnectionStatusFailed means the last ping failed
	ConnectionStatusFailed ConnectionStatus = "Failed"
)

// String returns the string representation of ConnectionStatus
func (s ConnectionStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Credential Entity
// ---------------------------------------------------------------------------

// Credential holds the per-company Invoice Ninja API access record. Tokens
// are company scoped; a company with an empty token cannot be synced.
type Credential struct {
	// ID is the unique identifier of this record
	ID uuid.UUID
	// NinjaCompanyID is the Invoice Ninja company identifier
	NinjaCompanyID string
	// CompanyName is the remote company display name
	CompanyName string
	// BaseURL is the Invoice Ninja instance URL
	BaseURL string
	// APIToken is the company-scoped API token
	APIToken string
	// Enabled indicates whether this company may be synced
	Enabled bool
	// ConnectionStatus is the result of the last connection test
	ConnectionStatus ConnectionStatus
	// LastSyncAt is when this company was last synced or tested
	LastSyncAt *time.Time
	// CreatedAt is when this record was created
	CreatedAt time.Time
	// UpdatedAt is when this record was last updated
	UpdatedAt time.Time
}

// NewCredential creates a credential record for a remote company
func NewCredential(ninjaCompanyID, companyName, baseURL string) (*Credential, error) {
	if strings.TrimSpace(ninjaCompanyID) == "" {
		return nil, ErrMappingInvalidNinjaID
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrMissingBaseURL
	}

	now := time.Now()
	return &Credential{
		ID:               uuid.New(),
		NinjaCompanyID:   ninjaCompanyID,
		CompanyName:      companyName,
		BaseURL:          strings.TrimRight(baseURL, "/"),
		Enabled:          false,
		ConnectionStatus: ConnectionStatusNotTested,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Usable reports whether this credential can authenticate API calls.
// Returns ErrCompanyDisabled, ErrMissingBaseURL or ErrMissingAPIToken.
func (c *Credential) Usable() error {
	if !c.Enabled {
		return ErrCompanyDisabled
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if strings.TrimSpace(c.APIToken) == "" {
		return ErrMissingAPIToken
	}
	return nil
}

// RecordConnectionTest records the outcome of a connection test
func (c *Credential) RecordConnectionTest(ok bool) {
	now := time.Now()
	if ok {
		c.ConnectionStatus = ConnectionStatusConnected
	} else {
		c.ConnectionStatus = ConnectionStatusFailed
	}
	c.LastSyncAt = &now
	c.UpdatedAt = now
}

// TouchSync updates the last sync timestamp
func (c *Credential) TouchSync() {
	now := time.Now()
	c.LastSyncAt = &now
	c.UpdatedAt = now
}

// ---------------------------------------------------------------------------
// CredentialRepository Interface
// ---------------------------------------------------------------------------

// CredentialRepository defines the interface for credential persistence
type CredentialRepository interface {
	// FindByID finds a credential by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Credential, error)

	// FindByNinjaCompanyID finds the credential for a remote company
	FindByNinjaCompanyID(ctx context.Context, ninjaCompanyID string) (*Credential, error)

	// FindAll returns every credential record
	FindAll(ctx context.Context) ([]Credential, error)

	// Save creates or updates a credential
	Save(ctx context.Context, credential *Credential) error

	// Delete deletes a credential
	Delete(ctx context.Context, id uuid.UUID) error
}
