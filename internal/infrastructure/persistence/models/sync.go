package models

import (
	"time"

	"github.com/google/uuid"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// CompanyMappingModel
// ---------------------------------------------------------------------------

// CompanyMappingModel is the persistence model for the CompanyMapping domain
// entity. Uniqueness of company names only binds among enabled mappings, so
// the table carries plain indexes, not unique ones.
type CompanyMappingModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	ERPCompany       string    `gorm:"column:erp_company;type:varchar(140);not null;index"`
	NinjaCompanyID   string    `gorm:"type:varchar(50);not null;index"`
	NinjaCompanyName string    `gorm:"type:varchar(200)"`
	Enabled          bool      `gorm:"not null;default:true"`
	IsDefault        bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CompanyMappingModel) TableName() string {
	return "company_mappings"
}

// ToDomain converts the persistence model to a domain CompanyMapping entity.
func (m *CompanyMappingModel) ToDomain() *syncdomain.CompanyMapping {
	return &syncdomain.CompanyMapping{
		ID:               m.ID,
		ERPCompany:       m.ERPCompany,
		NinjaCompanyID:   m.NinjaCompanyID,
		NinjaCompanyName: m.NinjaCompanyName,
		Enabled:          m.Enabled,
		IsDefault:        m.IsDefault,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain CompanyMapping entity.
func (m *CompanyMappingModel) FromDomain(cm *syncdomain.CompanyMapping) {
	m.ID = cm.ID
	m.ERPCompany = cm.ERPCompany
	m.NinjaCompanyID = cm.NinjaCompanyID
	m.NinjaCompanyName = cm.NinjaCompanyName
	m.Enabled = cm.Enabled
	m.IsDefault = cm.IsDefault
	m.CreatedAt = cm.CreatedAt
	m.UpdatedAt = cm.UpdatedAt
}

// CompanyMappingModelFromDomain creates a new persistence model from a domain
// CompanyMapping entity.
func CompanyMappingModelFromDomain(cm *syncdomain.CompanyMapping) *CompanyMappingModel {
	m := &CompanyMappingModel{}
	m.FromDomain(cm)
	return m
}

// ---------------------------------------------------------------------------
// CredentialModel
// ---------------------------------------------------------------------------

// CredentialModel is the persistence model for the Credential domain entity.
type CredentialModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key"`
	NinjaCompanyID   string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	CompanyName      string     `gorm:"type:varchar(200)"`
	BaseURL          string     `gorm:"type:varchar(500);not null"`
	APIToken         string     `gorm:"type:text"`
	Enabled          bool       `gorm:"not null;default:false"`
	ConnectionStatus string     `gorm:"type:varchar(20);not null;default:'Not Tested'"`
	LastSyncAt       *time.Time `gorm:"index"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CredentialModel) TableName() string {
	return "ninja_companies"
}

// ToDomain converts the persistence model to a domain Credential entity.
func (m *CredentialModel) ToDomain() *syncdomain.Credential {
	return &syncdomain.Credential{
		ID:               m.ID,
		NinjaCompanyID:   m.NinjaCompanyID,
		CompanyName:      m.CompanyName,
		BaseURL:          m.BaseURL,
		APIToken:         m.APIToken,
		Enabled:          m.Enabled,
		ConnectionStatus: syncdomain.ConnectionStatus(m.ConnectionStatus),
		LastSyncAt:       m.LastSyncAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Credential entity.
func (m *CredentialModel) FromDomain(c *syncdomain.Credential) {
	m.ID = c.ID
	m.NinjaCompanyID = c.NinjaCompanyID
	m.CompanyName = c.CompanyName
	m.BaseURL = c.BaseURL
	m.APIToken = c.APIToken
	m.Enabled = c.Enabled
	m.ConnectionStatus = c.ConnectionStatus.String()
	m.LastSyncAt = c.LastSyncAt
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CredentialModelFromDomain creates a new persistence model from a domain
// Credential entity.
func CredentialModelFromDomain(c *syncdomain.Credential) *CredentialModel {
	m := &CredentialModel{}
	m.FromDomain(c)
	return m
}

// ---------------------------------------------------------------------------
// SyncLogModel
// ---------------------------------------------------------------------------

// SyncLogModel is the persistence model for the LogEntry domain entity.
type SyncLogModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	EntityType     string    `gorm:"type:varchar(30);not null;index"`
	Direction      string    `gorm:"type:varchar(10);not null"`
	DocumentRef    string    `gorm:"type:varchar(140);index"`
	RemoteID       string    `gorm:"type:varchar(50)"`
	ERPCompany     string    `gorm:"column:erp_company;type:varchar(140);index"`
	NinjaCompanyID string    `gorm:"type:varchar(50)"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	Message        string    `gorm:"type:text"`
	DurationMs     int64     `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "sync_logs"
}

// ToDomain converts the persistence model to a domain LogEntry entity.
func (m *SyncLogModel) ToDomain() *syncdomain.LogEntry {
	return &syncdomain.LogEntry{
		ID:             m.ID,
		EntityType:     syncdomain.EntityType(m.EntityType),
		Direction:      syncdomain.Direction(m.Direction),
		DocumentRef:    m.DocumentRef,
		RemoteID:       m.RemoteID,
		ERPCompany:     m.ERPCompany,
		NinjaCompanyID: m.NinjaCompanyID,
		Status:         syncdomain.LogStatus(m.Status),
		Message:        m.Message,
		DurationMs:     m.DurationMs,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain LogEntry entity.
func (m *SyncLogModel) FromDomain(e *syncdomain.LogEntry) {
	m.ID = e.ID
	m.EntityType = e.EntityType.String()
	m.Direction = string(e.Direction)
	m.DocumentRef = e.DocumentRef
	m.RemoteID = e.RemoteID
	m.ERPCompany = e.ERPCompany
	m.NinjaCompanyID = e.NinjaCompanyID
	m.Status = e.Status.String()
	m.Message = e.Message
	m.DurationMs = e.DurationMs
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// SyncLogModelFromDomain creates a new persistence model from a domain
// LogEntry entity.
func SyncLogModelFromDomain(e *syncdomain.LogEntry) *SyncLogModel {
	m := &SyncLogModel{}
	m.FromDomain(e)
	return m
}
