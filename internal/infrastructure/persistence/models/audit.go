package models

import (
	"time"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditEntryModel is the persistence model for an audit chain entry.
// The unique index on (tenant_id, sequence) is what turns two racing
// appends into a detectable write conflict: exactly one insert wins.
type AuditEntryModel struct {
	BaseModel
	TenantID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_audit_tenant_sequence,priority:1;index:idx_audit_tenant_entity,priority:1"`
	Sequence       int64          `gorm:"not null;uniqueIndex:idx_audit_tenant_sequence,priority:2"`
	EntityType     string         `gorm:"type:varchar(50);not null;index:idx_audit_tenant_entity,priority:2"`
	EntityID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_tenant_entity,priority:3"`
	Event          audit.Event    `gorm:"type:varchar(20);not null"`
	OldValues      map[string]any `gorm:"type:jsonb;serializer:json"`
	NewValues      map[string]any `gorm:"type:jsonb;serializer:json"`
	ChangedFields  []string       `gorm:"type:jsonb;serializer:json"`
	ActorUserID    *uuid.UUID     `gorm:"type:uuid"`
	ActorEmail     string         `gorm:"type:varchar(200)"`
	ActorName      string         `gorm:"type:varchar(200)"`
	ActorIP        string         `gorm:"type:varchar(50)"`
	ActorUserAgent string         `gorm:"type:varchar(500)"`
	BatchID        *uuid.UUID     `gorm:"type:uuid;index"`
	PreviousHash   *string        `gorm:"type:varchar(64)"`
	Hash           string         `gorm:"type:varchar(64);not null"`
	RecordedAt     time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit Entry.
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		TenantID:      m.TenantID,
		Sequence:      m.Sequence,
		EntityType:    m.EntityType,
		EntityID:      m.EntityID,
		Event:         m.Event,
		OldValues:     m.OldValues,
		NewValues:     m.NewValues,
		ChangedFields: m.ChangedFields,
		Actor: audit.Actor{
			UserID:    m.ActorUserID,
			Email:     m.ActorEmail,
			Name:      m.ActorName,
			IP:        m.ActorIP,
			UserAgent: m.ActorUserAgent,
		},
		BatchID:      m.BatchID,
		PreviousHash: m.PreviousHash,
		Hash:         m.Hash,
		RecordedAt:   m.RecordedAt,
	}
}

// FromDomain populates the persistence model from a domain audit Entry.
func (m *AuditEntryModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.Sequence = e.Sequence
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.Event = e.Event
	m.OldValues = e.OldValues
	m.NewValues = e.NewValues
	m.ChangedFields = e.ChangedFields
	m.ActorUserID = e.Actor.UserID
	m.ActorEmail = e.Actor.Email
	m.ActorName = e.Actor.Name
	m.ActorIP = e.Actor.IP
	m.ActorUserAgent = e.Actor.UserAgent
	m.BatchID = e.BatchID
	m.PreviousHash = e.PreviousHash
	m.Hash = e.Hash
	m.RecordedAt = e.RecordedAt
}

// AuditEntryModelFromDomain creates a new persistence model from a domain Entry.
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}
