package models

import (
	"time"

	"github.com/bookkeep/backend/internal/domain/reconciliation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationModel is the persistence model for the Reconciliation aggregate root.
type ReconciliationModel struct {
	TenantAggregateModel
	BankAccountID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	AccountID          uuid.UUID             `gorm:"type:uuid;not null;index"`
	StatementDate      time.Time             `gorm:"not null;index"`
	StatementStartDate time.Time             `gorm:"not null"`
	StatementEndDate   time.Time             `gorm:"not null"`
	StatementBalance   decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	OpeningBalance     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	ClearedBalance     decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Difference         decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status             reconciliation.Status `gorm:"type:varchar(20);not null;index"`
	CompletedAt        *time.Time
}

// TableName returns the table name for GORM
func (ReconciliationModel) TableName() string {
	return "reconciliations"
}

// ToDomain converts the persistence model to a domain Reconciliation entity.
func (m *ReconciliationModel) ToDomain() *reconciliation.Reconciliation {
	r := &reconciliation.Reconciliation{
		BankAccountID:      m.BankAccountID,
		AccountID:          m.AccountID,
		StatementDate:      m.StatementDate,
		StatementStartDate: m.StatementStartDate,
		StatementEndDate:   m.StatementEndDate,
		StatementBalance:   m.StatementBalance,
		OpeningBalance:     m.OpeningBalance,
		ClearedBalance:     m.ClearedBalance,
		Difference:         m.Difference,
		Status:             m.Status,
		CompletedAt:        m.CompletedAt,
	}
	m.PopulateTenantAggregateRoot(&r.TenantAggregateRoot)
	return r
}

// FromDomain populates the persistence model from a domain Reconciliation entity.
func (m *ReconciliationModel) FromDomain(r *reconciliation.Reconciliation) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.BankAccountID = r.BankAccountID
	m.AccountID = r.AccountID
	m.StatementDate = r.StatementDate
	m.StatementStartDate = r.StatementStartDate
	m.StatementEndDate = r.StatementEndDate
	m.StatementBalance = r.StatementBalance
	m.OpeningBalance = r.OpeningBalance
	m.ClearedBalance = r.ClearedBalance
	m.Difference = r.Difference
	m.Status = r.Status
	m.CompletedAt = r.CompletedAt
}

// ReconciliationModelFromDomain creates a new persistence model from a domain Reconciliation.
func ReconciliationModelFromDomain(r *reconciliation.Reconciliation) *ReconciliationModel {
	m := &ReconciliationModel{}
	m.FromDomain(r)
	return m
}

// ReconciliationItemModel is the persistence model for a reconciliation item.
// TenantID is denormalized for tenant-scoped deletes without a join.
type ReconciliationItemModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReconciliationID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	JournalEntryLineID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsCleared          bool            `gorm:"not null;default:false"`
	ClearedAt          *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReconciliationItemModel) TableName() string {
	return "reconciliation_items"
}

// ToDomain converts the persistence model to a domain reconciliation Item.
func (m *ReconciliationItemModel) ToDomain() reconciliation.Item {
	return reconciliation.Item{
		ID:                 m.ID,
		ReconciliationID:   m.ReconciliationID,
		JournalEntryLineID: m.JournalEntryLineID,
		Amount:             m.Amount,
		IsCleared:          m.IsCleared,
		ClearedAt:          m.ClearedAt,
	}
}

// FromDomain populates the persistence model from a domain reconciliation Item.
func (m *ReconciliationItemModel) FromDomain(i reconciliation.Item, tenantID uuid.UUID) {
	m.ID = i.ID
	m.ReconciliationID = i.ReconciliationID
	m.TenantID = tenantID
	m.JournalEntryLineID = i.JournalEntryLineID
	m.Amount = i.Amount
	m.IsCleared = i.IsCleared
	m.ClearedAt = i.ClearedAt
}
