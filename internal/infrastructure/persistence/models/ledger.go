package models

import (
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account aggregate root.
// TenantID is declared here rather than through TenantAggregateModel so it
// can lead the composite unique index: account numbers are unique per
// tenant, not globally.
type AccountModel struct {
	AggregateModel
	TenantID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:idx_account_tenant_number,priority:1"`
	CreatedBy      *uuid.UUID             `gorm:"type:uuid"`
	AccountNumber  string                 `gorm:"type:varchar(20);not null;uniqueIndex:idx_account_tenant_number,priority:2"`
	Name           string                 `gorm:"type:varchar(200);not null"`
	Category       ledger.AccountCategory `gorm:"type:varchar(30);not null;index"`
	Description    string                 `gorm:"type:text"`
	OpeningBalance decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Active         bool                   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	a := &ledger.Account{
		AccountNumber:  m.AccountNumber,
		Name:           m.Name,
		Category:       m.Category,
		Description:    m.Description,
		OpeningBalance: m.OpeningBalance,
		Active:         m.Active,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	a.TenantID = m.TenantID
	a.CreatedBy = m.CreatedBy
	return a
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.TenantID = a.TenantID
	m.CreatedBy = a.CreatedBy
	m.AccountNumber = a.AccountNumber
	m.Name = a.Name
	m.Category = a.Category
	m.Description = a.Description
	m.OpeningBalance = a.OpeningBalance
	m.Active = a.Active
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// JournalEntryModel is the persistence model for the JournalEntry aggregate root.
// TenantID joins the composite unique index so entry numbers are unique per
// tenant, not globally.
type JournalEntryModel struct {
	AggregateModel
	TenantID    uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_entry_tenant_number,priority:1"`
	CreatedBy   *uuid.UUID              `gorm:"type:uuid"`
	EntryNumber string                  `gorm:"type:varchar(50);not null;uniqueIndex:idx_entry_tenant_number,priority:2"`
	EntryDate   time.Time               `gorm:"not null;index"`
	Description string                  `gorm:"type:text"`
	Status      ledger.EntryStatus      `gorm:"type:varchar(20);not null;index"`
	Lines       []JournalEntryLineModel `gorm:"foreignKey:JournalEntryID;references:ID"`
	ReversalOf  *uuid.UUID              `gorm:"type:uuid"`
	PostedAt    *time.Time
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry entity.
func (m *JournalEntryModel) ToDomain() *ledger.JournalEntry {
	e := &ledger.JournalEntry{
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		Description: m.Description,
		Status:      m.Status,
		Lines:       make([]ledger.JournalEntryLine, len(m.Lines)),
		ReversalOf:  m.ReversalOf,
		PostedAt:    m.PostedAt,
	}
	m.PopulateAggregateRoot(&e.BaseAggregateRoot)
	e.TenantID = m.TenantID
	e.CreatedBy = m.CreatedBy
	for i, lm := range m.Lines {
		e.Lines[i] = lm.ToDomain()
	}
	return e
}

// FromDomain populates the persistence model from a domain JournalEntry entity.
func (m *JournalEntryModel) FromDomain(e *ledger.JournalEntry) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.TenantID = e.TenantID
	m.CreatedBy = e.CreatedBy
	m.EntryNumber = e.EntryNumber
	m.EntryDate = e.EntryDate
	m.Description = e.Description
	m.Status = e.Status
	m.ReversalOf = e.ReversalOf
	m.PostedAt = e.PostedAt
	m.Lines = make([]JournalEntryLineModel, len(e.Lines))
	for i, l := range e.Lines {
		m.Lines[i].FromDomain(l, e.TenantID)
	}
}

// JournalEntryModelFromDomain creates a new persistence model from a domain JournalEntry.
func JournalEntryModelFromDomain(e *ledger.JournalEntry) *JournalEntryModel {
	m := &JournalEntryModel{}
	m.FromDomain(e)
	return m
}

// JournalEntryLineModel is the persistence model for a journal entry line.
// TenantID is denormalized so line-level queries never need a join to
// enforce tenant isolation.
type JournalEntryLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type           ledger.LineType `gorm:"type:varchar(10);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description    string          `gorm:"type:text"`
	ContactID      *uuid.UUID      `gorm:"type:uuid"`
	IsReconciled   bool            `gorm:"not null;default:false;index"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryLineModel) TableName() string {
	return "journal_entry_lines"
}

// ToDomain converts the persistence model to a domain JournalEntryLine.
func (m *JournalEntryLineModel) ToDomain() ledger.JournalEntryLine {
	return ledger.JournalEntryLine{
		ID:             m.ID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Type:           m.Type,
		Amount:         m.Amount,
		Description:    m.Description,
		ContactID:      m.ContactID,
		IsReconciled:   m.IsReconciled,
	}
}

// FromDomain populates the persistence model from a domain JournalEntryLine.
func (m *JournalEntryLineModel) FromDomain(l ledger.JournalEntryLine, tenantID uuid.UUID) {
	m.ID = l.ID
	m.JournalEntryID = l.JournalEntryID
	m.TenantID = tenantID
	m.AccountID = l.AccountID
	m.Type = l.Type
	m.Amount = l.Amount
	m.Description = l.Description
	m.ContactID = l.ContactID
	m.IsReconciled = l.IsReconciled
}

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	TenantAggregateModel
	Name          string    `gorm:"type:varchar(200);not null"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index"`
	BankName      string    `gorm:"type:varchar(200)"`
	AccountNumber string    `gorm:"type:varchar(50)"`
	Active        bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount entity.
func (m *BankAccountModel) ToDomain() *ledger.BankAccount {
	b := &ledger.BankAccount{
		Name:          m.Name,
		AccountID:     m.AccountID,
		BankName:      m.BankName,
		AccountNumber: m.AccountNumber,
		Active:        m.Active,
	}
	m.PopulateTenantAggregateRoot(&b.TenantAggregateRoot)
	return b
}

// FromDomain populates the persistence model from a domain BankAccount entity.
func (m *BankAccountModel) FromDomain(b *ledger.BankAccount) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.Name = b.Name
	m.AccountID = b.AccountID
	m.BankName = b.BankName
	m.AccountNumber = b.AccountNumber
	m.Active = b.Active
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount.
func BankAccountModelFromDomain(b *ledger.BankAccount) *BankAccountModel {
	m := &BankAccountModel{}
	m.FromDomain(b)
	return m
}
