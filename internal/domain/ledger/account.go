package ledger

import (
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account on the chart of accounts
type AccountCategory string

const (
	CategoryAsset           AccountCategory = "ASSET"
	CategoryLiability       AccountCategory = "LIABILITY"
	CategoryEquity          AccountCategory = "EQUITY"
	CategoryIncome          AccountCategory = "INCOME"
	CategoryExpense         AccountCategory = "EXPENSE"
	CategoryCostOfGoodsSold AccountCategory = "COST_OF_GOODS_SOLD"
)

// IsValid checks if the category is a valid AccountCategory
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryAsset, CategoryLiability, CategoryEquity,
		CategoryIncome, CategoryExpense, CategoryCostOfGoodsSold:
		return true
	}
	return false
}

// String returns the string representation
func (c AccountCategory) String() string {
	return string(c)
}

// IncreasesOnDebit reports whether the account's balance grows with debits.
// Asset, expense and cost-of-goods-sold accounts carry a debit normal
// balance; liability, equity and income accounts carry a credit one.
func (c AccountCategory) IncreasesOnDebit() bool {
	switch c {
	case CategoryAsset, CategoryExpense, CategoryCostOfGoodsSold:
		return true
	}
	return false
}

// Account represents a ledger account within a company's chart of accounts.
// AccountNumber is unique within a tenant.
type Account struct {
	shared.TenantAggregateRoot
	AccountNumber  string          `json:"account_number"`
	Name           string          `json:"name"`
	Category       AccountCategory `json:"category"`
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Active         bool            `json:"active"`
}

// NewAccount creates a new ledger account
func NewAccount(tenantID uuid.UUID, accountNumber, name string, category AccountCategory) (*Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if accountNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Account number cannot be empty")
	}
	if len(accountNumber) > 20 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Account number cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Account name cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Account category is not valid")
	}

	return &Account{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AccountNumber:       accountNumber,
		Name:                name,
		Category:            category,
		OpeningBalance:      decimal.Zero,
		Active:              true,
	}, nil
}

// SetOpeningBalance sets the account's configured opening balance. It is
// used as the starting point of the first bank reconciliation.
func (a *Account) SetOpeningBalance(balance decimal.Decimal) {
	a.OpeningBalance = balance
}

// Deactivate marks the account inactive. Inactive accounts keep their
// history but accept no new journal lines.
func (a *Account) Deactivate() error {
	if !a.Active {
		return shared.ErrInvalidState
	}
	a.Active = false
	a.IncrementVersion()
	return nil
}

// Activate re-enables an inactive account
func (a *Account) Activate() error {
	if a.Active {
		return shared.ErrInvalidState
	}
	a.Active = true
	a.IncrementVersion()
	return nil
}

// AuditEntityType implements audit.Auditable
func (a *Account) AuditEntityType() string {
	return "Account"
}

// AuditEntityID implements audit.Auditable
func (a *Account) AuditEntityID() uuid.UUID {
	return a.ID
}

// AuditSnapshot implements audit.Auditable
func (a *Account) AuditSnapshot() map[string]any {
	return map[string]any{
		"account_number":  a.AccountNumber,
		"name":            a.Name,
		"category":        a.Category.String(),
		"description":     a.Description,
		"opening_balance": a.OpeningBalance.String(),
		"active":          a.Active,
	}
}
