package ledger

import (
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BankAccount links an external bank account to the ledger account that
// records its movements. Reconciliation cannot proceed without this mapping.
type BankAccount struct {
	shared.TenantAggregateRoot
	Name          string    `json:"name"`
	AccountID     uuid.UUID `json:"account_id"` // linked ledger account
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"` // number at the bank, masked upstream
	Active        bool      `json:"active"`
}

// NewBankAccount creates a new bank account mapping
func NewBankAccount(tenantID uuid.UUID, name string, accountID uuid.UUID, bankName, accountNumber string) (*BankAccount, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bank account name cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Linked ledger account ID cannot be empty")
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		AccountID:           accountID,
		BankName:            bankName,
		AccountNumber:       accountNumber,
		Active:              true,
	}, nil
}

// AuditEntityType implements audit.Auditable
func (b *BankAccount) AuditEntityType() string {
	return "BankAccount"
}

// AuditEntityID implements audit.Auditable
func (b *BankAccount) AuditEntityID() uuid.UUID {
	return b.ID
}

// AuditSnapshot implements audit.Auditable
func (b *BankAccount) AuditSnapshot() map[string]any {
	return map[string]any{
		"name":           b.Name,
		"account_id":     b.AccountID.String(),
		"bank_name":      b.BankName,
		"account_number": b.AccountNumber,
		"active":         b.Active,
	}
}
