package reconciliation

import (
	"time"

	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the cent tolerance under which a reconciliation is
// considered balanced. Amounts are decimals, so there is no float drift;
// anything below one cent is rounding noise from imported statements.
var BalanceTolerance = decimal.RequireFromString("0.01")

// Status represents the lifecycle status of a reconciliation session
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED" // terminal; corrections need a new session
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// String returns the string representation
func (s Status) String() string {
	return string(s)
}

// Reconciliation is a bank-statement-to-ledger matching session. It is
// created in progress, mutated while transactions are selected and saved,
// and frozen once completed.
type Reconciliation struct {
	shared.TenantAggregateRoot
	BankAccountID      uuid.UUID       `json:"bank_account_id"`
	AccountID          uuid.UUID       `json:"account_id"` // linked ledger account
	StatementDate      time.Time       `json:"statement_date"`
	StatementStartDate time.Time       `json:"statement_start_date"`
	StatementEndDate   time.Time       `json:"statement_end_date"`
	StatementBalance   decimal.Decimal `json:"statement_balance"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	ClearedBalance     decimal.Decimal `json:"cleared_balance"`
	Difference         decimal.Decimal `json:"difference"`
	Status             Status          `json:"status"`
	CompletedAt        *time.Time      `json:"completed_at,omitempty"`
}

// NewReconciliation starts a session. The cleared balance begins at the
// opening balance and the difference at statement minus opening; both are
// recomputed as transactions are selected. Statement balances may be
// negative (overdraft) and flow through unchanged.
func NewReconciliation(
	tenantID, bankAccountID, accountID uuid.UUID,
	statementDate, statementStartDate, statementEndDate time.Time,
	statementBalance, openingBalance decimal.Decimal,
) (*Reconciliation, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if bankAccountID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bank account ID cannot be empty")
	}
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Ledger account ID cannot be empty")
	}
	if statementDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Statement date cannot be empty")
	}
	if statementEndDate.Before(statementStartDate) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Statement end date cannot precede start date")
	}

	return &Reconciliation{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BankAccountID:       bankAccountID,
		AccountID:           accountID,
		StatementDate:       statementDate,
		StatementStartDate:  statementStartDate,
		StatementEndDate:    statementEndDate,
		StatementBalance:    statementBalance,
		OpeningBalance:      openingBalance,
		ClearedBalance:      openingBalance,
		Difference:          statementBalance.Sub(openingBalance),
		Status:              StatusInProgress,
	}, nil
}

// ApplyCleared records a freshly computed cleared balance and derives the
// difference from it.
func (r *Reconciliation) ApplyCleared(clearedBalance decimal.Decimal) error {
	if r.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Completed reconciliations are immutable")
	}
	r.ClearedBalance = clearedBalance
	r.Difference = r.StatementBalance.Sub(clearedBalance)
	return nil
}

// IsBalanced reports whether the difference is within BalanceTolerance
func (r *Reconciliation) IsBalanced() bool {
	return r.Difference.Abs().LessThan(BalanceTolerance)
}

// Complete transitions the session to its terminal state. It refuses when
// the session is already completed or the difference is outside tolerance;
// a refused completion mutates nothing.
func (r *Reconciliation) Complete(now time.Time) error {
	if r.Status == StatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Reconciliation is already completed")
	}
	if !r.IsBalanced() {
		return shared.ErrNotBalanced
	}
	r.Status = StatusCompleted
	r.CompletedAt = &now
	r.IncrementVersion()
	return nil
}

// AuditEntityType implements audit.Auditable
func (r *Reconciliation) AuditEntityType() string {
	return "Reconciliation"
}

// AuditEntityID implements audit.Auditable
func (r *Reconciliation) AuditEntityID() uuid.UUID {
	return r.ID
}

// AuditSnapshot implements audit.Auditable
func (r *Reconciliation) AuditSnapshot() map[string]any {
	return map[string]any{
		"bank_account_id":   r.BankAccountID.String(),
		"account_id":        r.AccountID.String(),
		"statement_date":    r.StatementDate.Format(time.DateOnly),
		"statement_balance": r.StatementBalance.String(),
		"opening_balance":   r.OpeningBalance.String(),
		"cleared_balance":   r.ClearedBalance.String(),
		"difference":        r.Difference.String(),
		"status":            r.Status.String(),
	}
}

// Item matches one journal entry line into a reconciliation. Amount is
// signed: positive for debits (deposits), negative for credits
// (withdrawals). Items are replaced freely while the session is in
// progress and frozen on completion.
type Item struct {
	ID                 uuid.UUID       `json:"id"`
	ReconciliationID   uuid.UUID       `json:"reconciliation_id"`
	JournalEntryLineID uuid.UUID       `json:"journal_entry_line_id"`
	Amount             decimal.Decimal `json:"amount"`
	IsCleared          bool            `json:"is_cleared"`
	ClearedAt          *time.Time      `json:"cleared_at,omitempty"`
}
