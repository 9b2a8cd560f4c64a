package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationCandidatePageSize caps the number of unreconciled lines
// returned per reconciliation candidate query.
const ReconciliationCandidatePageSize = 100

// LineFilter defines filtering options for reconciliation candidate queries
type LineFilter struct {
	Search    string    // free-text match on line/entry description
	Direction *LineType // DEBIT = deposits, CREDIT = withdrawals
	Limit     int       // capped at ReconciliationCandidatePageSize
}

// AccountRepository defines the interface for ledger account persistence
type AccountRepository interface {
	// FindByIDForTenant finds an account by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Account, error)

	// FindByAccountNumber finds by account number for a tenant
	FindByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (*Account, error)

	// FindAllForTenant finds accounts for a tenant, optionally only active ones
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]Account, error)

	// FindByCategory finds accounts of a given category for a tenant
	FindByCategory(ctx context.Context, tenantID uuid.UUID, category AccountCategory) ([]Account, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// ExistsByAccountNumber checks account number uniqueness within a tenant
	ExistsByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (bool, error)
}

// JournalEntryRepository defines the interface for journal entry persistence
type JournalEntryRepository interface {
	// FindByIDForTenant finds a journal entry with its lines
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*JournalEntry, error)

	// FindByEntryNumber finds by entry number for a tenant
	FindByEntryNumber(ctx context.Context, tenantID uuid.UUID, entryNumber string) (*JournalEntry, error)

	// Save creates or updates a journal entry and its lines
	Save(ctx context.Context, entry *JournalEntry) error

	// PostedLinesForAccount returns lines of posted entries touching the
	// account, bounded by the optional [from, to] entry-date range.
	PostedLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]JournalEntryLine, error)

	// PostedTotalsForAccount sums debit and credit amounts of posted lines
	// for the account, bounded by the optional [from, to] entry-date range.
	PostedTotalsForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) (debits, credits decimal.Decimal, err error)

	// UnreconciledLinesForAccount returns posted, not-yet-reconciled lines
	// for the account, newest entry first, capped by filter.Limit.
	UnreconciledLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter LineFilter) ([]JournalEntryLine, error)

	// FindLinesByIDs loads posted, unreconciled lines of the account by ID.
	// Lines that do not exist, are reconciled, or belong to another account
	// or tenant are silently omitted.
	FindLinesByIDs(ctx context.Context, tenantID, accountID uuid.UUID, lineIDs []uuid.UUID) ([]JournalEntryLine, error)

	// MarkLinesReconciled flags the given lines as reconciled
	MarkLinesReconciled(ctx context.Context, tenantID uuid.UUID, lineIDs []uuid.UUID) error
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	// FindByIDForTenant finds a bank account by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)

	// FindAllForTenant lists bank accounts for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]BankAccount, error)

	// Save creates or updates a bank account
	Save(ctx context.Context, bankAccount *BankAccount) error
}
