package ledger

import (
	"context"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QueryService provides read-only ledger queries. Queries never mutate
// anything and are not audited. A nil tenant yields empty results rather
// than an error: reads are tenant-scoped by construction, so there is
// nothing to leak.
type QueryService struct {
	accountRepo     ledger.AccountRepository
	entryRepo       ledger.JournalEntryRepository
	bankAccountRepo ledger.BankAccountRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(
	accountRepo ledger.AccountRepository,
	entryRepo ledger.JournalEntryRepository,
	bankAccountRepo ledger.BankAccountRepository,
) *QueryService {
	return &QueryService{
		accountRepo:     accountRepo,
		entryRepo:       entryRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// AccountBalance is an account's balance in its natural sign
type AccountBalance struct {
	AccountID    uuid.UUID       `json:"account_id"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	// Balance is signed by the account's normal balance: debits minus
	// credits for debit-normal accounts, the reverse otherwise.
	Balance decimal.Decimal `json:"balance"`
}

// Balance computes an account's balance over posted entries, optionally
// bounded by [from, to] entry dates.
func (s *QueryService) Balance(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) (*AccountBalance, error) {
	if tenantID == uuid.Nil {
		return &AccountBalance{
			AccountID:    accountID,
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
			Balance:      decimal.Zero,
		}, nil
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	debits, credits, err := s.entryRepo.PostedTotalsForAccount(ctx, tenantID, accountID, from, to)
	if err != nil {
		return nil, err
	}

	balance := debits.Sub(credits)
	if !account.Category.IncreasesOnDebit() {
		balance = credits.Sub(debits)
	}
	return &AccountBalance{
		AccountID:    accountID,
		TotalDebits:  debits,
		TotalCredits: credits,
		Balance:      balance,
	}, nil
}

// PostedLines returns the posted journal lines touching an account,
// oldest first, optionally bounded by [from, to] entry dates.
func (s *QueryService) PostedLines(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]ledger.JournalEntryLine, error) {
	if tenantID == uuid.Nil {
		return []ledger.JournalEntryLine{}, nil
	}
	return s.entryRepo.PostedLinesForAccount(ctx, tenantID, accountID, from, to)
}

// AvailableForReconciliation returns the posted, unreconciled lines of the
// ledger account linked to the given bank account. These are the candidate
// transactions a reconciliation session selects from.
func (s *QueryService) AvailableForReconciliation(ctx context.Context, tenantID, bankAccountID uuid.UUID, filter ledger.LineFilter) ([]ledger.JournalEntryLine, error) {
	if tenantID == uuid.Nil {
		return []ledger.JournalEntryLine{}, nil
	}

	bankAccount, err := s.bankAccountRepo.FindByIDForTenant(ctx, tenantID, bankAccountID)
	if err != nil {
		return nil, err
	}
	return s.entryRepo.UnreconciledLinesForAccount(ctx, tenantID, bankAccount.AccountID, filter)
}

// GetAccount returns one account of the tenant
func (s *QueryService) GetAccount(ctx context.Context, tenantID, accountID uuid.UUID) (*ledger.Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	return s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
}

// ListAccounts returns the tenant's chart of accounts
func (s *QueryService) ListAccounts(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]ledger.Account, error) {
	if tenantID == uuid.Nil {
		return []ledger.Account{}, nil
	}
	return s.accountRepo.FindAllForTenant(ctx, tenantID, activeOnly)
}

// ListBankAccounts returns the tenant's bank accounts
func (s *QueryService) ListBankAccounts(ctx context.Context, tenantID uuid.UUID) ([]ledger.BankAccount, error) {
	if tenantID == uuid.Nil {
		return []ledger.BankAccount{}, nil
	}
	return s.bankAccountRepo.FindAllForTenant(ctx, tenantID)
}

// GetEntry returns one journal entry with its lines
func (s *QueryService) GetEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*ledger.JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	return s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
}
