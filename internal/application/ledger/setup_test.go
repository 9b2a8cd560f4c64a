package ledger

import (
	"context"
	"testing"
	"time"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	auditdomain "github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/infrastructure/locking"
	"github.com/bookkeep/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	accounts  *AccountService
	journal   *JournalService
	queries   *QueryService
	auditRepo auditdomain.Repository
	tenantID  uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := persistence.NewSQLiteDatabase()
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	accountRepo := persistence.NewGormAccountRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	entryRepo := persistence.NewGormJournalEntryRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)
	recorder := auditapp.NewRecorder(auditRepo, locking.NewLocalLocker(), 0)

	return &testEnv{
		accounts:  NewAccountService(accountRepo, bankAccountRepo, recorder, txManager),
		journal:   NewJournalService(entryRepo, accountRepo, recorder, txManager),
		queries:   NewQueryService(accountRepo, entryRepo, bankAccountRepo),
		auditRepo: auditRepo,
		tenantID:  uuid.New(),
	}
}

func (env *testEnv) createAccount(t *testing.T, number, name string, category ledger.AccountCategory) *ledger.Account {
	t.Helper()
	account, err := env.accounts.CreateAccount(context.Background(), env.tenantID, CreateAccountRequest{
		AccountNumber: number,
		Name:          name,
		Category:      category,
	})
	require.NoError(t, err)
	return account
}

// postBalancedEntry creates and posts a two-line entry debiting debitID and
// crediting creditID with the given amount.
func (env *testEnv) postBalancedEntry(t *testing.T, number string, debitID, creditID uuid.UUID, amt string) *ledger.JournalEntry {
	t.Helper()

	amount := decimal.RequireFromString(amt)
	entry, err := env.journal.CreateEntry(context.Background(), env.tenantID, CreateEntryRequest{
		EntryNumber: number,
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "test entry " + number,
		Lines: []LineRequest{
			{AccountID: debitID, Type: ledger.LineTypeDebit, Amount: amount},
			{AccountID: creditID, Type: ledger.LineTypeCredit, Amount: amount},
		},
	})
	require.NoError(t, err)

	posted, err := env.journal.PostEntry(context.Background(), env.tenantID, entry.ID)
	require.NoError(t, err)
	return posted
}
