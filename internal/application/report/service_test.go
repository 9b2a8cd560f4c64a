package report

import (
	"context"
	"testing"
	"time"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	ledgerapp "github.com/bookkeep/backend/internal/application/ledger"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/infrastructure/locking"
	"github.com/bookkeep/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	reports  *Service
	ledger   *ledgerapp.AccountService
	journal  *ledgerapp.JournalService
	tenantID uuid.UUID
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
		reports:  NewService(accountRepo, entryRepo),
		ledger:   ledgerapp.NewAccountService(accountRepo, bankAccountRepo, recorder, txManager),
		journal:  ledgerapp.NewJournalService(entryRepo, accountRepo, recorder, txManager),
		tenantID: uuid.New(),
	}
}

func (env *testEnv) createAccount(t *testing.T, number, name string, category ledger.AccountCategory) *ledger.Account {
	t.Helper()
	account, err := env.ledger.CreateAccount(context.Background(), env.tenantID, ledgerapp.CreateAccountRequest{
		AccountNumber: number,
		Name:          name,
		Category:      category,
	})
	require.NoError(t, err)
	return account
}

func (env *testEnv) postEntry(t *testing.T, number string, entryDate time.Time, debitID, creditID uuid.UUID, amt string) {
	t.Helper()
	amount := decimal.RequireFromString(amt)
	entry, err := env.journal.CreateEntry(context.Background(), env.tenantID, ledgerapp.CreateEntryRequest{
		EntryNumber: number,
		EntryDate:   entryDate,
		Lines: []ledgerapp.LineRequest{
			{AccountID: debitID, Type: ledger.LineTypeDebit, Amount: amount},
			{AccountID: creditID, Type: ledger.LineTypeCredit, Amount: amount},
		},
	})
	require.NoError(t, err)
	_, err = env.journal.PostEntry(context.Background(), env.tenantID, entry.ID)
	require.NoError(t, err)
}

func TestService_TrialBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	rent := env.createAccount(t, "5000", "Rent", ledger.CategoryExpense)

	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	env.postEntry(t, "JE-001", march, cash.ID, revenue.ID, "2000.00")
	env.postEntry(t, "JE-002", march, rent.ID, cash.ID, "600.00")

	tb, err := env.reports.TrialBalance(ctx, env.tenantID, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, tb.Rows, 3)
	assert.True(t, tb.IsBalanced)
	assert.True(t, tb.TotalDebits.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, tb.TotalCredits.Equal(decimal.RequireFromString("2000.00")))
}

func TestService_TrialBalanceRespectsAsOf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	env.postEntry(t, "JE-001", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), cash.ID, revenue.ID, "2000.00")

	// before the entry date the books are empty
	tb, err := env.reports.TrialBalance(ctx, env.tenantID, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.IsBalanced)
}

func TestService_ProfitAndLoss(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	rent := env.createAccount(t, "5000", "Rent", ledger.CategoryExpense)

	march := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	env.postEntry(t, "JE-001", march, cash.ID, revenue.ID, "2000.00")
	env.postEntry(t, "JE-002", march, rent.ID, cash.ID, "600.00")
	// outside the reporting period
	env.postEntry(t, "JE-003", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), cash.ID, revenue.ID, "999.00")

	pl, err := env.reports.ProfitAndLoss(ctx, env.tenantID,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, pl.TotalIncome.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, pl.TotalExpense.Equal(decimal.RequireFromString("600.00")))
	assert.True(t, pl.NetProfit.Equal(decimal.RequireFromString("1400.00")))
}

func TestService_BalanceSheet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	equity := env.createAccount(t, "3000", "Owner Equity", ledger.CategoryEquity)
	env.postEntry(t, "JE-001", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), cash.ID, equity.ID, "5000.00")

	bs, err := env.reports.BalanceSheet(ctx, env.tenantID, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, bs.TotalAssets.Equal(decimal.RequireFromString("5000.00")))
	assert.True(t, bs.TotalEquity.Equal(decimal.RequireFromString("5000.00")))
	assert.True(t, bs.OffBalance.IsZero())
	assert.True(t, bs.IsConsistent())
}

func TestService_NilTenantYieldsEmptyReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tb, err := env.reports.TrialBalance(ctx, uuid.Nil, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.IsBalanced)

	pl, err := env.reports.ProfitAndLoss(ctx, uuid.Nil, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, pl.NetProfit.IsZero())
}
