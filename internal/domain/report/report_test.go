package report

import (
	"testing"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testAccount(t *testing.T, number, name string, category ledger.AccountCategory) ledger.Account {
	t.Helper()
	account, err := ledger.NewAccount(uuid.New(), number, name, category)
	require.NoError(t, err)
	return *account
}

func TestBuildTrialBalance_Balanced(t *testing.T) {
	tenantID := uuid.New()
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	// cash debited 500, revenue credited 500
	balances := []AccountBalance{
		{Account: testAccount(t, "1000", "Cash", ledger.CategoryAsset), NetDebit: amount("500.00")},
		{Account: testAccount(t, "4000", "Revenue", ledger.CategoryIncome), NetDebit: amount("-500.00")},
	}

	tb := BuildTrialBalance(tenantID, asOf, balances, now)

	require.Len(t, tb.Rows, 2)
	assert.True(t, tb.Rows[0].Debit.Equal(amount("500.00")))
	assert.True(t, tb.Rows[0].Credit.IsZero())
	assert.True(t, tb.Rows[1].Credit.Equal(amount("500.00")))
	assert.True(t, tb.TotalDebits.Equal(tb.TotalCredits))
	assert.True(t, tb.IsBalanced)
}

func TestBuildTrialBalance_FlagsImbalance(t *testing.T) {
	balances := []AccountBalance{
		{Account: testAccount(t, "1000", "Cash", ledger.CategoryAsset), NetDebit: amount("500.00")},
		{Account: testAccount(t, "4000", "Revenue", ledger.CategoryIncome), NetDebit: amount("-499.00")},
	}

	tb := BuildTrialBalance(uuid.New(), time.Now(), balances, time.Now())
	assert.False(t, tb.IsBalanced)
}

func TestBuildTrialBalance_Empty(t *testing.T) {
	tb := BuildTrialBalance(uuid.New(), time.Now(), nil, time.Now())
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.IsBalanced)
}

func TestBuildProfitAndLoss(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	balances := []AccountBalance{
		// revenue carries a credit balance: net debit is negative
		{Account: testAccount(t, "4000", "Sales", ledger.CategoryIncome), NetDebit: amount("-2000.00")},
		{Account: testAccount(t, "5000", "Rent", ledger.CategoryExpense), NetDebit: amount("600.00")},
		{Account: testAccount(t, "5100", "Materials", ledger.CategoryCostOfGoodsSold), NetDebit: amount("400.00")},
		// asset accounts are not part of profit and loss
		{Account: testAccount(t, "1000", "Cash", ledger.CategoryAsset), NetDebit: amount("1000.00")},
	}

	pl := BuildProfitAndLoss(uuid.New(), start, end, balances, time.Now().UTC())

	require.Len(t, pl.Income, 1)
	assert.True(t, pl.Income[0].Amount.Equal(amount("2000.00")))
	require.Len(t, pl.Expenses, 2)
	assert.True(t, pl.TotalIncome.Equal(amount("2000.00")))
	assert.True(t, pl.TotalExpense.Equal(amount("1000.00")))
	assert.True(t, pl.NetProfit.Equal(amount("1000.00")))
}

func TestBuildProfitAndLoss_Loss(t *testing.T) {
	balances := []AccountBalance{
		{Account: testAccount(t, "4000", "Sales", ledger.CategoryIncome), NetDebit: amount("-100.00")},
		{Account: testAccount(t, "5000", "Rent", ledger.CategoryExpense), NetDebit: amount("600.00")},
	}

	pl := BuildProfitAndLoss(uuid.New(), time.Now(), time.Now(), balances, time.Now())
	assert.True(t, pl.NetProfit.Equal(amount("-500.00")))
}

func TestBuildBalanceSheet(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	balances := []AccountBalance{
		{Account: testAccount(t, "1000", "Cash", ledger.CategoryAsset), NetDebit: amount("1500.00")},
		{Account: testAccount(t, "2000", "Loan", ledger.CategoryLiability), NetDebit: amount("-1000.00")},
		{Account: testAccount(t, "3000", "Owner Equity", ledger.CategoryEquity), NetDebit: amount("-500.00")},
		// income accounts do not appear on the balance sheet
		{Account: testAccount(t, "4000", "Sales", ledger.CategoryIncome), NetDebit: amount("-300.00")},
	}

	bs := BuildBalanceSheet(uuid.New(), asOf, balances, time.Now().UTC())

	assert.True(t, bs.TotalAssets.Equal(amount("1500.00")))
	assert.True(t, bs.TotalLiabilities.Equal(amount("1000.00")))
	assert.True(t, bs.TotalEquity.Equal(amount("500.00")))
	assert.True(t, bs.OffBalance.IsZero())
	assert.True(t, bs.IsConsistent())
}

func TestBuildBalanceSheet_ReportsOffBalance(t *testing.T) {
	balances := []AccountBalance{
		{Account: testAccount(t, "1000", "Cash", ledger.CategoryAsset), NetDebit: amount("1500.00")},
		{Account: testAccount(t, "2000", "Loan", ledger.CategoryLiability), NetDebit: amount("-1000.00")},
	}

	bs := BuildBalanceSheet(uuid.New(), time.Now(), balances, time.Now())
	assert.True(t, bs.OffBalance.Equal(amount("500.00")))
	assert.False(t, bs.IsConsistent())
}
