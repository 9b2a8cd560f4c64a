package report

import (
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImbalanceTolerance is the cent threshold at which a trial balance is
// flagged unbalanced.
var ImbalanceTolerance = decimal.RequireFromString("0.01")

// AccountAmount pairs an account with a computed amount
type AccountAmount struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Amount        decimal.Decimal `json:"amount"`
}

// ProfitAndLoss summarizes income and expense activity over a date range.
// Income is credits minus debits of income accounts; expense is debits
// minus credits of expense and cost-of-goods-sold accounts; both over
// posted entries only.
type ProfitAndLoss struct {
	TenantID     uuid.UUID       `json:"tenant_id"`
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Income       []AccountAmount `json:"income"`
	Expenses     []AccountAmount `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetProfit    decimal.Decimal `json:"net_profit"` // TotalIncome - TotalExpense
	GeneratedAt  time.Time       `json:"generated_at"`
}

// BalanceSheet reports asset, liability and equity balances as of a single
// date. The accounting equation (assets = liabilities + equity) is reported
// through OffBalance, not enforced; enforcement belongs to the posting path.
type BalanceSheet struct {
	TenantID         uuid.UUID       `json:"tenant_id"`
	AsOf             time.Time       `json:"as_of"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	OffBalance       decimal.Decimal `json:"off_balance"` // assets - (liabilities + equity)
	GeneratedAt      time.Time       `json:"generated_at"`
}

// IsConsistent reports whether the accounting equation holds
func (b *BalanceSheet) IsConsistent() bool {
	return b.OffBalance.IsZero()
}

// TrialBalanceRow is one account's net balance split into debit/credit
// columns.
type TrialBalanceRow struct {
	AccountID     uuid.UUID       `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	AccountName   string          `json:"account_name"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalance lists per-account net balances and flags imbalance when the
// debit and credit columns disagree by a cent or more.
type TrialBalance struct {
	TenantID     uuid.UUID         `json:"tenant_id"`
	AsOf         time.Time         `json:"as_of"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"total_debits"`
	TotalCredits decimal.Decimal   `json:"total_credits"`
	IsBalanced   bool              `json:"is_balanced"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// AccountBalance is the raw input the report builders consume: an account
// plus its net signed balance (debits minus credits of posted lines).
type AccountBalance struct {
	Account ledger.Account
	// NetDebit is total debits minus total credits. Positive means the
	// account carries a debit balance.
	NetDebit decimal.Decimal
}

// BuildTrialBalance splits each account's net balance into a debit or
// credit column and totals the columns.
func BuildTrialBalance(tenantID uuid.UUID, asOf time.Time, balances []AccountBalance, now time.Time) *TrialBalance {
	tb := &TrialBalance{
		TenantID:     tenantID,
		AsOf:         asOf,
		Rows:         make([]TrialBalanceRow, 0, len(balances)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		GeneratedAt:  now,
	}

	for _, b := range balances {
		row := TrialBalanceRow{
			AccountID:     b.Account.ID,
			AccountNumber: b.Account.AccountNumber,
			AccountName:   b.Account.Name,
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
		}
		if b.NetDebit.IsNegative() {
			row.Credit = b.NetDebit.Neg()
		} else {
			row.Debit = b.NetDebit
		}
		tb.Rows = append(tb.Rows, row)
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
	}

	tb.IsBalanced = tb.TotalDebits.Sub(tb.TotalCredits).Abs().LessThan(ImbalanceTolerance)
	return tb
}

// BuildProfitAndLoss aggregates income and expense balances over a period.
// Each AccountBalance must already be restricted to posted lines within
// the period.
func BuildProfitAndLoss(tenantID uuid.UUID, periodStart, periodEnd time.Time, balances []AccountBalance, now time.Time) *ProfitAndLoss {
	pl := &ProfitAndLoss{
		TenantID:     tenantID,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		Income:       make([]AccountAmount, 0),
		Expenses:     make([]AccountAmount, 0),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		GeneratedAt:  now,
	}

	for _, b := range balances {
		entry := AccountAmount{
			AccountID:     b.Account.ID,
			AccountNumber: b.Account.AccountNumber,
			AccountName:   b.Account.Name,
		}
		switch b.Account.Category {
		case ledger.CategoryIncome:
			// income accounts grow on credit
			entry.Amount = b.NetDebit.Neg()
			pl.Income = append(pl.Income, entry)
			pl.TotalIncome = pl.TotalIncome.Add(entry.Amount)
		case ledger.CategoryExpense, ledger.CategoryCostOfGoodsSold:
			entry.Amount = b.NetDebit
			pl.Expenses = append(pl.Expenses, entry)
			pl.TotalExpense = pl.TotalExpense.Add(entry.Amount)
		}
	}

	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpense)
	return pl
}

// BuildBalanceSheet aggregates asset, liability and equity balances as of a
// date and reports how far off the accounting equation is.
func BuildBalanceSheet(tenantID uuid.UUID, asOf time.Time, balances []AccountBalance, now time.Time) *BalanceSheet {
	bs := &BalanceSheet{
		TenantID:         tenantID,
		AsOf:             asOf,
		Assets:           make([]AccountAmount, 0),
		Liabilities:      make([]AccountAmount, 0),
		Equity:           make([]AccountAmount, 0),
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		GeneratedAt:      now,
	}

	for _, b := range balances {
		entry := AccountAmount{
			AccountID:     b.Account.ID,
			AccountNumber: b.Account.AccountNumber,
			AccountName:   b.Account.Name,
		}
		switch b.Account.Category {
		case ledger.CategoryAsset:
			entry.Amount = b.NetDebit
			bs.Assets = append(bs.Assets, entry)
			bs.TotalAssets = bs.TotalAssets.Add(entry.Amount)
		case ledger.CategoryLiability:
			entry.Amount = b.NetDebit.Neg()
			bs.Liabilities = append(bs.Liabilities, entry)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(entry.Amount)
		case ledger.CategoryEquity:
			entry.Amount = b.NetDebit.Neg()
			bs.Equity = append(bs.Equity, entry)
			bs.TotalEquity = bs.TotalEquity.Add(entry.Amount)
		}
	}

	bs.OffBalance = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
	return bs
}
