package report

import (
	"context"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/report"
	"github.com/google/uuid"
)

// Service aggregates posted ledger activity into financial reports. Reports
// are computed on demand from repository totals; nothing is cached or
// persisted, so they are always consistent with the ledger at read time.
type Service struct {
	accountRepo ledger.AccountRepository
	entryRepo   ledger.JournalEntryRepository
	now         func() time.Time
}

// NewService creates a new report Service
func NewService(accountRepo ledger.AccountRepository, entryRepo ledger.JournalEntryRepository) *Service {
	return &Service{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// TrialBalance computes the trial balance over posted entries up to asOf
func (s *Service) TrialBalance(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*report.TrialBalance, error) {
	if tenantID == uuid.Nil {
		return report.BuildTrialBalance(tenantID, asOf, nil, s.now()), nil
	}
	balances, err := s.accountBalances(ctx, tenantID, nil, &asOf, nil)
	if err != nil {
		return nil, err
	}
	return report.BuildTrialBalance(tenantID, asOf, balances, s.now()), nil
}

// ProfitAndLoss computes income and expenses over the period
func (s *Service) ProfitAndLoss(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) (*report.ProfitAndLoss, error) {
	if tenantID == uuid.Nil {
		return report.BuildProfitAndLoss(tenantID, periodStart, periodEnd, nil, s.now()), nil
	}
	categories := []ledger.AccountCategory{
		ledger.CategoryIncome,
		ledger.CategoryExpense,
		ledger.CategoryCostOfGoodsSold,
	}
	balances, err := s.accountBalances(ctx, tenantID, &periodStart, &periodEnd, categories)
	if err != nil {
		return nil, err
	}
	return report.BuildProfitAndLoss(tenantID, periodStart, periodEnd, balances, s.now()), nil
}

// BalanceSheet computes asset, liability and equity positions as of a date
func (s *Service) BalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (*report.BalanceSheet, error) {
	if tenantID == uuid.Nil {
		return report.BuildBalanceSheet(tenantID, asOf, nil, s.now()), nil
	}
	categories := []ledger.AccountCategory{
		ledger.CategoryAsset,
		ledger.CategoryLiability,
		ledger.CategoryEquity,
	}
	balances, err := s.accountBalances(ctx, tenantID, nil, &asOf, categories)
	if err != nil {
		return nil, err
	}
	return report.BuildBalanceSheet(tenantID, asOf, balances, s.now()), nil
}

// accountBalances loads the tenant's accounts, optionally restricted to
// categories, and pairs each with its posted net debit balance over the
// date range.
func (s *Service) accountBalances(ctx context.Context, tenantID uuid.UUID, from, to *time.Time, categories []ledger.AccountCategory) ([]report.AccountBalance, error) {
	accounts, err := s.accountsFor(ctx, tenantID, categories)
	if err != nil {
		return nil, err
	}

	balances := make([]report.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		debits, credits, err := s.entryRepo.PostedTotalsForAccount(ctx, tenantID, account.ID, from, to)
		if err != nil {
			return nil, err
		}
		net := debits.Sub(credits)
		if net.IsZero() {
			continue
		}
		balances = append(balances, report.AccountBalance{Account: account, NetDebit: net})
	}
	return balances, nil
}

func (s *Service) accountsFor(ctx context.Context, tenantID uuid.UUID, categories []ledger.AccountCategory) ([]ledger.Account, error) {
	if categories == nil {
		return s.accountRepo.FindAllForTenant(ctx, tenantID, false)
	}
	var accounts []ledger.Account
	for _, category := range categories {
		batch, err := s.accountRepo.FindByCategory(ctx, tenantID, category)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, batch...)
	}
	return accounts, nil
}
