package reconciliation

import (
	"context"
	"errors"
	"time"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/reconciliation"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service orchestrates bank reconciliation sessions: starting them, saving
// selection progress and completing them. Completion is atomic: items, line
// flags, the status transition and the audit entries commit together or not
// at all.
type Service struct {
	recRepo         reconciliation.Repository
	entryRepo       ledger.JournalEntryRepository
	accountRepo     ledger.AccountRepository
	bankAccountRepo ledger.BankAccountRepository
	recorder        *auditapp.Recorder
	txManager       shared.TransactionManager
	now             func() time.Time
}

// NewService creates a new reconciliation Service
func NewService(
	recRepo reconciliation.Repository,
	entryRepo ledger.JournalEntryRepository,
	accountRepo ledger.AccountRepository,
	bankAccountRepo ledger.BankAccountRepository,
	recorder *auditapp.Recorder,
	txManager shared.TransactionManager,
) *Service {
	return &Service{
		recRepo:         recRepo,
		entryRepo:       entryRepo,
		accountRepo:     accountRepo,
		bankAccountRepo: bankAccountRepo,
		recorder:        recorder,
		txManager:       txManager,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// StartRequest carries the fields for starting a reconciliation session
type StartRequest struct {
	BankAccountID    uuid.UUID       `json:"bank_account_id" binding:"required"`
	StatementDate    time.Time       `json:"statement_date" binding:"required"`
	StatementBalance decimal.Decimal `json:"statement_balance"`
}

// Start opens a reconciliation session for a bank account. The opening
// balance carries over from the last completed reconciliation's statement
// balance, or the linked account's configured opening balance for a first
// reconciliation. The statement period likewise continues where the prior
// one ended.
func (s *Service) Start(ctx context.Context, tenantID uuid.UUID, req StartRequest) (*reconciliation.Reconciliation, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	bankAccount, err := s.bankAccountRepo.FindByIDForTenant(ctx, tenantID, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	openingBalance, startDate, err := s.openingPosition(ctx, tenantID, bankAccount, req.StatementDate)
	if err != nil {
		return nil, err
	}

	rec, err := reconciliation.NewReconciliation(
		tenantID, bankAccount.ID, bankAccount.AccountID,
		req.StatementDate, startDate, req.StatementDate,
		req.StatementBalance, openingBalance,
	)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.recRepo.Save(ctx, rec); err != nil {
			return err
		}
		return s.recorder.RecordCreated(ctx, tenantID, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// openingPosition derives the opening balance and statement start date from
// the bank account's reconciliation history.
func (s *Service) openingPosition(ctx context.Context, tenantID uuid.UUID, bankAccount *ledger.BankAccount, statementDate time.Time) (decimal.Decimal, time.Time, error) {
	last, err := s.recRepo.FindLastCompletedForBankAccount(ctx, tenantID, bankAccount.ID)
	if err == nil {
		return last.StatementBalance, last.StatementEndDate.AddDate(0, 0, 1), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero, time.Time{}, err
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, bankAccount.AccountID)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	startDate := time.Date(statementDate.Year(), time.January, 1, 0, 0, 0, 0, statementDate.Location())
	return account.OpeningBalance, startDate, nil
}

// Progress is the state of an in-progress session after a save
type Progress struct {
	Reconciliation *reconciliation.Reconciliation `json:"reconciliation"`
	SelectedLines  []ledger.JournalEntryLine      `json:"selected_lines"`
	IsBalanced     bool                           `json:"is_balanced"`
}

// SaveProgress persists the session's current selection. The selection
// replaces whatever was saved before; saving the same selection twice is a
// no-op on the persisted state. Line ids that are unknown, already
// reconciled or foreign to the account are dropped silently.
func (s *Service) SaveProgress(ctx context.Context, tenantID, reconciliationID uuid.UUID, lineIDs []uuid.UUID) (*Progress, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	rec, session, err := s.loadSession(ctx, tenantID, reconciliationID, lineIDs)
	if err != nil {
		return nil, err
	}
	oldSnapshot := rec.AuditSnapshot()

	if err := rec.ApplyCleared(session.ClearedBalance()); err != nil {
		return nil, err
	}
	rec.IncrementVersion()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.recRepo.SaveWithLock(ctx, rec); err != nil {
			return err
		}
		if err := s.recRepo.ReplaceItems(ctx, tenantID, rec.ID, session.Items(s.now())); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, rec, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}

	return &Progress{
		Reconciliation: rec,
		SelectedLines:  session.SelectedLines(),
		IsBalanced:     session.IsBalanced(),
	}, nil
}

// Finish completes the session with the given final selection. When the
// difference is outside tolerance it refuses with shared.ErrNotBalanced
// before touching anything durable. On success the items, the reconciled
// flags on the matched lines, the status transition and the audit entry
// commit in one transaction, grouped under one batch id.
func (s *Service) Finish(ctx context.Context, tenantID, reconciliationID uuid.UUID, lineIDs []uuid.UUID) (*reconciliation.Reconciliation, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	rec, session, err := s.loadSession(ctx, tenantID, reconciliationID, lineIDs)
	if err != nil {
		return nil, err
	}
	oldSnapshot := rec.AuditSnapshot()

	if err := rec.ApplyCleared(session.ClearedBalance()); err != nil {
		return nil, err
	}
	if err := rec.Complete(s.now()); err != nil {
		return nil, err
	}

	selected := session.SelectedLines()
	selectedIDs := make([]uuid.UUID, len(selected))
	for i, l := range selected {
		selectedIDs[i] = l.ID
	}

	ctx, _ = audit.WithBatch(ctx)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.recRepo.SaveWithLock(ctx, rec); err != nil {
			return err
		}
		if err := s.recRepo.ReplaceItems(ctx, tenantID, rec.ID, session.Items(s.now())); err != nil {
			return err
		}
		if err := s.entryRepo.MarkLinesReconciled(ctx, tenantID, selectedIDs); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, rec, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// loadSession loads an in-progress reconciliation and builds its selection
// session over the account's unreconciled lines.
func (s *Service) loadSession(ctx context.Context, tenantID, reconciliationID uuid.UUID, lineIDs []uuid.UUID) (*reconciliation.Reconciliation, *reconciliation.Session, error) {
	rec, err := s.recRepo.FindByIDForTenant(ctx, tenantID, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	if rec.Status == reconciliation.StatusCompleted {
		return nil, nil, shared.NewDomainError("INVALID_STATE", "Completed reconciliations are immutable")
	}

	lines, err := s.entryRepo.FindLinesByIDs(ctx, tenantID, rec.AccountID, lineIDs)
	if err != nil {
		return nil, nil, err
	}

	session := reconciliation.NewSession(rec, lines)
	for _, l := range lines {
		session.Select(l.ID)
	}
	return rec, session, nil
}

// Get returns one reconciliation with its persisted items
func (s *Service) Get(ctx context.Context, tenantID, reconciliationID uuid.UUID) (*reconciliation.Reconciliation, []reconciliation.Item, error) {
	if tenantID == uuid.Nil {
		return nil, nil, shared.ErrNotFound
	}
	rec, err := s.recRepo.FindByIDForTenant(ctx, tenantID, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.recRepo.ItemsForReconciliation(ctx, tenantID, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	return rec, items, nil
}

// List returns the tenant's reconciliations, newest statement first
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]reconciliation.Reconciliation, error) {
	if tenantID == uuid.Nil {
		return []reconciliation.Reconciliation{}, nil
	}
	return s.recRepo.ListForTenant(ctx, tenantID, filter)
}
