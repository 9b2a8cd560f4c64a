package ledger

import (
	"context"
	"time"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalService provides application-level journal entry operations.
// Mutations and their audit entries commit or roll back together.
type JournalService struct {
	entryRepo   ledger.JournalEntryRepository
	accountRepo ledger.AccountRepository
	recorder    *auditapp.Recorder
	txManager   shared.TransactionManager
	now         func() time.Time
}

// NewJournalService creates a new JournalService
func NewJournalService(
	entryRepo ledger.JournalEntryRepository,
	accountRepo ledger.AccountRepository,
	recorder *auditapp.Recorder,
	txManager shared.TransactionManager,
) *JournalService {
	return &JournalService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		recorder:    recorder,
		txManager:   txManager,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// LineRequest is one debit or credit line of an entry request
type LineRequest struct {
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	Type        ledger.LineType `json:"type" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	ContactID   *uuid.UUID      `json:"contact_id"`
}

// CreateEntryRequest carries the fields for creating a draft journal entry
type CreateEntryRequest struct {
	EntryNumber string        `json:"entry_number" binding:"required"`
	EntryDate   time.Time     `json:"entry_date" binding:"required"`
	Description string        `json:"description"`
	Lines       []LineRequest `json:"lines"`
}

// CreateEntry creates a draft journal entry with its lines. Drafts may be
// unbalanced; balance is enforced at posting time.
func (s *JournalService) CreateEntry(ctx context.Context, tenantID uuid.UUID, req CreateEntryRequest) (*ledger.JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	if _, err := s.entryRepo.FindByEntryNumber(ctx, tenantID, req.EntryNumber); err == nil {
		return nil, shared.ErrAlreadyExists
	}

	entry, err := ledger.NewJournalEntry(tenantID, req.EntryNumber, req.EntryDate, req.Description)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Lines {
		if err := s.checkLineAccount(ctx, tenantID, line.AccountID); err != nil {
			return nil, err
		}
		if err := entry.AddLine(line.AccountID, line.Type, line.Amount, line.Description, line.ContactID); err != nil {
			return nil, err
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.recorder.RecordCreated(ctx, tenantID, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntry finalizes a draft entry. Posting requires balanced debits and
// credits; a posted entry is immutable except through ReverseEntry.
func (s *JournalService) PostEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*ledger.JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	oldSnapshot := entry.AuditSnapshot()

	if err := entry.Post(s.now()); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, entry, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// VoidEntry discards a draft entry
func (s *JournalService) VoidEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*ledger.JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	oldSnapshot := entry.AuditSnapshot()

	if err := entry.Void(); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, entry); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, entry, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ReverseEntryRequest carries the fields for reversing a posted entry
type ReverseEntryRequest struct {
	EntryNumber string    `json:"entry_number" binding:"required"`
	EntryDate   time.Time `json:"entry_date" binding:"required"`
}

// ReverseEntry creates and posts a mirror entry for a posted one. The
// original is untouched; corrections to posted entries only ever add.
func (s *JournalService) ReverseEntry(ctx context.Context, tenantID, entryID uuid.UUID, req ReverseEntryRequest) (*ledger.JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	entry, err := s.entryRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	reversal, err := entry.Reverse(req.EntryNumber, req.EntryDate, s.now())
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.entryRepo.Save(ctx, reversal); err != nil {
			return err
		}
		return s.recorder.RecordCreated(ctx, tenantID, reversal)
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

// checkLineAccount rejects lines against unknown or inactive accounts
func (s *JournalService) checkLineAccount(ctx context.Context, tenantID, accountID uuid.UUID) error {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return err
	}
	if !account.Active {
		return shared.NewDomainError("INVALID_STATE", "Inactive accounts accept no new journal lines")
	}
	return nil
}
