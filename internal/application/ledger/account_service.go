package ledger

import (
	"context"

	auditapp "github.com/bookkeep/backend/internal/application/audit"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService provides application-level chart-of-accounts operations.
// Every mutation runs in one transaction together with its audit entry, so
// a failed audit write rolls the mutation back.
type AccountService struct {
	accountRepo     ledger.AccountRepository
	bankAccountRepo ledger.BankAccountRepository
	recorder        *auditapp.Recorder
	txManager       shared.TransactionManager
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo ledger.AccountRepository,
	bankAccountRepo ledger.BankAccountRepository,
	recorder *auditapp.Recorder,
	txManager shared.TransactionManager,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		bankAccountRepo: bankAccountRepo,
		recorder:        recorder,
		txManager:       txManager,
	}
}

// CreateAccountRequest carries the fields for creating a ledger account
type CreateAccountRequest struct {
	AccountNumber  string                 `json:"account_number" binding:"required"`
	Name           string                 `json:"name" binding:"required"`
	Category       ledger.AccountCategory `json:"category" binding:"required"`
	Description    string                 `json:"description"`
	OpeningBalance decimal.Decimal        `json:"opening_balance"`
}

// CreateAccount creates a ledger account on the tenant's chart of accounts
func (s *AccountService) CreateAccount(ctx context.Context, tenantID uuid.UUID, req CreateAccountRequest) (*ledger.Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	exists, err := s.accountRepo.ExistsByAccountNumber(ctx, tenantID, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	account, err := ledger.NewAccount(tenantID, req.AccountNumber, req.Name, req.Category)
	if err != nil {
		return nil, err
	}
	account.Description = req.Description
	if !req.OpeningBalance.IsZero() {
		account.SetOpeningBalance(req.OpeningBalance)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.recorder.RecordCreated(ctx, tenantID, account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateAccountRequest carries the mutable fields of a ledger account
type UpdateAccountRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	OpeningBalance *decimal.Decimal `json:"opening_balance"`
}

// UpdateAccount updates an account's descriptive fields and opening balance
func (s *AccountService) UpdateAccount(ctx context.Context, tenantID, accountID uuid.UUID, req UpdateAccountRequest) (*ledger.Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	oldSnapshot := account.AuditSnapshot()

	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Account name cannot be empty")
		}
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.OpeningBalance != nil {
		account.SetOpeningBalance(*req.OpeningBalance)
	}
	account.IncrementVersion()

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, account, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks an account inactive, keeping its history
func (s *AccountService) DeactivateAccount(ctx context.Context, tenantID, accountID uuid.UUID) (*ledger.Account, error) {
	return s.setActive(ctx, tenantID, accountID, false)
}

// ActivateAccount re-enables an inactive account
func (s *AccountService) ActivateAccount(ctx context.Context, tenantID, accountID uuid.UUID) (*ledger.Account, error) {
	return s.setActive(ctx, tenantID, accountID, true)
}

func (s *AccountService) setActive(ctx context.Context, tenantID, accountID uuid.UUID, active bool) (*ledger.Account, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	oldSnapshot := account.AuditSnapshot()

	if active {
		err = account.Activate()
	} else {
		err = account.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return err
		}
		return s.recorder.RecordUpdated(ctx, tenantID, account, oldSnapshot)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// CreateBankAccountRequest carries the fields for creating a bank account
type CreateBankAccountRequest struct {
	Name          string    `json:"name" binding:"required"`
	AccountID     uuid.UUID `json:"account_id" binding:"required"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
}

// CreateBankAccount links an external bank account to a ledger account
func (s *AccountService) CreateBankAccount(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*ledger.BankAccount, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}

	// the linked ledger account must exist for this tenant
	if _, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, req.AccountID); err != nil {
		return nil, err
	}

	bankAccount, err := ledger.NewBankAccount(tenantID, req.Name, req.AccountID, req.BankName, req.AccountNumber)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bankAccountRepo.Save(ctx, bankAccount); err != nil {
			return err
		}
		return s.recorder.RecordCreated(ctx, tenantID, bankAccount)
	})
	if err != nil {
		return nil, err
	}
	return bankAccount, nil
}
