package persistence

import (
	"context"
	"errors"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements ledger.BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID for a tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.BankAccount, error) {
	var model models.BankAccountModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists bank accounts for a tenant
func (r *GormBankAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ledger.BankAccount, error) {
	var bankModels []models.BankAccountModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&bankModels).Error; err != nil {
		return nil, err
	}
	bankAccounts := make([]ledger.BankAccount, len(bankModels))
	for i, model := range bankModels {
		bankAccounts[i] = *model.ToDomain()
	}
	return bankAccounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, bankAccount *ledger.BankAccount) error {
	model := models.BankAccountModelFromDomain(bankAccount)
	return dbFor(ctx, r.db).WithContext(ctx).Save(model).Error
}
