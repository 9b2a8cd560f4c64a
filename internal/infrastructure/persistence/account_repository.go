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

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForTenant finds an account by ID for a specific tenant
func (r *GormAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
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

// FindByAccountNumber finds by account number for a tenant
func (r *GormAccountRepository) FindByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND account_number = ?", tenantID, accountNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds accounts for a tenant, optionally only active ones
func (r *GormAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]ledger.Account, error) {
	query := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var accountModels []models.AccountModel
	if err := query.Order("account_number ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindByCategory finds accounts of a given category for a tenant
func (r *GormAccountRepository) FindByCategory(ctx context.Context, tenantID uuid.UUID, category ledger.AccountCategory) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND category = ?", tenantID, category).
		Order("account_number ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	if err := dbFor(ctx, r.db).WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ExistsByAccountNumber checks account number uniqueness within a tenant
func (r *GormAccountRepository) ExistsByAccountNumber(ctx context.Context, tenantID uuid.UUID, accountNumber string) (bool, error) {
	var count int64
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("tenant_id = ? AND account_number = ?", tenantID, accountNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
