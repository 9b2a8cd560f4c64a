package persistence

import (
	"context"
	"errors"

	"github.com/bookkeep/backend/internal/domain/reconciliation"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReconciliationRepository implements reconciliation.Repository using GORM
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

// FindByIDForTenant finds a reconciliation by ID for a tenant
func (r *GormReconciliationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*reconciliation.Reconciliation, error) {
	var model models.ReconciliationModel
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

// FindLastCompletedForBankAccount returns the most recently completed
// reconciliation for the bank account, by statement date.
func (r *GormReconciliationRepository) FindLastCompletedForBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID) (*reconciliation.Reconciliation, error) {
	var model models.ReconciliationModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND bank_account_id = ? AND status = ?",
			tenantID, bankAccountID, reconciliation.StatusCompleted).
		Order("statement_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForTenant lists reconciliations for a tenant, newest first
func (r *GormReconciliationRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]reconciliation.Reconciliation, error) {
	query := dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.ReconciliationModel{}).
		Where("tenant_id = ?", tenantID).
		Order("statement_date DESC")

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if filter.Page > 1 {
			query = query.Offset((filter.Page - 1) * filter.PageSize)
		}
	}

	var recModels []models.ReconciliationModel
	if err := query.Find(&recModels).Error; err != nil {
		return nil, err
	}
	recs := make([]reconciliation.Reconciliation, len(recModels))
	for i, model := range recModels {
		recs[i] = *model.ToDomain()
	}
	return recs, nil
}

// Save creates or updates a reconciliation
func (r *GormReconciliationRepository) Save(ctx context.Context, rec *reconciliation.Reconciliation) error {
	model := models.ReconciliationModelFromDomain(rec)
	return dbFor(ctx, r.db).WithContext(ctx).Save(model).Error
}

// SaveWithLock updates with an optimistic version check
func (r *GormReconciliationRepository) SaveWithLock(ctx context.Context, rec *reconciliation.Reconciliation) error {
	model := models.ReconciliationModelFromDomain(rec)
	result := dbFor(ctx, r.db).WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", rec.ID, rec.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// ReplaceItems atomically swaps the reconciliation's item set
func (r *GormReconciliationRepository) ReplaceItems(ctx context.Context, tenantID, reconciliationID uuid.UUID, items []reconciliation.Item) error {
	db := dbFor(ctx, r.db).WithContext(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND reconciliation_id = ?", tenantID, reconciliationID).
			Delete(&models.ReconciliationItemModel{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		itemModels := make([]models.ReconciliationItemModel, len(items))
		for i, item := range items {
			itemModels[i].FromDomain(item, tenantID)
		}
		return tx.Create(&itemModels).Error
	})
}

// ItemsForReconciliation returns the persisted items of a session
func (r *GormReconciliationRepository) ItemsForReconciliation(ctx context.Context, tenantID, reconciliationID uuid.UUID) ([]reconciliation.Item, error) {
	var itemModels []models.ReconciliationItemModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ? AND reconciliation_id = ?", tenantID, reconciliationID).
		Order("created_at ASC, id ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]reconciliation.Item, len(itemModels))
	for i, model := range itemModels {
		items[i] = model.ToDomain()
	}
	return items, nil
}
