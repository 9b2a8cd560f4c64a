package persistence

import (
	"context"
	"errors"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM. It only ever
// inserts; there is no update or delete path for audit rows.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts a chained entry. The unique (tenant_id, sequence) index
// converts a lost race into gorm.ErrDuplicatedKey, surfaced as
// shared.ErrChainWriteConflict for the recorder to retry on. The insert
// runs in a nested transaction (a savepoint when a transaction is already
// open) so a unique violation does not abort the caller's transaction and
// the retried append can still commit inside it.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model := models.AuditEntryModelFromDomain(entry)
	err := dbFor(ctx, r.db).WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrChainWriteConflict
		}
		return err
	}
	return nil
}

// LatestForTenant returns the most recent entry of the tenant's chain
func (r *GormAuditRepository) LatestForTenant(ctx context.Context, tenantID uuid.UUID) (*audit.Entry, error) {
	var model models.AuditEntryModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sequence DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListForTenant returns entries in sequence order with filtering
func (r *GormAuditRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID, filter audit.Filter) ([]audit.Entry, error) {
	query := dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Event != nil {
		query = query.Where("event = ?", *filter.Event)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.From != nil {
		query = query.Where("recorded_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("recorded_at <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entryModels []models.AuditEntryModel
	if err := query.Order("sequence ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// ChainForTenant returns the full chain in sequence order
func (r *GormAuditRepository) ChainForTenant(ctx context.Context, tenantID uuid.UUID) ([]audit.Entry, error) {
	var entryModels []models.AuditEntryModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sequence ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// CountForTenant counts entries for a tenant
func (r *GormAuditRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainEntries(entryModels []models.AuditEntryModel) []audit.Entry {
	entries := make([]audit.Entry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries
}
