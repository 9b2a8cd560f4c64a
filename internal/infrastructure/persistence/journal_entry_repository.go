package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements ledger.JournalEntryRepository using GORM
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByIDForTenant finds a journal entry with its lines
func (r *GormJournalEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEntryNumber finds by entry number for a tenant
func (r *GormJournalEntryRepository) FindByEntryNumber(ctx context.Context, tenantID uuid.UUID, entryNumber string) (*ledger.JournalEntry, error) {
	var model models.JournalEntryModel
	if err := dbFor(ctx, r.db).WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND entry_number = ?", tenantID, entryNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a journal entry and its lines
func (r *GormJournalEntryRepository) Save(ctx context.Context, entry *ledger.JournalEntry) error {
	model := models.JournalEntryModelFromDomain(entry)
	if err := dbFor(ctx, r.db).WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// postedLineQuery scopes line queries to posted entries of one account
func (r *GormJournalEntryRepository) postedLineQuery(ctx context.Context, tenantID, accountID uuid.UUID) *gorm.DB {
	return dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.JournalEntryLineModel{}).
		Joins("JOIN journal_entries ON journal_entries.id = journal_entry_lines.journal_entry_id").
		Where("journal_entry_lines.tenant_id = ? AND journal_entry_lines.account_id = ?", tenantID, accountID).
		Where("journal_entries.status = ?", ledger.EntryStatusPosted)
}

func applyDateRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("journal_entries.entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("journal_entries.entry_date <= ?", *to)
	}
	return query
}

// PostedLinesForAccount returns lines of posted entries touching the account
func (r *GormJournalEntryRepository) PostedLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) ([]ledger.JournalEntryLine, error) {
	query := applyDateRange(r.postedLineQuery(ctx, tenantID, accountID), from, to)

	var lineModels []models.JournalEntryLineModel
	if err := query.
		Order("journal_entries.entry_date ASC, journal_entry_lines.id ASC").
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// PostedTotalsForAccount sums debit and credit amounts of posted lines
func (r *GormJournalEntryRepository) PostedTotalsForAccount(ctx context.Context, tenantID, accountID uuid.UUID, from, to *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	type totalsRow struct {
		Debits  decimal.Decimal
		Credits decimal.Decimal
	}

	query := applyDateRange(r.postedLineQuery(ctx, tenantID, accountID), from, to)

	var row totalsRow
	if err := query.
		Select(
			"COALESCE(SUM(CASE WHEN journal_entry_lines.type = ? THEN journal_entry_lines.amount ELSE 0 END), 0) AS debits, "+
				"COALESCE(SUM(CASE WHEN journal_entry_lines.type = ? THEN journal_entry_lines.amount ELSE 0 END), 0) AS credits",
			ledger.LineTypeDebit, ledger.LineTypeCredit).
		Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Debits, row.Credits, nil
}

// UnreconciledLinesForAccount returns posted, not-yet-reconciled lines for
// the account, newest entry first.
func (r *GormJournalEntryRepository) UnreconciledLinesForAccount(ctx context.Context, tenantID, accountID uuid.UUID, filter ledger.LineFilter) ([]ledger.JournalEntryLine, error) {
	query := r.postedLineQuery(ctx, tenantID, accountID).
		Where("journal_entry_lines.is_reconciled = ?", false)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"journal_entry_lines.description LIKE ? OR journal_entries.description LIKE ?",
			pattern, pattern)
	}
	if filter.Direction != nil {
		query = query.Where("journal_entry_lines.type = ?", *filter.Direction)
	}

	limit := filter.Limit
	if limit <= 0 || limit > ledger.ReconciliationCandidatePageSize {
		limit = ledger.ReconciliationCandidatePageSize
	}

	var lineModels []models.JournalEntryLineModel
	if err := query.
		Order("journal_entries.entry_date DESC, journal_entry_lines.id ASC").
		Limit(limit).
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// FindLinesByIDs loads posted, unreconciled lines of the account by ID.
// IDs that resolve to nothing are silently omitted.
func (r *GormJournalEntryRepository) FindLinesByIDs(ctx context.Context, tenantID, accountID uuid.UUID, lineIDs []uuid.UUID) ([]ledger.JournalEntryLine, error) {
	if len(lineIDs) == 0 {
		return []ledger.JournalEntryLine{}, nil
	}

	var lineModels []models.JournalEntryLineModel
	if err := r.postedLineQuery(ctx, tenantID, accountID).
		Where("journal_entry_lines.is_reconciled = ?", false).
		Where("journal_entry_lines.id IN ?", lineIDs).
		Find(&lineModels).Error; err != nil {
		return nil, err
	}
	return toDomainLines(lineModels), nil
}

// MarkLinesReconciled flags the given lines as reconciled
func (r *GormJournalEntryRepository) MarkLinesReconciled(ctx context.Context, tenantID uuid.UUID, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return dbFor(ctx, r.db).WithContext(ctx).
		Model(&models.JournalEntryLineModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, lineIDs).
		Update("is_reconciled", true).Error
}

func toDomainLines(lineModels []models.JournalEntryLineModel) []ledger.JournalEntryLine {
	lines := make([]ledger.JournalEntryLine, len(lineModels))
	for i, model := range lineModels {
		lines[i] = model.ToDomain()
	}
	return lines
}
