package reconciliation

import (
	"context"

	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for reconciliation persistence
type Repository interface {
	// FindByIDForTenant finds a reconciliation by ID for a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Reconciliation, error)

	// FindLastCompletedForBankAccount returns the most recently completed
	// reconciliation for the bank account, by statement date, or
	// shared.ErrNotFound when the account has never been reconciled.
	FindLastCompletedForBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID) (*Reconciliation, error)

	// ListForTenant lists reconciliations for a tenant, newest first
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Reconciliation, error)

	// Save creates or updates a reconciliation
	Save(ctx context.Context, rec *Reconciliation) error

	// SaveWithLock updates with an optimistic version check, returning
	// shared.ErrConcurrencyConflict when the row changed underneath.
	SaveWithLock(ctx context.Context, rec *Reconciliation) error

	// ReplaceItems atomically swaps the reconciliation's item set. Calling
	// it twice with the same items yields the same persisted state.
	ReplaceItems(ctx context.Context, tenantID, reconciliationID uuid.UUID, items []Item) error

	// ItemsForReconciliation returns the persisted items of a session
	ItemsForReconciliation(ctx context.Context, tenantID, reconciliationID uuid.UUID) ([]Item, error)
}
