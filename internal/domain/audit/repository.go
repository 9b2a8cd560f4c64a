package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter defines filtering options for audit entry queries
type Filter struct {
	EntityType string
	EntityID   *uuid.UUID
	Event      *Event
	BatchID    *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// Repository defines the append-only interface for audit chain persistence.
// There is no update or delete: the audit subsystem owns its rows
// exclusively and only ever appends.
type Repository interface {
	// Append inserts a chained entry. It returns
	// shared.ErrChainWriteConflict when another writer claimed the same
	// sequence or previous hash first; the recorder retries on that.
	Append(ctx context.Context, entry *Entry) error

	// LatestForTenant returns the most recent entry of the tenant's chain,
	// ordered by sequence, or shared.ErrNotFound for an empty chain.
	LatestForTenant(ctx context.Context, tenantID uuid.UUID) (*Entry, error)

	// ListForTenant returns entries in sequence order with filtering
	ListForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Entry, error)

	// ChainForTenant returns the full chain in sequence order, for
	// verification walks.
	ChainForTenant(ctx context.Context, tenantID uuid.UUID) ([]Entry, error)

	// CountForTenant counts entries for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
