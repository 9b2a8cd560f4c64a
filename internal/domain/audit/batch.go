package audit

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const batchKey contextKey = "audit_batch_id"

// WithBatch returns a context carrying a fresh batch id. Every audit entry
// recorded under that context is tagged with the id, grouping multi-entity
// operations (e.g. completing a reconciliation) for review. The id lives on
// the context of one logical operation only, so concurrent requests can
// never observe each other's batch.
func WithBatch(ctx context.Context) (context.Context, uuid.UUID) {
	id := uuid.New()
	return context.WithValue(ctx, batchKey, id), id
}

// BatchFromContext returns the batch id carried by the context, or nil when
// the operation is not batched.
func BatchFromContext(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(batchKey).(uuid.UUID); ok {
		return &id
	}
	return nil
}
