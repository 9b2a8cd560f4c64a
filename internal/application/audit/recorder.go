package audit

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/locking"
	"github.com/bookkeep/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultMaxAppendRetries bounds retries after chain write conflicts
	DefaultMaxAppendRetries = 5

	retryBaseDelay = 10 * time.Millisecond
)

// Recorder appends entries to per-tenant audit hash chains. All financial
// mutations flow through it; it owns the chain linking, the per-tenant
// serialization and the conflict retry policy.
type Recorder struct {
	repo       audit.Repository
	locker     locking.Locker
	maxRetries int
}

// NewRecorder creates a Recorder. A non-positive maxRetries falls back to
// the default.
func NewRecorder(repo audit.Repository, locker locking.Locker, maxRetries int) *Recorder {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxAppendRetries
	}
	return &Recorder{repo: repo, locker: locker, maxRetries: maxRetries}
}

// RecordCreated records a CREATED entry with the entity's current snapshot
func (r *Recorder) RecordCreated(ctx context.Context, tenantID uuid.UUID, entity audit.Auditable) error {
	return r.Record(ctx, tenantID, entity, audit.EventCreated, nil, entity.AuditSnapshot())
}

// RecordUpdated records an UPDATED entry. oldSnapshot must be captured
// before the mutation.
func (r *Recorder) RecordUpdated(ctx context.Context, tenantID uuid.UUID, entity audit.Auditable, oldSnapshot map[string]any) error {
	return r.Record(ctx, tenantID, entity, audit.EventUpdated, oldSnapshot, entity.AuditSnapshot())
}

// RecordDeleted records a DELETED entry with the entity's final snapshot
func (r *Recorder) RecordDeleted(ctx context.Context, tenantID uuid.UUID, entity audit.Auditable) error {
	return r.Record(ctx, tenantID, entity, audit.EventDeleted, entity.AuditSnapshot(), nil)
}

// Record appends one chained entry for the tenant. Actor and batch id are
// taken from the context. A missing tenant is logged and skipped rather
// than failing the business operation; every other failure, including
// retry exhaustion, surfaces as shared.ErrAuditFailure so the caller's
// transaction rolls back.
func (r *Recorder) Record(ctx context.Context, tenantID uuid.UUID, entity audit.Auditable, event audit.Event, oldValues, newValues map[string]any) error {
	if tenantID == uuid.Nil {
		logger.L(ctx).Warn("audit entry skipped: no tenant resolved",
			zap.String("entity_type", entity.AuditEntityType()),
			zap.String("entity_id", entity.AuditEntityID().String()),
			zap.String("event", event.String()))
		return nil
	}

	unlock, err := r.locker.Lock(ctx, "audit:"+tenantID.String())
	if err != nil {
		return shared.ErrAuditFailure
	}
	defer unlock()

	actor := audit.ActorFromContext(ctx)
	batchID := audit.BatchFromContext(ctx)

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		entry, err := audit.NewEntry(tenantID, entity, event, oldValues, newValues, actor, batchID)
		if err != nil {
			return err
		}

		latest, err := r.repo.LatestForTenant(ctx, tenantID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return shared.ErrAuditFailure
		}
		if err := entry.Chain(latest); err != nil {
			return err
		}

		err = r.repo.Append(ctx, entry)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrChainWriteConflict) && !errors.Is(err, shared.ErrConcurrencyConflict) {
			logger.L(ctx).Error("audit chain append failed", zap.Error(err))
			return shared.ErrAuditFailure
		}

		logger.L(ctx).Debug("audit chain append conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int64("sequence", entry.Sequence))
		select {
		case <-ctx.Done():
			return shared.ErrAuditFailure
		case <-time.After(backoffDelay(attempt)):
		}
	}

	logger.L(ctx).Error("audit chain append retries exhausted",
		zap.String("entity_type", entity.AuditEntityType()),
		zap.Int("attempts", r.maxRetries))
	return shared.ErrAuditFailure
}

// backoffDelay returns an exponential delay with jitter for the given attempt
func backoffDelay(attempt int) time.Duration {
	base := retryBaseDelay << attempt
	jitter := time.Duration(rand.Int63n(int64(retryBaseDelay)))
	return base + jitter
}
