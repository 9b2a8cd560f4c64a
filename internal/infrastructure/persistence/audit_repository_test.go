package persistence

import (
	"context"
	"testing"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditedAccount struct {
	id uuid.UUID
}

func (a *auditedAccount) AuditEntityType() string { return "Account" }
func (a *auditedAccount) AuditEntityID() uuid.UUID {
	return a.id
}
func (a *auditedAccount) AuditSnapshot() map[string]any {
	return map[string]any{"account_number": "1010"}
}

func chainedEntry(t *testing.T, tenantID uuid.UUID, previous *audit.Entry) *audit.Entry {
	t.Helper()

	entity := &auditedAccount{id: uuid.New()}
	entry, err := audit.NewEntry(tenantID, entity, audit.EventCreated, nil, entity.AuditSnapshot(), audit.Actor{}, nil)
	require.NoError(t, err)
	require.NoError(t, entry.Chain(previous))
	return entry
}

func TestAuditRepository_AppendDuplicateSequence(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAuditRepository(db.DB)
	ctx := context.Background()
	tenantID := uuid.New()

	first := chainedEntry(t, tenantID, nil)
	require.NoError(t, repo.Append(ctx, first))

	// a second writer losing the race lands on the same sequence
	rival := chainedEntry(t, tenantID, nil)
	assert.ErrorIs(t, repo.Append(ctx, rival), shared.ErrChainWriteConflict)

	// another tenant's chain starts at sequence 1 without conflict
	other := chainedEntry(t, uuid.New(), nil)
	assert.NoError(t, repo.Append(ctx, other))
}

func TestAuditRepository_AppendConflictKeepsTransactionUsable(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAuditRepository(db.DB)
	txManager := NewGormTransactionManager(db.DB)
	tenantID := uuid.New()

	first := chainedEntry(t, tenantID, nil)

	err := txManager.Do(context.Background(), func(ctx context.Context) error {
		if err := repo.Append(ctx, first); err != nil {
			return err
		}

		// a lost race inside the transaction must not poison it
		rival := chainedEntry(t, tenantID, nil)
		if err := repo.Append(ctx, rival); !assert.ErrorIs(t, err, shared.ErrChainWriteConflict) {
			return err
		}

		// the retried append at the next sequence still commits
		return repo.Append(ctx, chainedEntry(t, tenantID, first))
	})
	require.NoError(t, err)

	chain, err := repo.ChainForTenant(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, int64(1), chain[0].Sequence)
	assert.Equal(t, int64(2), chain[1].Sequence)
	require.NotNil(t, chain[1].PreviousHash)
	assert.Equal(t, chain[0].Hash, *chain[1].PreviousHash)
}
