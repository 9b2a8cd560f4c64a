package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/bookkeep/backend/internal/infrastructure/locking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryAuditRepo is an in-memory audit.Repository. conflictsLeft makes the
// next n appends fail with a chain write conflict.
type memoryAuditRepo struct {
	mu            sync.Mutex
	chains        map[uuid.UUID][]audit.Entry
	conflictsLeft int
	appendCalls   int
}

func newMemoryAuditRepo() *memoryAuditRepo {
	return &memoryAuditRepo{chains: make(map[uuid.UUID][]audit.Entry)}
}

func (r *memoryAuditRepo) Append(_ context.Context, entry *audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendCalls++
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return shared.ErrChainWriteConflict
	}
	r.chains[entry.TenantID] = append(r.chains[entry.TenantID], *entry)
	return nil
}

func (r *memoryAuditRepo) LatestForTenant(_ context.Context, tenantID uuid.UUID) (*audit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chain := r.chains[tenantID]
	if len(chain) == 0 {
		return nil, shared.ErrNotFound
	}
	latest := chain[len(chain)-1]
	return &latest, nil
}

func (r *memoryAuditRepo) ListForTenant(ctx context.Context, tenantID uuid.UUID, _ audit.Filter) ([]audit.Entry, error) {
	return r.ChainForTenant(ctx, tenantID)
}

func (r *memoryAuditRepo) ChainForTenant(_ context.Context, tenantID uuid.UUID) ([]audit.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry{}, r.chains[tenantID]...), nil
}

func (r *memoryAuditRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.chains[tenantID])), nil
}

type recordedEntity struct {
	id   uuid.UUID
	name string
}

func (e *recordedEntity) AuditEntityType() string  { return "Account" }
func (e *recordedEntity) AuditEntityID() uuid.UUID { return e.id }
func (e *recordedEntity) AuditSnapshot() map[string]any {
	return map[string]any{"name": e.name}
}

func newRecorderForTest(repo audit.Repository) *Recorder {
	return NewRecorder(repo, locking.NewLocalLocker(), 5)
}

func TestRecorder_RecordCreated(t *testing.T) {
	repo := newMemoryAuditRepo()
	recorder := newRecorderForTest(repo)
	tenantID := uuid.New()

	require.NoError(t, recorder.RecordCreated(context.Background(), tenantID, &recordedEntity{id: uuid.New(), name: "Cash"}))

	chain, err := repo.ChainForTenant(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, int64(1), chain[0].Sequence)
	assert.Nil(t, chain[0].PreviousHash)
	assert.Equal(t, audit.EventCreated, chain[0].Event)
}

func TestRecorder_ChainsSequentially(t *testing.T) {
	repo := newMemoryAuditRepo()
	recorder := newRecorderForTest(repo)
	tenantID := uuid.New()
	entity := &recordedEntity{id: uuid.New(), name: "Cash"}

	require.NoError(t, recorder.RecordCreated(context.Background(), tenantID, entity))
	require.NoError(t, recorder.RecordUpdated(context.Background(), tenantID, entity, map[string]any{"name": "Old Cash"}))
	require.NoError(t, recorder.RecordDeleted(context.Background(), tenantID, entity))

	chain, err := repo.ChainForTenant(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, chain, 3)

	result := audit.VerifyChain(chain)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(3), chain[2].Sequence)
}

func TestRecorder_SeparateTenantChains(t *testing.T) {
	repo := newMemoryAuditRepo()
	recorder := newRecorderForTest(repo)
	tenantA := uuid.New()
	tenantB := uuid.New()

	require.NoError(t, recorder.RecordCreated(context.Background(), tenantA, &recordedEntity{id: uuid.New(), name: "A"}))
	require.NoError(t, recorder.RecordCreated(context.Background(), tenantB, &recordedEntity{id: uuid.New(), name: "B"}))

	chainA, _ := repo.ChainForTenant(context.Background(), tenantA)
	chainB, _ := repo.ChainForTenant(context.Background(), tenantB)
	require.Len(t, chainA, 1)
	require.Len(t, chainB, 1)
	assert.Equal(t, int64(1), chainA[0].Sequence)
	assert.Equal(t, int64(1), chainB[0].Sequence)
}

func TestRecorder_RetriesOnWriteConflict(t *testing.T) {
	repo := newMemoryAuditRepo()
	repo.conflictsLeft = 2
	recorder := newRecorderForTest(repo)
	tenantID := uuid.New()

	require.NoError(t, recorder.RecordCreated(context.Background(), tenantID, &recordedEntity{id: uuid.New(), name: "Cash"}))

	assert.Equal(t, 3, repo.appendCalls)
	chain, _ := repo.ChainForTenant(context.Background(), tenantID)
	assert.Len(t, chain, 1)
}

func TestRecorder_ExhaustedRetriesFailAudit(t *testing.T) {
	repo := newMemoryAuditRepo()
	repo.conflictsLeft = 10
	recorder := newRecorderForTest(repo)

	err := recorder.RecordCreated(context.Background(), uuid.New(), &recordedEntity{id: uuid.New(), name: "Cash"})
	assert.ErrorIs(t, err, shared.ErrAuditFailure)
	assert.Equal(t, 5, repo.appendCalls)
}

func TestRecorder_SkipsWithoutTenant(t *testing.T) {
	repo := newMemoryAuditRepo()
	recorder := newRecorderForTest(repo)

	// no tenant in scope: the mutation proceeds unaudited rather than failing
	require.NoError(t, recorder.RecordCreated(context.Background(), uuid.Nil, &recordedEntity{id: uuid.New(), name: "Cash"}))
	assert.Equal(t, 0, repo.appendCalls)
}

func TestRecorder_CarriesActorAndBatch(t *testing.T) {
	repo := newMemoryAuditRepo()
	recorder := newRecorderForTest(repo)
	tenantID := uuid.New()

	userID := uuid.New()
	ctx := audit.WithActor(context.Background(), audit.Actor{UserID: &userID, Email: "clerk@example.com"})
	ctx, batchID := audit.WithBatch(ctx)

	require.NoError(t, recorder.RecordCreated(ctx, tenantID, &recordedEntity{id: uuid.New(), name: "Cash"}))

	chain, _ := repo.ChainForTenant(context.Background(), tenantID)
	require.Len(t, chain, 1)
	require.NotNil(t, chain[0].Actor.UserID)
	assert.Equal(t, userID, *chain[0].Actor.UserID)
	assert.Equal(t, "clerk@example.com", chain[0].Actor.Email)
	require.NotNil(t, chain[0].BatchID)
	assert.Equal(t, batchID, *chain[0].BatchID)
}
