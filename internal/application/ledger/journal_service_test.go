package ledger

import (
	"context"
	"testing"
	"time"

	auditdomain "github.com/bookkeep/backend/internal/domain/audit"
	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalService_CreateAndPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)

	entry := env.postBalancedEntry(t, "JE-001", cash.ID, revenue.ID, "500.00")

	assert.Equal(t, ledger.EntryStatusPosted, entry.Status)
	require.NotNil(t, entry.PostedAt)

	reloaded, err := env.queries.GetEntry(ctx, env.tenantID, entry.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Lines, 2)
	assert.Equal(t, ledger.EntryStatusPosted, reloaded.Status)
}

func TestJournalService_RejectsDuplicateEntryNumber(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	env.postBalancedEntry(t, "JE-001", cash.ID, revenue.ID, "500.00")

	_, err := env.journal.CreateEntry(ctx, env.tenantID, CreateEntryRequest{
		EntryNumber: "JE-001",
		EntryDate:   time.Now().UTC(),
		Lines: []LineRequest{
			{AccountID: cash.ID, Type: ledger.LineTypeDebit, Amount: decimal.NewFromInt(1)},
			{AccountID: revenue.ID, Type: ledger.LineTypeCredit, Amount: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestJournalService_RejectsInactiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	_, err := env.accounts.DeactivateAccount(ctx, env.tenantID, revenue.ID)
	require.NoError(t, err)

	_, err = env.journal.CreateEntry(ctx, env.tenantID, CreateEntryRequest{
		EntryNumber: "JE-001",
		EntryDate:   time.Now().UTC(),
		Lines: []LineRequest{
			{AccountID: cash.ID, Type: ledger.LineTypeDebit, Amount: decimal.NewFromInt(100)},
			{AccountID: revenue.ID, Type: ledger.LineTypeCredit, Amount: decimal.NewFromInt(100)},
		},
	})
	assert.Error(t, err)
}

func TestJournalService_VoidDraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)

	entry, err := env.journal.CreateEntry(ctx, env.tenantID, CreateEntryRequest{
		EntryNumber: "JE-001",
		EntryDate:   time.Now().UTC(),
		Lines: []LineRequest{
			{AccountID: cash.ID, Type: ledger.LineTypeDebit, Amount: decimal.NewFromInt(100)},
			{AccountID: revenue.ID, Type: ledger.LineTypeCredit, Amount: decimal.NewFromInt(100)},
		},
	})
	require.NoError(t, err)

	voided, err := env.journal.VoidEntry(ctx, env.tenantID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.EntryStatusVoid, voided.Status)

	// voided entries cannot be posted
	_, err = env.journal.PostEntry(ctx, env.tenantID, entry.ID)
	assert.Error(t, err)
}

func TestJournalService_ReversePostedEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	original := env.postBalancedEntry(t, "JE-001", cash.ID, revenue.ID, "500.00")

	reversal, err := env.journal.ReverseEntry(ctx, env.tenantID, original.ID, ReverseEntryRequest{
		EntryNumber: "JE-001-R",
		EntryDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, ledger.EntryStatusPosted, reversal.Status)
	require.NotNil(t, reversal.ReversalOf)
	assert.Equal(t, original.ID, *reversal.ReversalOf)

	// the two entries net to zero on the cash account
	balance, err := env.queries.Balance(ctx, env.tenantID, cash.ID, nil, nil)
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())
	assert.True(t, balance.TotalDebits.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, balance.TotalCredits.Equal(decimal.RequireFromString("500.00")))
}

func TestJournalService_MutationsExtendAuditChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	env.postBalancedEntry(t, "JE-001", cash.ID, revenue.ID, "500.00")

	// two account creations, the entry creation and the post
	chain, err := env.auditRepo.ChainForTenant(ctx, env.tenantID)
	require.NoError(t, err)
	require.Len(t, chain, 4)
	assert.True(t, auditdomain.VerifyChain(chain).Valid)
	assert.Equal(t, auditdomain.EventUpdated, chain[3].Event)
	assert.Equal(t, "JournalEntry", chain[3].EntityType)
}

func TestJournalService_TenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cash := env.createAccount(t, "1000", "Cash", ledger.CategoryAsset)
	revenue := env.createAccount(t, "4000", "Revenue", ledger.CategoryIncome)
	entry := env.postBalancedEntry(t, "JE-001", cash.ID, revenue.ID, "500.00")

	_, err := env.queries.GetEntry(ctx, uuid.New(), entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = env.journal.PostEntry(ctx, uuid.New(), entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
