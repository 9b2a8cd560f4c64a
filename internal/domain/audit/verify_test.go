package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain creates a valid chain of n entries for one tenant
func buildChain(t *testing.T, tenantID uuid.UUID, n int) []Entry {
	t.Helper()
	entity := newTestEntity()

	entries := make([]Entry, 0, n)
	var previous *Entry
	for i := 0; i < n; i++ {
		entry, err := NewEntry(tenantID, entity, EventUpdated,
			map[string]any{"amount": i}, map[string]any{"amount": i + 1}, Actor{}, nil)
		require.NoError(t, err)
		require.NoError(t, entry.Chain(previous))
		entries = append(entries, *entry)
		previous = &entries[len(entries)-1]
	}
	return entries
}

func TestVerifyChain_EmptyChainIsValid(t *testing.T) {
	result := VerifyChain(nil)
	assert.True(t, result.Valid)
	assert.Equal(t, 0, result.CheckedCount)
}

func TestVerifyChain_ValidChain(t *testing.T) {
	entries := buildChain(t, uuid.New(), 5)

	result := VerifyChain(entries)
	assert.True(t, result.Valid)
	assert.Equal(t, 5, result.CheckedCount)
	assert.Nil(t, result.BrokenAt)
}

func TestVerifyChain_DetectsTamperedValues(t *testing.T) {
	entries := buildChain(t, uuid.New(), 4)
	entries[1].NewValues["amount"] = "1000000"

	result := VerifyChain(entries)
	assert.False(t, result.Valid)
	require.NotNil(t, result.BrokenAt)
	assert.Equal(t, int64(2), *result.BrokenAt)
	assert.Equal(t, "stored hash does not match recomputed hash", result.Reason)
}

func TestVerifyChain_DetectsRelinkedHash(t *testing.T) {
	entries := buildChain(t, uuid.New(), 3)

	// rewriting an entry and its hash still breaks the next link
	entries[1].NewValues["amount"] = "1000000"
	rehashed, err := ComputeHash(&entries[1])
	require.NoError(t, err)
	entries[1].Hash = rehashed

	result := VerifyChain(entries)
	assert.False(t, result.Valid)
	require.NotNil(t, result.BrokenAt)
	assert.Equal(t, int64(3), *result.BrokenAt)
	assert.Equal(t, "previous hash does not match prior entry", result.Reason)
}

func TestVerifyChain_DetectsDeletedEntry(t *testing.T) {
	entries := buildChain(t, uuid.New(), 4)
	truncated := append([]Entry{}, entries[0])
	truncated = append(truncated, entries[2], entries[3])

	result := VerifyChain(truncated)
	assert.False(t, result.Valid)
	require.NotNil(t, result.BrokenAt)
	assert.Equal(t, int64(3), *result.BrokenAt)
}

func TestVerifyChain_DetectsMissingPreviousHash(t *testing.T) {
	entries := buildChain(t, uuid.New(), 2)
	entries[1].PreviousHash = nil

	result := VerifyChain(entries)
	assert.False(t, result.Valid)
	assert.Equal(t, "entry is missing its previous hash", result.Reason)
}

func TestVerifyChain_FirstEntryWithPreviousHash(t *testing.T) {
	entries := buildChain(t, uuid.New(), 1)
	bogus := "deadbeef"
	entries[0].PreviousHash = &bogus

	result := VerifyChain(entries)
	assert.False(t, result.Valid)
	assert.Equal(t, "first entry references a previous hash", result.Reason)
}

func TestVerifyChain_IndependentTenantChains(t *testing.T) {
	// two tenants build chains of the same shape; each verifies on its own
	chainA := buildChain(t, uuid.New(), 3)
	chainB := buildChain(t, uuid.New(), 3)

	assert.True(t, VerifyChain(chainA).Valid)
	assert.True(t, VerifyChain(chainB).Valid)
	assert.NotEqual(t, chainA[0].Hash, chainB[0].Hash)
}
