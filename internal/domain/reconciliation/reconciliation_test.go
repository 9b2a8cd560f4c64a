package reconciliation

import (
	"testing"
	"time"

	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestReconciliation(t *testing.T, statement, opening string) *Reconciliation {
	t.Helper()
	rec, err := NewReconciliation(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		amount(statement), amount(opening),
	)
	require.NoError(t, err)
	return rec
}

func TestNewReconciliation(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")

	assert.Equal(t, StatusInProgress, rec.Status)
	assert.True(t, rec.ClearedBalance.Equal(amount("1000.00")))
	assert.True(t, rec.Difference.Equal(amount("250.00")))
	assert.Nil(t, rec.CompletedAt)
}

func TestNewReconciliation_NegativeStatementBalance(t *testing.T) {
	// overdrafts are legitimate statement balances
	rec := newTestReconciliation(t, "-500.00", "100.00")
	assert.True(t, rec.Difference.Equal(amount("-600.00")))
}

func TestNewReconciliation_Validation(t *testing.T) {
	statementDate := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	_, err := NewReconciliation(uuid.Nil, uuid.New(), uuid.New(),
		statementDate, statementDate.AddDate(0, -1, 0), statementDate,
		decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	// end before start
	_, err = NewReconciliation(uuid.New(), uuid.New(), uuid.New(),
		statementDate, statementDate.AddDate(0, 1, 0), statementDate,
		decimal.Zero, decimal.Zero)
	assert.Error(t, err)
}

func TestReconciliation_ApplyCleared(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")

	require.NoError(t, rec.ApplyCleared(amount("1250.00")))
	assert.True(t, rec.Difference.IsZero())
	assert.True(t, rec.IsBalanced())
}

func TestReconciliation_CompleteWhenBalanced(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	require.NoError(t, rec.ApplyCleared(amount("1250.00")))

	now := time.Now().UTC()
	require.NoError(t, rec.Complete(now))

	assert.Equal(t, StatusCompleted, rec.Status)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, now, *rec.CompletedAt)
}

func TestReconciliation_CompleteRefusesWhenNotBalanced(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	require.NoError(t, rec.ApplyCleared(amount("1200.00")))
	version := rec.Version

	err := rec.Complete(time.Now().UTC())
	assert.ErrorIs(t, err, shared.ErrNotBalanced)

	// a refused completion mutates nothing
	assert.Equal(t, StatusInProgress, rec.Status)
	assert.Nil(t, rec.CompletedAt)
	assert.Equal(t, version, rec.Version)
}

func TestReconciliation_CompleteIsTerminal(t *testing.T) {
	rec := newTestReconciliation(t, "1000.00", "1000.00")
	require.NoError(t, rec.Complete(time.Now().UTC()))

	assert.Error(t, rec.Complete(time.Now().UTC()))
	assert.Error(t, rec.ApplyCleared(amount("999.00")))
}

func TestReconciliation_ToleranceBoundary(t *testing.T) {
	rec := newTestReconciliation(t, "1000.00", "1000.00")

	// just under a cent is balanced, a full cent is not
	require.NoError(t, rec.ApplyCleared(amount("999.995")))
	assert.True(t, rec.IsBalanced())

	require.NoError(t, rec.ApplyCleared(amount("999.99")))
	assert.False(t, rec.IsBalanced())
}
