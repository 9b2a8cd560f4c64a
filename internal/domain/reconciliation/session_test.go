package reconciliation

import (
	"testing"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLine(lineType ledger.LineType, amt string) ledger.JournalEntryLine {
	return ledger.JournalEntryLine{
		ID:     uuid.New(),
		Type:   lineType,
		Amount: amount(amt),
	}
}

func TestSession_ClearedBalanceReachesStatement(t *testing.T) {
	// opening 1000, statement 1250: a 300 deposit and a 50 withdrawal
	// clear the difference exactly
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	deposit := testLine(ledger.LineTypeDebit, "300.00")
	withdrawal := testLine(ledger.LineTypeCredit, "50.00")

	session := NewSession(rec, []ledger.JournalEntryLine{deposit, withdrawal})
	session.Select(deposit.ID, withdrawal.ID)

	assert.True(t, session.ClearedBalance().Equal(amount("1250.00")))
	assert.True(t, session.Difference().IsZero())
	assert.True(t, session.IsBalanced())
}

func TestSession_PartialSelectionIsNotBalanced(t *testing.T) {
	// only the deposit selected: cleared 1300, difference -50
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	deposit := testLine(ledger.LineTypeDebit, "300.00")
	withdrawal := testLine(ledger.LineTypeCredit, "50.00")

	session := NewSession(rec, []ledger.JournalEntryLine{deposit, withdrawal})
	session.Select(deposit.ID)

	assert.True(t, session.ClearedBalance().Equal(amount("1300.00")))
	assert.True(t, session.Difference().Equal(amount("-50.00")))
	assert.False(t, session.IsBalanced())
}

func TestSession_SelectionOrderDoesNotMatter(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	lines := []ledger.JournalEntryLine{
		testLine(ledger.LineTypeDebit, "300.00"),
		testLine(ledger.LineTypeCredit, "50.00"),
		testLine(ledger.LineTypeDebit, "25.50"),
	}

	forward := NewSession(rec, lines)
	forward.Select(lines[0].ID, lines[1].ID, lines[2].ID)

	backward := NewSession(rec, lines)
	backward.Select(lines[2].ID, lines[1].ID, lines[0].ID)

	assert.True(t, forward.ClearedBalance().Equal(backward.ClearedBalance()))
}

func TestSession_ToggleSelection(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	deposit := testLine(ledger.LineTypeDebit, "300.00")

	session := NewSession(rec, []ledger.JournalEntryLine{deposit})

	session.ToggleSelection(deposit.ID)
	assert.True(t, session.IsSelected(deposit.ID))
	assert.True(t, session.ClearedBalance().Equal(amount("1300.00")))

	session.ToggleSelection(deposit.ID)
	assert.False(t, session.IsSelected(deposit.ID))
	assert.True(t, session.ClearedBalance().Equal(amount("1000.00")))
}

func TestSession_UnknownSelectionsAreIgnored(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	deposit := testLine(ledger.LineTypeDebit, "250.00")

	session := NewSession(rec, []ledger.JournalEntryLine{deposit})
	session.Select(deposit.ID, uuid.New(), uuid.New())

	assert.True(t, session.ClearedBalance().Equal(amount("1250.00")))
	assert.Len(t, session.SelectedLines(), 1)
	assert.True(t, session.IsBalanced())
}

func TestSession_NegativeStatementBalance(t *testing.T) {
	// overdraft: opening 100, statement -500, a 600 withdrawal clears it
	rec := newTestReconciliation(t, "-500.00", "100.00")
	withdrawal := testLine(ledger.LineTypeCredit, "600.00")

	session := NewSession(rec, []ledger.JournalEntryLine{withdrawal})
	session.Select(withdrawal.ID)

	assert.True(t, session.ClearedBalance().Equal(amount("-500.00")))
	assert.True(t, session.IsBalanced())
}

func TestSession_Items(t *testing.T) {
	rec := newTestReconciliation(t, "1250.00", "1000.00")
	deposit := testLine(ledger.LineTypeDebit, "300.00")
	withdrawal := testLine(ledger.LineTypeCredit, "50.00")

	session := NewSession(rec, []ledger.JournalEntryLine{deposit, withdrawal})
	session.Select(deposit.ID, withdrawal.ID)

	now := time.Now().UTC()
	items := session.Items(now)
	require.Len(t, items, 2)

	byLine := make(map[uuid.UUID]Item, len(items))
	for _, item := range items {
		assert.Equal(t, rec.ID, item.ReconciliationID)
		assert.True(t, item.IsCleared)
		require.NotNil(t, item.ClearedAt)
		assert.Equal(t, now, *item.ClearedAt)
		byLine[item.JournalEntryLineID] = item
	}
	assert.True(t, byLine[deposit.ID].Amount.Equal(amount("300.00")))
	assert.True(t, byLine[withdrawal.ID].Amount.Equal(amount("-50.00")))
}

func TestSession_EmptySelectionItems(t *testing.T) {
	rec := newTestReconciliation(t, "1000.00", "1000.00")
	session := NewSession(rec, nil)

	assert.Empty(t, session.Items(time.Now().UTC()))
	assert.True(t, session.IsBalanced())
}
