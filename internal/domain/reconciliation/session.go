package reconciliation

import (
	"sort"
	"time"

	"github.com/bookkeep/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session holds the in-memory selection state of an in-progress
// reconciliation. Toggling selections mutates nothing durable; persistence
// happens only through the application service's save and finish paths.
type Session struct {
	rec       *Reconciliation
	available map[uuid.UUID]ledger.JournalEntryLine
	selected  map[uuid.UUID]struct{}
}

// NewSession builds a session over the candidate lines available for
// matching. Selections of line ids outside the candidate set are ignored
// by the balance arithmetic.
func NewSession(rec *Reconciliation, available []ledger.JournalEntryLine) *Session {
	byID := make(map[uuid.UUID]ledger.JournalEntryLine, len(available))
	for _, l := range available {
		byID[l.ID] = l
	}
	return &Session{
		rec:       rec,
		available: byID,
		selected:  make(map[uuid.UUID]struct{}),
	}
}

// Reconciliation returns the session's aggregate
func (s *Session) Reconciliation() *Reconciliation {
	return s.rec
}

// ToggleSelection adds the line to the selection if absent, removes it if
// present.
func (s *Session) ToggleSelection(lineID uuid.UUID) {
	if _, ok := s.selected[lineID]; ok {
		delete(s.selected, lineID)
		return
	}
	s.selected[lineID] = struct{}{}
}

// Select marks the given lines selected
func (s *Session) Select(lineIDs ...uuid.UUID) {
	for _, id := range lineIDs {
		s.selected[id] = struct{}{}
	}
}

// IsSelected reports whether the line is currently selected
func (s *Session) IsSelected(lineID uuid.UUID) bool {
	_, ok := s.selected[lineID]
	return ok
}

// SelectedLines returns the selected, available lines in a stable order
func (s *Session) SelectedLines() []ledger.JournalEntryLine {
	lines := make([]ledger.JournalEntryLine, 0, len(s.selected))
	for id := range s.selected {
		if l, ok := s.available[id]; ok {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ID.String() < lines[j].ID.String()
	})
	return lines
}

// ClearedBalance is the opening balance plus the signed amount of every
// selected, currently-available line. Addition commutes, so the result is
// invariant to selection order.
func (s *Session) ClearedBalance() decimal.Decimal {
	total := s.rec.OpeningBalance
	for id := range s.selected {
		if l, ok := s.available[id]; ok {
			total = total.Add(l.SignedAmount())
		}
	}
	return total
}

// Difference is the statement balance minus the cleared balance
func (s *Session) Difference() decimal.Decimal {
	return s.rec.StatementBalance.Sub(s.ClearedBalance())
}

// IsBalanced reports whether the difference is within BalanceTolerance
func (s *Session) IsBalanced() bool {
	return s.Difference().Abs().LessThan(BalanceTolerance)
}

// Items materializes one cleared item per selected line, ready to replace
// the session's persisted item set.
func (s *Session) Items(now time.Time) []Item {
	lines := s.SelectedLines()
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		clearedAt := now
		items = append(items, Item{
			ID:                 uuid.New(),
			ReconciliationID:   s.rec.ID,
			JournalEntryLineID: l.ID,
			Amount:             l.SignedAmount(),
			IsCleared:          true,
			ClearedAt:          &clearedAt,
		})
	}
	return items
}
