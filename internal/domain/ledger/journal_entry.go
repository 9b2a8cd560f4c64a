package ledger

import (
	"fmt"
	"time"

	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the lifecycle status of a journal entry
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "DRAFT"  // Editable, excluded from balances
	EntryStatusPosted EntryStatus = "POSTED" // Finalized, immutable except by reversal
	EntryStatusVoid   EntryStatus = "VOID"   // Discarded draft, excluded from balances
)

// IsValid checks if the status is a valid EntryStatus
func (s EntryStatus) IsValid() bool {
	switch s {
	case EntryStatusDraft, EntryStatusPosted, EntryStatusVoid:
		return true
	}
	return false
}

// String returns the string representation
func (s EntryStatus) String() string {
	return string(s)
}

// LineType distinguishes debit from credit journal lines
type LineType string

const (
	LineTypeDebit  LineType = "DEBIT"
	LineTypeCredit LineType = "CREDIT"
)

// IsValid checks if the line type is valid
func (t LineType) IsValid() bool {
	return t == LineTypeDebit || t == LineTypeCredit
}

// String returns the string representation
func (t LineType) String() string {
	return string(t)
}

// Opposite returns the mirror line type, used when reversing entries
func (t LineType) Opposite() LineType {
	if t == LineTypeDebit {
		return LineTypeCredit
	}
	return LineTypeDebit
}

// JournalEntryLine is a single debit or credit against one account.
// Amount is always non-negative; direction is carried by Type.
type JournalEntryLine struct {
	ID             uuid.UUID       `json:"id"`
	JournalEntryID uuid.UUID       `json:"journal_entry_id"`
	AccountID      uuid.UUID       `json:"account_id"`
	Type           LineType        `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	ContactID      *uuid.UUID      `json:"contact_id,omitempty"`
	IsReconciled   bool            `json:"is_reconciled"`
}

// SignedAmount returns the line amount signed by direction: positive for
// debits (deposits), negative for credits (withdrawals).
func (l *JournalEntryLine) SignedAmount() decimal.Decimal {
	if l.Type == LineTypeDebit {
		return l.Amount
	}
	return l.Amount.Neg()
}

// JournalEntry is a double-entry record owning an ordered set of lines.
// Once posted, the entry is immutable except through Reverse.
type JournalEntry struct {
	shared.TenantAggregateRoot
	EntryNumber string             `json:"entry_number"`
	EntryDate   time.Time          `json:"entry_date"`
	Description string             `json:"description"`
	Status      EntryStatus        `json:"status"`
	Lines       []JournalEntryLine `json:"lines"`
	ReversalOf  *uuid.UUID         `json:"reversal_of,omitempty"`
	PostedAt    *time.Time         `json:"posted_at,omitempty"`
}

// NewJournalEntry creates a new draft journal entry
func NewJournalEntry(tenantID uuid.UUID, entryNumber string, entryDate time.Time, description string) (*JournalEntry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tenant ID cannot be empty")
	}
	if entryNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Entry number cannot be empty")
	}
	if entryDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Entry date cannot be empty")
	}

	return &JournalEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EntryNumber:         entryNumber,
		EntryDate:           entryDate,
		Description:         description,
		Status:              EntryStatusDraft,
		Lines:               make([]JournalEntryLine, 0),
	}, nil
}

// AddLine appends a debit or credit line to a draft entry
func (e *JournalEntry) AddLine(accountID uuid.UUID, lineType LineType, amount decimal.Decimal, description string, contactID *uuid.UUID) error {
	if e.Status != EntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add lines to a %s entry", e.Status))
	}
	if accountID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Line account ID cannot be empty")
	}
	if !lineType.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Line type must be DEBIT or CREDIT")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Line amount cannot be negative")
	}

	e.Lines = append(e.Lines, JournalEntryLine{
		ID:             uuid.New(),
		JournalEntryID: e.ID,
		AccountID:      accountID,
		Type:           lineType,
		Amount:         amount,
		Description:    description,
		ContactID:      contactID,
	})
	return nil
}

// TotalDebits returns the sum of all debit line amounts
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Type == LineTypeDebit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// TotalCredits returns the sum of all credit line amounts
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		if l.Type == LineTypeCredit {
			total = total.Add(l.Amount)
		}
	}
	return total
}

// IsBalanced reports whether total debits equal total credits
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebits().Equal(e.TotalCredits())
}

// Post finalizes the entry. Posting requires at least one line and a
// balanced set of debits and credits; a posted entry is immutable.
func (e *JournalEntry) Post(now time.Time) error {
	if e.Status != EntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post a %s entry", e.Status))
	}
	if len(e.Lines) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Cannot post an entry with no lines")
	}
	if !e.IsBalanced() {
		return shared.NewDomainError("UNBALANCED_ENTRY",
			fmt.Sprintf("Entry debits (%s) do not equal credits (%s)", e.TotalDebits(), e.TotalCredits()))
	}

	e.Status = EntryStatusPosted
	e.PostedAt = &now
	e.IncrementVersion()
	return nil
}

// Void discards a draft entry. Posted entries cannot be voided; use Reverse.
func (e *JournalEntry) Void() error {
	if e.Status != EntryStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot void a %s entry", e.Status))
	}
	e.Status = EntryStatusVoid
	e.IncrementVersion()
	return nil
}

// Reverse creates a new posted entry mirroring every line of this posted
// entry with the opposite direction. This is the only correction path for
// posted entries.
func (e *JournalEntry) Reverse(entryNumber string, entryDate time.Time, now time.Time) (*JournalEntry, error) {
	if e.Status != EntryStatusPosted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only posted entries can be reversed")
	}

	reversal, err := NewJournalEntry(e.TenantID, entryNumber, entryDate,
		fmt.Sprintf("Reversal of %s", e.EntryNumber))
	if err != nil {
		return nil, err
	}
	reversal.ReversalOf = &e.ID

	for _, l := range e.Lines {
		if err := reversal.AddLine(l.AccountID, l.Type.Opposite(), l.Amount, l.Description, l.ContactID); err != nil {
			return nil, err
		}
	}
	if err := reversal.Post(now); err != nil {
		return nil, err
	}
	return reversal, nil
}

// AuditEntityType implements audit.Auditable
func (e *JournalEntry) AuditEntityType() string {
	return "JournalEntry"
}

// AuditEntityID implements audit.Auditable
func (e *JournalEntry) AuditEntityID() uuid.UUID {
	return e.ID
}

// AuditSnapshot implements audit.Auditable
func (e *JournalEntry) AuditSnapshot() map[string]any {
	lines := make([]map[string]any, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, map[string]any{
			"id":         l.ID.String(),
			"account_id": l.AccountID.String(),
			"type":       l.Type.String(),
			"amount":     l.Amount.String(),
		})
	}
	return map[string]any{
		"entry_number": e.EntryNumber,
		"entry_date":   e.EntryDate.Format(time.DateOnly),
		"description":  e.Description,
		"status":       e.Status.String(),
		"lines":        lines,
	}
}
