package audit

import (
	"github.com/google/uuid"
)

// VerificationResult reports the outcome of walking a tenant's audit chain.
type VerificationResult struct {
	Valid        bool       `json:"valid"`
	CheckedCount int        `json:"checked_count"`
	BrokenAt     *int64     `json:"broken_at,omitempty"`     // sequence of the first invalid entry
	BrokenEntry  *uuid.UUID `json:"broken_entry,omitempty"`  // id of the first invalid entry
	Reason       string     `json:"reason,omitempty"`
}

// VerifyChain recomputes every entry's hash from its fields plus the prior
// entry's stored hash. Entries must be supplied in sequence order for one
// tenant. Any mismatch marks the chain tampered from that entry onward.
func VerifyChain(entries []Entry) VerificationResult {
	result := VerificationResult{Valid: true}

	var previous *Entry
	for i := range entries {
		e := &entries[i]
		result.CheckedCount++

		if broken, reason := checkLink(previous, e); broken {
			seq := e.Sequence
			id := e.ID
			return VerificationResult{
				Valid:        false,
				CheckedCount: result.CheckedCount,
				BrokenAt:     &seq,
				BrokenEntry:  &id,
				Reason:       reason,
			}
		}
		previous = e
	}
	return result
}

func checkLink(previous, e *Entry) (bool, string) {
	switch {
	case previous == nil && e.PreviousHash != nil:
		return true, "first entry references a previous hash"
	case previous != nil && e.PreviousHash == nil:
		return true, "entry is missing its previous hash"
	case previous != nil && *e.PreviousHash != previous.Hash:
		return true, "previous hash does not match prior entry"
	case previous != nil && e.Sequence != previous.Sequence+1:
		return true, "sequence gap in chain"
	}

	recomputed, err := ComputeHash(e)
	if err != nil {
		return true, "entry could not be rehashed"
	}
	if recomputed != e.Hash {
		return true, "stored hash does not match recomputed hash"
	}
	return false, ""
}
