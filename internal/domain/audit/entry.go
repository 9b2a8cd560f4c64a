package audit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bookkeep/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event is the kind of mutation an audit entry records
type Event string

const (
	EventCreated Event = "CREATED"
	EventUpdated Event = "UPDATED"
	EventDeleted Event = "DELETED"
)

// IsValid checks if the event is a valid Event
func (e Event) IsValid() bool {
	switch e {
	case EventCreated, EventUpdated, EventDeleted:
		return true
	}
	return false
}

// String returns the string representation
func (e Event) String() string {
	return string(e)
}

// Actor identifies who performed the audited mutation. All fields are
// optional; an unresolved actor yields zero values, never an error.
type Actor struct {
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Email     string     `json:"email,omitempty"`
	Name      string     `json:"name,omitempty"`
	IP        string     `json:"ip,omitempty"`
	UserAgent string     `json:"user_agent,omitempty"`
}

// Auditable is the capability every in-scope financial entity implements so
// the audit subsystem can record it without reflection.
type Auditable interface {
	AuditEntityType() string
	AuditEntityID() uuid.UUID
	AuditSnapshot() map[string]any
}

// Entry is one immutable link of a tenant's audit hash chain. Entries are
// append-only: they are created once and never updated or deleted. Sequence
// is a per-tenant monotonic counter that orders same-instant writes
// deterministically.
type Entry struct {
	shared.BaseEntity
	TenantID      uuid.UUID      `json:"tenant_id"`
	Sequence      int64          `json:"sequence"`
	EntityType    string         `json:"entity_type"`
	EntityID      uuid.UUID      `json:"entity_id"`
	Event         Event          `json:"event"`
	OldValues     map[string]any `json:"old_values,omitempty"`
	NewValues     map[string]any `json:"new_values,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
	Actor         Actor          `json:"actor"`
	BatchID       *uuid.UUID     `json:"batch_id,omitempty"`
	PreviousHash  *string        `json:"previous_hash"`
	Hash          string         `json:"hash"`
	RecordedAt    time.Time      `json:"recorded_at"`
}

// NewEntry builds an unchained entry. Sequence, PreviousHash and Hash are
// assigned by the recorder at append time, under the tenant's chain lock.
func NewEntry(tenantID uuid.UUID, entity Auditable, event Event, oldValues, newValues map[string]any, actor Actor, batchID *uuid.UUID) (*Entry, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrTenantMissing
	}
	if entity == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Auditable entity cannot be nil")
	}
	if !event.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Audit event is not valid")
	}

	return &Entry{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		EntityType:    entity.AuditEntityType(),
		EntityID:      entity.AuditEntityID(),
		Event:         event,
		OldValues:     oldValues,
		NewValues:     newValues,
		ChangedFields: ChangedFields(oldValues, newValues),
		Actor:         actor,
		BatchID:       batchID,
		// truncated to microseconds: the hash covers this timestamp and
		// postgres timestamps drop sub-microsecond precision, so a
		// nanosecond wall clock would break verification after reload
		RecordedAt: time.Now().UTC().Truncate(time.Microsecond),
	}, nil
}

// Chain links the entry behind its predecessor and seals it with a hash.
func (e *Entry) Chain(previous *Entry) error {
	if previous == nil {
		e.Sequence = 1
		e.PreviousHash = nil
	} else {
		if previous.TenantID != e.TenantID {
			return shared.NewDomainError("VALIDATION_ERROR", "Audit chains never cross tenants")
		}
		e.Sequence = previous.Sequence + 1
		prev := previous.Hash
		e.PreviousHash = &prev
	}

	hash, err := ComputeHash(e)
	if err != nil {
		return err
	}
	e.Hash = hash
	return nil
}

// hashPayload is the deterministic serialization the entry hash covers.
// Struct field order is fixed and encoding/json sorts map keys, so equal
// entries always produce equal bytes.
type hashPayload struct {
	TenantID     string         `json:"tenant_id"`
	EntityType   string         `json:"entity_type"`
	EntityID     string         `json:"entity_id"`
	Event        string         `json:"event"`
	OldValues    map[string]any `json:"old_values"`
	NewValues    map[string]any `json:"new_values"`
	PreviousHash *string        `json:"previous_hash"`
	RecordedAt   string         `json:"recorded_at"`
}

// ComputeHash returns the SHA-256 hex digest of the entry's canonical form.
func ComputeHash(e *Entry) (string, error) {
	payload := hashPayload{
		TenantID:     e.TenantID.String(),
		EntityType:   e.EntityType,
		EntityID:     e.EntityID.String(),
		Event:        e.Event.String(),
		OldValues:    e.OldValues,
		NewValues:    e.NewValues,
		PreviousHash: e.PreviousHash,
		RecordedAt:   e.RecordedAt.UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize audit entry for hashing: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ChangedFields returns the sorted set of keys whose values differ between
// the old and new snapshots.
func ChangedFields(oldValues, newValues map[string]any) []string {
	keys := make(map[string]struct{}, len(oldValues)+len(newValues))
	for k := range oldValues {
		keys[k] = struct{}{}
	}
	for k := range newValues {
		keys[k] = struct{}{}
	}

	var changed []string
	for k := range keys {
		oldJSON, _ := json.Marshal(oldValues[k])
		newJSON, _ := json.Marshal(newValues[k])
		if !bytes.Equal(oldJSON, newJSON) {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}
