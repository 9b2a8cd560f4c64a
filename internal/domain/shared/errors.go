package shared

// DomainError represents a domain-level error with a stable machine code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrTenantMissing       = NewDomainError("TENANT_MISSING", "No tenant in scope for this operation")

	// ErrNotBalanced is returned when a reconciliation is asked to complete
	// while its difference is outside the cent tolerance.
	ErrNotBalanced = NewDomainError("NOT_BALANCED", "Reconciliation difference is outside tolerance")

	// ErrChainWriteConflict signals a lost race while appending to the audit
	// hash chain. The recorder retries it internally; callers only ever see
	// ErrAuditFailure.
	ErrChainWriteConflict = NewDomainError("CHAIN_WRITE_CONFLICT", "Concurrent append to the audit chain")

	// ErrAuditFailure is surfaced after chain-write retries are exhausted.
	// The triggering financial mutation must not commit without its audit row.
	ErrAuditFailure = NewDomainError("AUDIT_FAILURE", "Failed to append audit chain entry")
)
