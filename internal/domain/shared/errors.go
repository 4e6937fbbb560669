package shared

// DomainError represents a domain-level error
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
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrMissingStoreScope   = NewDomainError("MISSING_STORE_SCOPE", "A store scope is required for this operation")
	ErrInvalidStoreScope   = NewDomainError("INVALID_STORE_SCOPE", "The store identifier is malformed or unknown")
	ErrStorageUnavailable  = NewDomainError("STORAGE_UNAVAILABLE", "The storage backend is temporarily unavailable")
)

// NewReconciliationError builds the error surfaced when the paired
// inventory/document write could not be completed as one unit. It signals a
// data-integrity risk and is logged separately from ordinary failures.
func NewReconciliationError(message string) *DomainError {
	return NewDomainError("RECONCILIATION_FAILURE", message)
}
