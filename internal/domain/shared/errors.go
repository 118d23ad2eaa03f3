package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so wrapped copies of a
// sentinel still match with errors.Is.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes shared across bounded contexts
const (
	CodeNotFound             = "NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeValidation           = "VALIDATION_ERROR"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeUnsupportedReference = "UNSUPPORTED_REFERENCE"
	CodeDuplicateName        = "DUPLICATE_NAME"
	CodeInvalidName          = "INVALID_NAME"
	CodeRepository           = "REPOSITORY_ERROR"
	CodeNotification         = "NOTIFICATION_ERROR"
)

// Common domain errors
var (
	ErrNotFound     = NewDomainError(CodeNotFound, "Resource not found")
	ErrForbidden    = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidInput = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrRepository   = NewDomainError(CodeRepository, "Storage operation failed")
)

// RepositoryError wraps a storage failure. The wrapped cause is for logs only.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *RepositoryError) Unwrap() []error {
	return []error{ErrRepository, e.Err}
}

// NewRepositoryError wraps err as a storage failure for operation op.
// A nil err yields nil.
func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}
