package usecase

import "fmt"

const (
	CodeNotFound               = "NOT_FOUND"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeAlreadyConverted       = "ALREADY_CONVERTED"
	CodeNotQualified           = "NOT_QUALIFIED"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeValidation             = "VALIDATION_ERROR"
)

// DomainError is a business-rule violation. Surfaced to the caller as a
// client error, never retried by the core.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

func DomainErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

// TechnicalError is an infrastructure failure (store, broker). It propagates
// unchanged; retry policy belongs to the caller.
type TechnicalError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

func NewNotFoundError(resource, id string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewDuplicateEmailError(email string) *DomainError {
	return &DomainError{
		Code:    CodeDuplicateEmail,
		Message: fmt.Sprintf("a record with email %s already exists", email),
	}
}
