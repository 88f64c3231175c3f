package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("ledger: not found")
	ErrAlreadyExists = errors.New("ledger: already exists")
	ErrInvalidInput  = errors.New("ledger: invalid input")

	// Client errors
	ErrClientNotFound   = errors.New("ledger: client not found")
	ErrClientHasRecords = errors.New("ledger: client has projects, entries, or invoices")

	// Project errors
	ErrProjectNotFound   = errors.New("ledger: project not found")
	ErrProjectHasEntries = errors.New("ledger: project has timesheet entries")

	// Timesheet errors
	ErrEntryNotFound  = errors.New("ledger: timesheet entry not found")
	ErrEntryBilled    = errors.New("ledger: entry already on an invoice")
	ErrWrongClient    = errors.New("ledger: entry belongs to a different client")
	ErrDuplicateEntry = errors.New("ledger: duplicate entry id")

	// Invoice errors
	ErrInvoiceNotFound   = errors.New("ledger: invoice not found")
	ErrNoEntries         = errors.New("ledger: no entries to invoice")
	ErrInvoicePaid       = errors.New("ledger: invoice already paid")
	ErrInvalidTransition = errors.New("ledger: invalid invoice status transition")

	// Store errors
	ErrStoreNotReady     = errors.New("ledger: store not ready")
	ErrStoreClosed       = errors.New("ledger: store is closed")
	ErrTransactionFailed = errors.New("ledger: transaction failed")
	ErrMigrationFailed   = errors.New("ledger: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("ledger: validation failed for %s: %s", e.Field, e.Message)
}

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "ledger: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("ledger: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrInvoiceNotFound)
}

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrInvalidInput)
}

// IsConflict returns true if the error reports a state conflict: the
// operation is valid in general but not against the current records.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEntryBilled) ||
		errors.Is(err, ErrWrongClient) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrClientHasRecords) ||
		errors.Is(err, ErrProjectHasEntries) ||
		errors.Is(err, ErrInvoicePaid) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAlreadyExists)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
