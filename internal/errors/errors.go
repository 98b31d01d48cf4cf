// Package errors provides the typed error kinds used across the
// ingestion pipeline. Every kind implements error and Unwrap, following
// the teacher's ShowError{Code, Message, Internal, RequestID} shape.
package errors

import "fmt"

// ValidationError indicates bad input rejected before it reaches the
// store. Raised by C1 and the API boundary; surfaced as 400.
type ValidationError struct {
	Field    string
	Message  string
	Internal error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}
func (e *ValidationError) Unwrap() error { return e.Internal }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// DuplicateConflict is raised by C4 when an exact match is found during
// a create (not a scrape-time merge). Surfaced as 400 with the existing id.
type DuplicateConflict struct {
	ExistingID uint
	Message    string
}

func (e *DuplicateConflict) Error() string {
	return fmt.Sprintf("duplicate: %s (existing id %d)", e.Message, e.ExistingID)
}

func NewDuplicateConflict(existingID uint, message string) *DuplicateConflict {
	return &DuplicateConflict{ExistingID: existingID, Message: message}
}

// NotFound is raised by CRUD lookups. Surfaced as 404.
type NotFound struct {
	Resource string
	ID       uint
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id uint) *NotFound {
	return &NotFound{Resource: resource, ID: id}
}

// QuotaExceeded is raised by C5. Never surfaced as an error to the
// caller — C6 downgrades it to a "skipped" tally entry.
type QuotaExceeded struct {
	VenueID uint
	Kind    string // "exhibition" or "event"
	Ceiling int
}

func (e *QuotaExceeded) Error() string {
	return fmt.Sprintf("quota exceeded for venue %d: %s ceiling %d", e.VenueID, e.Kind, e.Ceiling)
}

func NewQuotaExceeded(venueID uint, kind string, ceiling int) *QuotaExceeded {
	return &QuotaExceeded{VenueID: venueID, Kind: kind, Ceiling: ceiling}
}

// TransientIO covers HTTP 5xx, DNS failures, and timeouts in C7/C8/C9.
// Callers retry once with backoff; on a second failure the unit of
// work is logged and skipped, never fatal.
type TransientIO struct {
	Op       string
	Internal error
}

func (e *TransientIO) Error() string {
	return fmt.Sprintf("transient io during %s: %v", e.Op, e.Internal)
}
func (e *TransientIO) Unwrap() error { return e.Internal }

func NewTransientIO(op string, internal error) *TransientIO {
	return &TransientIO{Op: op, Internal: internal}
}

// ParseError is raised by C7/C9 when a single candidate fails to parse.
// The specific candidate is skipped; siblings continue.
type ParseError struct {
	Context  string
	Internal error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): %v", e.Context, e.Internal)
}
func (e *ParseError) Unwrap() error { return e.Internal }

func NewParseError(context string, internal error) *ParseError {
	return &ParseError{Context: context, Internal: internal}
}

// SchemaDrift is raised by C12 when a non-destructive migration step
// fails. Logged; startup continues regardless.
type SchemaDrift struct {
	Column   string
	Internal error
}

func (e *SchemaDrift) Error() string {
	return fmt.Sprintf("schema drift on column %s: %v", e.Column, e.Internal)
}
func (e *SchemaDrift) Unwrap() error { return e.Internal }

func NewSchemaDrift(column string, internal error) *SchemaDrift {
	return &SchemaDrift{Column: column, Internal: internal}
}

// StoreError covers integrity violations and deadlocks raised by C6.
// The current batch is rolled back, logged, and the engine continues
// with the next batch.
type StoreError struct {
	Op       string
	Internal error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Internal)
}
func (e *StoreError) Unwrap() error { return e.Internal }

func NewStoreError(op string, internal error) *StoreError {
	return &StoreError{Op: op, Internal: internal}
}

// Cancelled is raised by cooperative cancellation paths. The current
// task unwinds silently; it is never logged as a failure.
type Cancelled struct {
	Reason string
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("cancelled: %s", e.Reason)
}

func NewCancelled(reason string) *Cancelled {
	return &Cancelled{Reason: reason}
}
