package domain

import (
	"errors"
	"strings"
)

var (
	ErrStorage            = errors.New("submission storage unavailable")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// FieldError describes why a single field was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries one entry per failing field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "invalid contact submission: " + strings.Join(parts, "; ")
}

// Add appends a field error unless the field already has one.
func (e *ValidationError) Add(field, reason string) {
	if e.Has(field) {
		return
	}
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// StorageError wraps a failure of the underlying storage medium.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// NewStorageError returns nil when err is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Notification legs
const (
	LegBusinessAlert = "business_alert"
	LegAutoReply     = "auto_reply"
)

// NotifyError aggregates the failed notification legs.
type NotifyError struct {
	Legs map[string]error
}

func (e *NotifyError) Error() string {
	var b strings.Builder
	b.WriteString("notification failed:")
	for _, leg := range []string{LegBusinessAlert, LegAutoReply} {
		if err, ok := e.Legs[leg]; ok {
			b.WriteString(" " + leg + ": " + err.Error() + ";")
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

// Failed lists failed legs in a stable order.
func (e *NotifyError) Failed() []string {
	var legs []string
	for _, leg := range []string{LegBusinessAlert, LegAutoReply} {
		if _, ok := e.Legs[leg]; ok {
			legs = append(legs, leg)
		}
	}
	return legs
}

func (e *NotifyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Legs))
	for _, leg := range e.Failed() {
		errs = append(errs, e.Legs[leg])
	}
	return errs
}
