package domain

import (
	"context"
	"time"
)

// ContactSubmission is a validated, normalized contact form entry.
type ContactSubmission struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,max=255,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Service   string  `json:"service" validate:"required,service_category"`
	Message   string  `json:"message" validate:"required,max=5000"`
}

// FullName joins first and last name for display.
func (s ContactSubmission) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Clone returns a copy that shares no pointers with s.
func (s ContactSubmission) Clone() ContactSubmission {
	if s.Phone != nil {
		phone := *s.Phone
		s.Phone = &phone
	}
	return s
}

// StoredSubmission is a ContactSubmission after the store has accepted it.
// ID and CreatedAt are assigned exactly once, by the store.
type StoredSubmission struct {
	ContactSubmission
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactSubmissionFilter narrows admin listings
type ContactSubmissionFilter struct {
	Service string
	Limit   int
	Offset  int
}

// ContactRepository persists submissions. There is no update or delete.
type ContactRepository interface {
	Create(ctx context.Context, submission *ContactSubmission) (*StoredSubmission, error)
	GetByID(ctx context.Context, id string) (*StoredSubmission, error)
	List(ctx context.Context, filter ContactSubmissionFilter) ([]StoredSubmission, int64, error)
	Ping(ctx context.Context) error
}

// ContactValidator turns an untyped payload into a ContactSubmission.
// Failures are reported as *ValidationError listing every failing field.
type ContactValidator interface {
	Validate(payload any) (*ContactSubmission, error)
}

// NotifyResult is the outcome of the best-effort notification step.
// Callers log Err and otherwise ignore it.
type NotifyResult struct {
	Err *NotifyError
}

// OK reports whether both notification legs succeeded.
func (r NotifyResult) OK() bool {
	return r.Err == nil
}

// ContactNotifier sends the business alert and the auto-reply.
type ContactNotifier interface {
	Notify(ctx context.Context, submission *StoredSubmission) NotifyResult
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates, stores and notifies. On success the stored record is
	// returned even if notification failed.
	Submit(ctx context.Context, payload any) (*StoredSubmission, error)
	GetSubmission(ctx context.Context, id string) (*StoredSubmission, error)
	ListSubmissions(ctx context.Context, filter ContactSubmissionFilter) ([]StoredSubmission, int64, error)
	ServiceCategories() []ServiceCategory
}

// ServiceCategory is one entry of the "Service Interested In" select.
type ServiceCategory struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}
