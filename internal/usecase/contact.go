package usecase

import (
	"context"
	"errors"
	"fmt"

	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/logger"
	"clepsydra-backend/pkg/metrics"
)

// Submission outcomes, also used as metric labels
const (
	stateRejected = "rejected"
	stateErrored  = "errored"
	stateStored   = "stored"
	stateNotified = "notified"
)

type contactUsecase struct {
	validator domain.ContactValidator
	repo      domain.ContactRepository
	notifier  domain.ContactNotifier
	services  []domain.ServiceCategory
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(
	validator domain.ContactValidator,
	repo domain.ContactRepository,
	notifier domain.ContactNotifier,
	services []domain.ServiceCategory,
) domain.ContactUsecase {
	return &contactUsecase{
		validator: validator,
		repo:      repo,
		notifier:  notifier,
		services:  services,
	}
}

// Submit runs validate -> store -> notify. Notification is best-effort: once
// the submission is stored the call succeeds whatever the notifier reports.
func (uc *contactUsecase) Submit(ctx context.Context, payload any) (*domain.StoredSubmission, error) {
	// The caller cannot cancel a submission half way through.
	ctx = context.WithoutCancel(ctx)
	log := logger.Log.With("request_id", requestID(ctx))

	submission, err := uc.validator.Validate(payload)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues(stateRejected).Inc()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			log.Info("Contact submission rejected", "state", stateRejected, "fields", len(verr.Fields))
		}
		return nil, err
	}

	stored, err := uc.repo.Create(ctx, submission)
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues(stateErrored).Inc()
		log.Error("Failed to store contact submission",
			"state", stateErrored,
			"service", submission.Service,
			"error", err,
		)
		return nil, fmt.Errorf("store contact submission: %w", err)
	}

	result := uc.notifier.Notify(ctx, stored)
	if result.OK() {
		metrics.ContactSubmissions.WithLabelValues(stateNotified).Inc()
		log.Info("Contact submission stored and notified", "state", stateNotified, "id", stored.ID)
	} else {
		// Logged and dropped; the stored record decides the response.
		metrics.ContactSubmissions.WithLabelValues(stateStored).Inc()
		log.Warn("Contact submission stored but notification failed",
			"state", stateStored,
			"id", stored.ID,
			"failed_legs", result.Err.Failed(),
			"error", result.Err,
		)
	}

	return stored, nil
}

func (uc *contactUsecase) GetSubmission(ctx context.Context, id string) (*domain.StoredSubmission, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *contactUsecase) ListSubmissions(ctx context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repo.List(ctx, filter)
}

func (uc *contactUsecase) ServiceCategories() []domain.ServiceCategory {
	out := make([]domain.ServiceCategory, len(uc.services))
	copy(out, uc.services)
	return out
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(domain.KeyRequestID).(string)
	return id
}
