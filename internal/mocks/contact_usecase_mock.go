package mocks

import (
	"context"

	"clepsydra-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ContactUsecaseMock struct {
	mock.Mock
}

func (m *ContactUsecaseMock) Submit(ctx context.Context, payload any) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, payload)

	stored, _ := args.Get(0).(*domain.StoredSubmission)
	return stored, args.Error(1)
}

func (m *ContactUsecaseMock) GetSubmission(ctx context.Context, id string) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, id)

	stored, _ := args.Get(0).(*domain.StoredSubmission)
	return stored, args.Error(1)
}

func (m *ContactUsecaseMock) ListSubmissions(ctx context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	args := m.Called(ctx, filter)

	items, _ := args.Get(0).([]domain.StoredSubmission)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ContactUsecaseMock) ServiceCategories() []domain.ServiceCategory {
	services, _ := m.Called().Get(0).([]domain.ServiceCategory)
	return services
}

type HealthUsecaseMock struct {
	mock.Mock
}

func (m *HealthUsecaseMock) Check(ctx context.Context) (map[string]string, bool) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Bool(1)
}
