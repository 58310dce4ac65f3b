package mocks

import (
	"context"

	"clepsydra-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ContactRepoMock struct {
	mock.Mock
}

func (m *ContactRepoMock) Create(ctx context.Context, submission *domain.ContactSubmission) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, submission)

	if fn, ok := args.Get(0).(func(context.Context, *domain.ContactSubmission) (*domain.StoredSubmission, error)); ok {
		return fn(ctx, submission)
	}
	stored, _ := args.Get(0).(*domain.StoredSubmission)
	return stored, args.Error(1)
}

func (m *ContactRepoMock) GetByID(ctx context.Context, id string) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, id)

	stored, _ := args.Get(0).(*domain.StoredSubmission)
	return stored, args.Error(1)
}

func (m *ContactRepoMock) List(ctx context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	args := m.Called(ctx, filter)

	items, _ := args.Get(0).([]domain.StoredSubmission)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ContactRepoMock) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type ContactNotifierMock struct {
	mock.Mock
}

func (m *ContactNotifierMock) Notify(ctx context.Context, submission *domain.StoredSubmission) domain.NotifyResult {
	return m.Called(ctx, submission).Get(0).(domain.NotifyResult)
}
