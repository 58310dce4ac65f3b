package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clepsydra-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *ContactRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "contact.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewContactRepository(db)
}

func newSubmission(service string, phone *string) *domain.ContactSubmission {
	return &domain.ContactSubmission{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Phone:     phone,
		Service:   service,
		Message:   "Compile this, please.",
	}
}

func TestContactRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	phone := "+1 555 000 1111"
	stored, err := repo.Create(ctx, newSubmission("software-development", &phone))
	require.NoError(t, err)
	assert.Len(t, stored.ID, 36)

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "Grace", got.FirstName)
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
	assert.WithinDuration(t, stored.CreatedAt, got.CreatedAt, time.Second)
}

func TestContactRepository_CreateDoesNotSharePhone(t *testing.T) {
	repo := setupRepo(t)

	phone := "+1 555 000 1111"
	in := newSubmission("other", &phone)
	stored, err := repo.Create(context.Background(), in)
	require.NoError(t, err)

	*in.Phone = "000"
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "+1 555 000 1111", *stored.Phone)
}

func TestContactRepository_NullPhoneRoundTrips(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	stored, err := repo.Create(ctx, newSubmission("other", nil))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
}

func TestContactRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestContactRepository_List(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	var ids []string
	for _, service := range []string{"other", "web-development", "other"} {
		s, err := repo.Create(ctx, newSubmission(service, nil))
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	items, total, err := repo.List(ctx, domain.ContactSubmissionFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, ids[2], items[0].ID)
	assert.Equal(t, ids[0], items[2].ID)

	items, total, err = repo.List(ctx, domain.ContactSubmissionFilter{Service: "other", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, ids[0], items[0].ID)
}

func TestContactRepository_Ping(t *testing.T) {
	assert.NoError(t, setupRepo(t).Ping(context.Background()))
}

func TestContactRepository_ClosedDatabase(t *testing.T) {
	repo := setupRepo(t)
	sqlDB, err := repo.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.Create(context.Background(), newSubmission("other", nil))
	assert.ErrorIs(t, err, domain.ErrStorage)
}
