package usecase

import (
	"context"
	"errors"
	"testing"

	"clepsydra-backend/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthUsecase_Check(t *testing.T) {
	down := errors.New("down")

	t.Run("store only", func(t *testing.T) {
		store := new(mocks.ContactRepoMock)
		store.On("Ping", mock.Anything).Return(nil)

		status, healthy := NewHealthUsecase(store, nil).Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, map[string]string{"status": "ok", "store": "ok"}, status)
	})

	t.Run("store down is degraded", func(t *testing.T) {
		store := new(mocks.ContactRepoMock)
		store.On("Ping", mock.Anything).Return(down)

		status, healthy := NewHealthUsecase(store, nil).Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "unavailable", status["store"])
	})

	t.Run("redis down is reported but healthy", func(t *testing.T) {
		store := new(mocks.ContactRepoMock)
		store.On("Ping", mock.Anything).Return(nil)
		cache := pingerFunc(func(context.Context) error { return down })

		status, healthy := NewHealthUsecase(store, cache).Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, map[string]string{"status": "ok", "store": "ok", "redis": "unavailable"}, status)
	})
}
