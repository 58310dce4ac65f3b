package usecase

import (
	"context"
	"time"

	"clepsydra-backend/internal/domain"
)

// Pinger is anything with a liveness probe (store, redis).
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	store domain.ContactRepository
	cache Pinger
}

// NewHealthUsecase checks the store and, when cache is non-nil, redis.
func NewHealthUsecase(store domain.ContactRepository, cache Pinger) HealthUsecase {
	return &healthUsecase{store: store, cache: cache}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	healthy := true
	status := map[string]string{"status": "ok", "store": "ok"}

	if err := u.store.Ping(ctx); err != nil {
		status["store"] = "unavailable"
		healthy = false
	}
	if u.cache != nil {
		status["redis"] = "ok"
		if err := u.cache.Ping(ctx); err != nil {
			// Rate limiting falls back to memory, so redis is not fatal.
			status["redis"] = "unavailable"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
