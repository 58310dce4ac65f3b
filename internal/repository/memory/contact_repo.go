package memory

import (
	"context"
	"sync"
	"time"

	"clepsydra-backend/internal/domain"

	"github.com/google/uuid"
)

// contactRepo keeps submissions in process memory. Records are never
// evicted; the mutex serializes id assignment.
type contactRepo struct {
	mu      sync.RWMutex
	records map[string]domain.StoredSubmission
	order   []string
	now     func() time.Time
	newID   func() string
}

func NewContactRepository() domain.ContactRepository {
	return &contactRepo{
		records: make(map[string]domain.StoredSubmission),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (r *contactRepo) Create(ctx context.Context, submission *domain.ContactSubmission) (*domain.StoredSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStorageError("create", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for {
		if _, taken := r.records[id]; !taken {
			break
		}
		id = r.newID()
	}

	stored := domain.StoredSubmission{
		ContactSubmission: submission.Clone(),
		ID:                id,
		CreatedAt:         r.now().UTC(),
	}
	r.records[id] = stored
	r.order = append(r.order, id)

	out := stored
	out.ContactSubmission = stored.ContactSubmission.Clone()
	return &out, nil
}

func (r *contactRepo) GetByID(_ context.Context, id string) (*domain.StoredSubmission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	stored.ContactSubmission = stored.ContactSubmission.Clone()
	return &stored, nil
}

func (r *contactRepo) List(_ context.Context, filter domain.ContactSubmissionFilter) ([]domain.StoredSubmission, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// newest first
	matched := make([]domain.StoredSubmission, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.records[r.order[i]]
		if filter.Service != "" && s.Service != filter.Service {
			continue
		}
		s.ContactSubmission = s.ContactSubmission.Clone()
		matched = append(matched, s)
	}

	total := int64(len(matched))
	start := min(max(filter.Offset, 0), len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}
	return matched[start:end], total, nil
}

func (r *contactRepo) Ping(context.Context) error {
	return nil
}
