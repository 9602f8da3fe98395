package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/service"
	"github.com/phrazzld/jobs-api/internal/store"
)

// InMemoryJobRepository implements service.JobRepository on a map. Like the
// real store it applies no tenancy filtering apart from ListByOwner's owner
// argument. RunInTx serializes transactions and restores the previous state
// when fn fails.
type InMemoryJobRepository struct {
	CreateFn           func(ctx context.Context, job *domain.Job) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetByIDForUpdateFn func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListByOwnerFn      func(ctx context.Context, ownerID uuid.UUID, filter store.JobFilter) ([]*domain.Job, int, error)
	UpdateFn           func(ctx context.Context, job *domain.Job) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	txMu  sync.Mutex
	mu    sync.Mutex
	jobs  map[uuid.UUID]domain.Job
	calls atomic.Int64
}

var _ service.JobRepository = (*InMemoryJobRepository)(nil)

// NewInMemoryJobRepository creates an empty repository.
func NewInMemoryJobRepository() *InMemoryJobRepository {
	return &InMemoryJobRepository{jobs: make(map[uuid.UUID]domain.Job)}
}

// Calls reports how many repository methods have been invoked.
func (r *InMemoryJobRepository) Calls() int {
	return int(r.calls.Load())
}

// Seed stores job directly, bypassing validation.
func (r *InMemoryJobRepository) Seed(job *domain.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	r.jobs[job.ID] = *job
}

// Snapshot returns a copy of the stored job, if any.
func (r *InMemoryJobRepository) Snapshot(id uuid.UUID) (domain.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	return job, ok
}

func (r *InMemoryJobRepository) ensure() {
	if r.jobs == nil {
		r.jobs = make(map[uuid.UUID]domain.Job)
	}
}

func (r *InMemoryJobRepository) Create(ctx context.Context, job *domain.Job) error {
	r.calls.Add(1)
	if r.CreateFn != nil {
		return r.CreateFn(ctx, job)
	}
	if err := job.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	if _, exists := r.jobs[job.ID]; exists {
		return store.ErrDuplicate
	}
	r.jobs[job.ID] = *job
	return nil
}

func (r *InMemoryJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.calls.Add(1)
	if r.GetByIDFn != nil {
		return r.GetByIDFn(ctx, id)
	}
	return r.get(id)
}

func (r *InMemoryJobRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	r.calls.Add(1)
	if r.GetByIDForUpdateFn != nil {
		return r.GetByIDForUpdateFn(ctx, id)
	}
	return r.get(id)
}

func (r *InMemoryJobRepository) get(id uuid.UUID) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return &job, nil
}

func (r *InMemoryJobRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.JobFilter,
) ([]*domain.Job, int, error) {
	r.calls.Add(1)
	if r.ListByOwnerFn != nil {
		return r.ListByOwnerFn(ctx, ownerID, filter)
	}
	filter = filter.Normalized()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	r.mu.Lock()
	matched := make([]domain.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		if job.OwnerID != ownerID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(job.Title), search) &&
			!strings.Contains(strings.ToLower(job.Company), search) {
			continue
		}
		matched = append(matched, job)
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch filter.Sort {
		case store.SortOldest:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		case store.SortAZ:
			if ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title); ta != tb {
				return ta < tb
			}
		case store.SortZA:
			if ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title); ta != tb {
				return ta > tb
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID.String() < b.ID.String()
	})

	total := len(matched)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}

	page := make([]*domain.Job, 0, end-start)
	for i := start; i < end; i++ {
		job := matched[i]
		page = append(page, &job)
	}
	return page, total, nil
}

func (r *InMemoryJobRepository) Update(ctx context.Context, job *domain.Job) error {
	r.calls.Add(1)
	if r.UpdateFn != nil {
		return r.UpdateFn(ctx, job)
	}
	if err := job.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.jobs[job.ID]
	if !ok {
		return store.ErrJobNotFound
	}
	updated := *job
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	r.jobs[job.ID] = updated
	return nil
}

func (r *InMemoryJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.calls.Add(1)
	if r.DeleteFn != nil {
		return r.DeleteFn(ctx, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return store.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *InMemoryJobRepository) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, repo service.JobRepository) error,
) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	r.ensure()
	saved := make(map[uuid.UUID]domain.Job, len(r.jobs))
	for id, job := range r.jobs {
		saved[id] = job
	}
	r.mu.Unlock()

	if err := fn(ctx, r); err != nil {
		r.mu.Lock()
		r.jobs = saved
		r.mu.Unlock()
		return err
	}
	return nil
}
