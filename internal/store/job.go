package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
)

// Sort orders accepted by JobFilter.
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortAZ     = "a-z"
	SortZA     = "z-a"
)

// Paging defaults and bounds for JobFilter. MaxPage keeps Offset far from
// int overflow.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

// JobFilter narrows and pages an owner's job list. Zero values mean "no
// filter" for Status and Search and the defaults for the rest.
type JobFilter struct {
	Status domain.JobStatus
	Search string
	Sort   string
	Page   int
	Limit  int
}

// Normalized returns a copy with defaults applied and out-of-range values
// clamped.
func (f JobFilter) Normalized() JobFilter {
	switch f.Sort {
	case SortLatest, SortOldest, SortAZ, SortZA:
	default:
		f.Sort = SortLatest
	}
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	return f
}

// Offset is the number of rows to skip for the current page.
func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// JobStore persists job applications. Implementations never filter by owner
// on single-row lookups; ownership is enforced by the service layer.
type JobStore interface {
	Create(ctx context.Context, job *domain.Job) error

	// GetByID returns ErrJobNotFound if no job has this id.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// GetByIDForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. Only meaningful on a store bound with WithTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// ListByOwner returns one page of the owner's jobs and the total number
	// of jobs matching the filter across all pages.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter JobFilter) ([]*domain.Job, int, error)

	// Update writes the mutable fields and UpdatedAt. Returns ErrJobNotFound
	// if the row no longer exists.
	Update(ctx context.Context, job *domain.Job) error

	// Delete returns ErrJobNotFound if the row does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	WithTx(tx *sql.Tx) JobStore
}
