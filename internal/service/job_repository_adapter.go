package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/store"
)

// NewJobRepositoryAdapter lets a store.JobStore serve as a JobRepository.
// Transactions are started on db.
func NewJobRepositoryAdapter(jobStore store.JobStore, db *sql.DB) JobRepository {
	return &jobRepositoryAdapter{
		jobStore: jobStore,
		db:       db,
	}
}

type jobRepositoryAdapter struct {
	jobStore store.JobStore
	db       *sql.DB
}

func (a *jobRepositoryAdapter) Create(ctx context.Context, job *domain.Job) error {
	return a.jobStore.Create(ctx, job)
}

func (a *jobRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return a.jobStore.GetByID(ctx, id)
}

func (a *jobRepositoryAdapter) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return a.jobStore.GetByIDForUpdate(ctx, id)
}

func (a *jobRepositoryAdapter) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.JobFilter,
) ([]*domain.Job, int, error) {
	return a.jobStore.ListByOwner(ctx, ownerID, filter)
}

func (a *jobRepositoryAdapter) Update(ctx context.Context, job *domain.Job) error {
	return a.jobStore.Update(ctx, job)
}

func (a *jobRepositoryAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	return a.jobStore.Delete(ctx, id)
}

func (a *jobRepositoryAdapter) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, repo JobRepository) error,
) error {
	return store.RunInTransaction(ctx, a.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, &jobRepositoryAdapter{
			jobStore: a.jobStore.WithTx(tx),
			db:       a.db,
		})
	})
}
