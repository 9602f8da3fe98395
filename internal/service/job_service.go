package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/store"
)

// JobRepository is the persistence the job service needs. It has no notion
// of tenancy; the service applies the ownership rule itself.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter store.JobFilter) ([]*domain.Job, int, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RunInTx runs fn against a repository whose calls share one
	// transaction. An error from fn rolls the transaction back.
	RunInTx(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error
}

// JobPage is one page of a user's jobs.
type JobPage struct {
	Jobs       []*domain.Job
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// JobService manages job applications on behalf of an authenticated user.
type JobService interface {
	// CreateJob stores a new job owned by userID.
	CreateJob(ctx context.Context, userID uuid.UUID, input domain.JobInput) (*domain.Job, error)

	// ListJobs returns one page of the jobs owned by userID.
	ListJobs(ctx context.Context, userID uuid.UUID, filter store.JobFilter) (*JobPage, error)

	// GetJob returns ErrJobNotFound unless the job exists and belongs to userID.
	GetJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error)

	// UpdateJob applies patch to a job owned by userID. The ownership check
	// and the write happen in one transaction with the row locked.
	UpdateJob(ctx context.Context, userID, jobID uuid.UUID, patch domain.JobPatch) (*domain.Job, error)

	// DeleteJob removes a job owned by userID, under the same locking as UpdateJob.
	DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error
}

type jobServiceImpl struct {
	jobRepo JobRepository
	logger  *slog.Logger
}

// NewJobService creates a JobService. It returns an error if jobRepo is nil.
func NewJobService(jobRepo JobRepository, logger *slog.Logger) (JobService, error) {
	if jobRepo == nil {
		return nil, domain.NewValidationError("jobRepo", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &jobServiceImpl{
		jobRepo: jobRepo,
		logger:  logger.With(slog.String("component", "job_service")),
	}, nil
}

func (s *jobServiceImpl) CreateJob(
	ctx context.Context,
	userID uuid.UUID,
	input domain.JobInput,
) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	job, err := domain.NewJob(userID, input)
	if err != nil {
		log.Debug("invalid job input", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewJobServiceError("create_job", "failed to save job", err)
	}

	log.Info("job created",
		slog.String("job_id", job.ID.String()),
		slog.String("user_id", userID.String()))
	return job, nil
}

func (s *jobServiceImpl) ListJobs(
	ctx context.Context,
	userID uuid.UUID,
	filter store.JobFilter,
) (*JobPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status",
			"must be one of pending, interview, declined", domain.ErrInvalidJobStatus)
	}

	filter = filter.Normalized()
	jobs, total, err := s.jobRepo.ListByOwner(ctx, userID, filter)
	if err != nil {
		log.Error("failed to list jobs",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewJobServiceError("list_jobs", "failed to query jobs", err)
	}
	if jobs == nil {
		jobs = []*domain.Job{}
	}

	return &JobPage{
		Jobs:       jobs,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

func (s *jobServiceImpl) GetJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, s.lookupError(log, "get_job", jobID, err)
	}
	if !ownedBy(job, userID) {
		logOwnerMismatch(log, userID, jobID)
		return nil, ErrJobNotFound
	}

	return job, nil
}

func (s *jobServiceImpl) UpdateJob(
	ctx context.Context,
	userID, jobID uuid.UUID,
	patch domain.JobPatch,
) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("", ErrEmptyPatch.Error(), ErrEmptyPatch)
	}

	var updated *domain.Job
	err := s.jobRepo.RunInTx(ctx, func(ctx context.Context, txRepo JobRepository) error {
		job, err := txRepo.GetByIDForUpdate(ctx, jobID)
		if err != nil {
			return s.lookupError(log, "update_job", jobID, err)
		}
		if !ownedBy(job, userID) {
			logOwnerMismatch(log, userID, jobID)
			return ErrJobNotFound
		}

		if err := job.Apply(patch); err != nil {
			return err
		}

		if err := txRepo.Update(ctx, job); err != nil {
			if store.IsNotFoundError(err) {
				return ErrJobNotFound
			}
			log.Error("failed to update job",
				slog.String("error", err.Error()),
				slog.String("job_id", jobID.String()))
			return NewJobServiceError("update_job", "failed to save job", err)
		}

		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("job updated",
		slog.String("job_id", jobID.String()),
		slog.String("user_id", userID.String()))
	return updated, nil
}

func (s *jobServiceImpl) DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return domain.ErrUnauthorized
	}

	err := s.jobRepo.RunInTx(ctx, func(ctx context.Context, txRepo JobRepository) error {
		job, err := txRepo.GetByIDForUpdate(ctx, jobID)
		if err != nil {
			return s.lookupError(log, "delete_job", jobID, err)
		}
		if !ownedBy(job, userID) {
			logOwnerMismatch(log, userID, jobID)
			return ErrJobNotFound
		}

		if err := txRepo.Delete(ctx, jobID); err != nil {
			if store.IsNotFoundError(err) {
				return ErrJobNotFound
			}
			log.Error("failed to delete job",
				slog.String("error", err.Error()),
				slog.String("job_id", jobID.String()))
			return NewJobServiceError("delete_job", "failed to delete job", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("job deleted",
		slog.String("job_id", jobID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// lookupError maps a failed fetch to ErrJobNotFound or a JobServiceError.
func (s *jobServiceImpl) lookupError(log *slog.Logger, op string, jobID uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		log.Debug("job not found", slog.String("job_id", jobID.String()))
		return ErrJobNotFound
	}
	log.Error("failed to fetch job",
		slog.String("error", err.Error()),
		slog.String("job_id", jobID.String()))
	return NewJobServiceError(op, "failed to fetch job", err)
}

func ownedBy(job *domain.Job, userID uuid.UUID) bool {
	return job != nil && job.OwnerID == userID
}

func logOwnerMismatch(log *slog.Logger, userID, jobID uuid.UUID) {
	log.Warn("job requested by non-owner",
		slog.String("user_id", userID.String()),
		slog.String("job_id", jobID.String()))
}
