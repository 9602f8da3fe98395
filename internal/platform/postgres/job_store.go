package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/store"
)

const jobColumns = `id, owner_id, title, company, description, status, created_at, updated_at`

var jobOrderBy = map[string]string{
	store.SortLatest: "created_at DESC, id DESC",
	store.SortOldest: "created_at ASC, id ASC",
	store.SortAZ:     "LOWER(title) ASC, id ASC",
	store.SortZA:     "LOWER(title) DESC, id DESC",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresJobStore implements store.JobStore. It applies no tenancy
// filtering apart from the explicit owner argument of ListByOwner.
type PostgresJobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.JobStore = (*PostgresJobStore)(nil)

// NewPostgresJobStore creates a job store on db, which may be a *sql.DB or a
// *sql.Tx. A nil logger falls back to slog.Default().
func NewPostgresJobStore(db store.DBTX, logger *slog.Logger) *PostgresJobStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_store")),
	}
}

// WithTx returns a copy of the store bound to tx.
func (s *PostgresJobStore) WithTx(tx *sql.Tx) store.JobStore {
	return &PostgresJobStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create validates and inserts a job. A missing owner row surfaces as
// store.ErrInvalidEntity.
func (s *PostgresJobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return err
	}

	query := `
		INSERT INTO jobs (id, owner_id, title, company, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.OwnerID,
		job.Title,
		job.Company,
		job.Description,
		string(job.Status),
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()),
			slog.String("owner_id", job.OwnerID.String()))
		return store.NewStoreError("job", "create", "insert failed", MapError(err))
	}

	log.Info("job created",
		slog.String("job_id", job.ID.String()),
		slog.String("owner_id", job.OwnerID.String()))
	return nil
}

// GetByID implements store.JobStore.
func (s *PostgresJobStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetByIDForUpdate implements store.JobStore. The row stays locked until the
// enclosing transaction commits or rolls back.
func (s *PostgresJobStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresJobStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("job not found", slog.String("job_id", id.String()))
			return nil, store.ErrJobNotFound
		}
		log.Error("failed to get job",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return nil, store.NewStoreError("job", "get", "query failed", MapError(err))
	}

	return job, nil
}

// ListByOwner implements store.JobStore. The filter is normalized before
// use, so callers may pass zero values.
func (s *PostgresJobStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.JobFilter,
) ([]*domain.Job, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	filter = filter.Normalized()

	where, args := jobListConditions(ownerID, filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count jobs",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, 0, store.NewStoreError("job", "list", "count failed", MapError(err))
	}

	jobs := []*domain.Job{}
	if total == 0 {
		return jobs, 0, nil
	}

	n := len(args)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM jobs WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		jobColumns, where, jobOrderBy[filter.Sort], n+1, n+2,
	)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list jobs",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, 0, store.NewStoreError("job", "list", "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			log.Error("failed to scan job row", slog.String("error", err.Error()))
			return nil, 0, store.NewStoreError("job", "list", "scan failed", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating job rows", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("job", "list", "iteration failed", err)
	}

	log.Debug("listed jobs",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(jobs)),
		slog.Int("total", total))
	return jobs, total, nil
}

// jobListConditions builds the WHERE clause shared by the count and page
// queries. The owner condition is always first.
func jobListConditions(ownerID uuid.UUID, filter store.JobFilter) (string, []any) {
	conds := []string{"owner_id = $1"}
	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+likeEscaper.Replace(search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// Update implements store.JobStore. OwnerID and CreatedAt are never written.
func (s *PostgresJobStore) Update(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during update",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return err
	}

	query := `
		UPDATE jobs
		SET title = $1, company = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		job.Title,
		job.Company,
		job.Description,
		string(job.Status),
		job.UpdatedAt,
		job.ID,
	)
	if err != nil {
		log.Error("failed to update job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return store.NewStoreError("job", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrJobNotFound); err != nil {
		log.Debug("job not updated",
			slog.String("job_id", job.ID.String()),
			slog.String("reason", err.Error()))
		return err
	}

	log.Info("job updated", slog.String("job_id", job.ID.String()))
	return nil
}

// Delete implements store.JobStore.
func (s *PostgresJobStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete job",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return store.NewStoreError("job", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrJobNotFound); err != nil {
		log.Debug("job not deleted",
			slog.String("job_id", id.String()),
			slog.String("reason", err.Error()))
		return err
	}

	log.Info("job deleted", slog.String("job_id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var status string

	err := row.Scan(
		&job.ID,
		&job.OwnerID,
		&job.Title,
		&job.Company,
		&job.Description,
		&status,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Status = domain.JobStatus(status)
	return &job, nil
}
