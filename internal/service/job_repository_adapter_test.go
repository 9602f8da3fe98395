package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/platform/postgres"
	"github.com/phrazzld/jobs-api/internal/service"
	"github.com/phrazzld/jobs-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobRowColumns = []string{
	"id", "owner_id", "title", "company", "description", "status", "created_at", "updated_at",
}

func newAdapterService(t *testing.T) (service.JobService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := service.NewJobRepositoryAdapter(postgres.NewPostgresJobStore(db, nil), db)
	svc, err := service.NewJobService(repo, nil)
	require.NoError(t, err)
	return svc, mock
}

func lockedJobRows(job *domain.Job) *sqlmock.Rows {
	return sqlmock.NewRows(jobRowColumns).AddRow(
		job.ID.String(), job.OwnerID.String(), job.Title, job.Company,
		job.Description, string(job.Status), job.CreatedAt, job.UpdatedAt,
	)
}

func TestJobRepositoryAdapter_DeleteRunsInTransaction(t *testing.T) {
	svc, mock := newAdapterService(t)
	job, err := domain.NewJob(uuid.New(), domain.JobInput{Title: "SRE"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE id = $1 FOR UPDATE")).
		WithArgs(job.ID).
		WillReturnRows(lockedJobRows(job))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs WHERE id = $1")).
		WithArgs(job.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteJob(context.Background(), job.OwnerID, job.ID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryAdapter_NonOwnerRollsBack(t *testing.T) {
	svc, mock := newAdapterService(t)
	job, err := domain.NewJob(uuid.New(), domain.JobInput{Title: "SRE"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE id = $1 FOR UPDATE")).
		WithArgs(job.ID).
		WillReturnRows(lockedJobRows(job))
	mock.ExpectRollback()

	err = svc.DeleteJob(context.Background(), uuid.New(), job.ID)

	assert.ErrorIs(t, err, service.ErrJobNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryAdapter_UpdateCommits(t *testing.T) {
	svc, mock := newAdapterService(t)
	job, err := domain.NewJob(uuid.New(), domain.JobInput{Title: "SRE", Company: "Acme"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM jobs WHERE id = $1 FOR UPDATE")).
		WithArgs(job.ID).
		WillReturnRows(lockedJobRows(job))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs")).
		WithArgs("SRE", "Acme", "", "declined", sqlmock.AnyArg(), job.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := domain.JobStatusDeclined
	updated, err := svc.UpdateJob(context.Background(), job.OwnerID, job.ID, domain.JobPatch{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusDeclined, updated.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepositoryAdapter_BeginFailure(t *testing.T) {
	svc, mock := newAdapterService(t)
	beginErr := errors.New("too many connections")

	mock.ExpectBegin().WillReturnError(beginErr)

	err := svc.DeleteJob(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, store.ErrTransactionFailed)
	assert.ErrorIs(t, err, beginErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
