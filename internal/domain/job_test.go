package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("defaults status to pending", func(t *testing.T) {
		t.Parallel()
		job, err := NewJob(ownerID, JobInput{Title: " Backend Engineer ", Company: "Acme"})
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, ownerID, job.OwnerID)
		assert.Equal(t, "Backend Engineer", job.Title)
		assert.Equal(t, "Acme", job.Company)
		assert.Equal(t, JobStatusPending, job.Status)
		assert.False(t, job.CreatedAt.IsZero())
		assert.Equal(t, job.CreatedAt, job.UpdatedAt)
	})

	t.Run("keeps explicit status", func(t *testing.T) {
		t.Parallel()
		job, err := NewJob(ownerID, JobInput{Title: "SRE", Status: JobStatusInterview})
		require.NoError(t, err)
		assert.Equal(t, JobStatusInterview, job.Status)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name    string
			owner   uuid.UUID
			input   JobInput
			wantErr error
		}{
			{"missing owner", uuid.Nil, JobInput{Title: "x"}, ErrEmptyJobOwnerID},
			{"blank title", ownerID, JobInput{Title: "   "}, ErrEmptyJobTitle},
			{"long title", ownerID, JobInput{Title: strings.Repeat("t", 101)}, ErrJobTitleTooLong},
			{"long company", ownerID, JobInput{Title: "x", Company: strings.Repeat("c", 51)}, ErrJobCompanyTooLong},
			{"unknown status", ownerID, JobInput{Title: "x", Status: "hired"}, ErrInvalidJobStatus},
		}
		for _, tt := range tests {
			_, err := NewJob(tt.owner, tt.input)
			assert.ErrorIs(t, err, tt.wantErr, tt.name)
		}
	})

	t.Run("field errors match ErrValidation", func(t *testing.T) {
		t.Parallel()
		_, err := NewJob(ownerID, JobInput{Title: ""})
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "title", vErr.Field)
	})
}

func TestJobApply(t *testing.T) {
	t.Parallel()

	job, err := NewJob(uuid.New(), JobInput{Title: "Original", Company: "Acme"})
	require.NoError(t, err)
	originalOwner := job.OwnerID

	t.Run("applies only set fields", func(t *testing.T) {
		title := "Renamed"
		status := JobStatusDeclined
		require.NoError(t, job.Apply(JobPatch{Title: &title, Status: &status}))

		assert.Equal(t, "Renamed", job.Title)
		assert.Equal(t, "Acme", job.Company)
		assert.Equal(t, JobStatusDeclined, job.Status)
		assert.Equal(t, originalOwner, job.OwnerID)
		assert.False(t, job.UpdatedAt.Before(job.CreatedAt))
	})

	t.Run("invalid patch leaves job unchanged", func(t *testing.T) {
		before := *job
		bad := JobStatus("ghosted")
		err := job.Apply(JobPatch{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidJobStatus)
		assert.Equal(t, before, *job)
	})
}

func TestJobPatchIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, JobPatch{}.IsEmpty())
	company := "Acme"
	assert.False(t, JobPatch{Company: &company}.IsEmpty())
}
