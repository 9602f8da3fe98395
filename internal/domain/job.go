package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// JobStatus is the stage an application has reached.
type JobStatus string

// Possible job status values
const (
	JobStatusPending   JobStatus = "pending"
	JobStatusInterview JobStatus = "interview"
	JobStatusDeclined  JobStatus = "declined"
)

// Field limits for Job
const (
	MaxJobTitleLength       = 100
	MaxJobCompanyLength     = 50
	MaxJobDescriptionLength = 2000
)

// Common validation errors for Job
var (
	ErrEmptyJobID        = errors.New("job ID cannot be empty")
	ErrEmptyJobOwnerID   = errors.New("job owner ID cannot be empty")
	ErrEmptyJobTitle     = errors.New("job title cannot be empty")
	ErrJobTitleTooLong   = errors.New("job title must be at most 100 characters")
	ErrJobCompanyTooLong = errors.New("job company must be at most 50 characters")
	ErrJobDescTooLong    = errors.New("job description must be at most 2000 characters")
	ErrInvalidJobStatus  = errors.New("invalid job status")
)

// Job is a tracked job application. OwnerID is fixed at creation and is the
// only link between a job and the user allowed to see it.
type Job struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobInput holds the client-supplied fields of a new job.
type JobInput struct {
	Title       string
	Company     string
	Description string
	Status      JobStatus
}

// JobPatch holds optional changes to a job. Nil fields are left untouched.
// There is deliberately no owner field.
type JobPatch struct {
	Title       *string
	Company     *string
	Description *string
	Status      *JobStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p.Title == nil && p.Company == nil && p.Description == nil && p.Status == nil
}

// NewJob creates a Job owned by ownerID. An empty status defaults to pending.
func NewJob(ownerID uuid.UUID, input JobInput) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if job.Status == "" {
		job.Status = JobStatusPending
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Apply copies the non-nil fields of patch onto the job and bumps UpdatedAt.
// The result is validated; on error the job is left unchanged.
func (j *Job) Apply(patch JobPatch) error {
	updated := *j
	if patch.Title != nil {
		updated.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Company != nil {
		updated.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return err
	}

	*j = updated
	return nil
}

// Validate checks if the Job has valid data.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJobID
	}

	if j.OwnerID == uuid.Nil {
		return ErrEmptyJobOwnerID
	}

	if j.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyJobTitle)
	}
	if utf8.RuneCountInString(j.Title) > MaxJobTitleLength {
		return NewValidationError("title", "is too long", ErrJobTitleTooLong)
	}
	if utf8.RuneCountInString(j.Company) > MaxJobCompanyLength {
		return NewValidationError("company", "is too long", ErrJobCompanyTooLong)
	}
	if utf8.RuneCountInString(j.Description) > MaxJobDescriptionLength {
		return NewValidationError("description", "is too long", ErrJobDescTooLong)
	}

	if !j.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, interview, declined", ErrInvalidJobStatus)
	}

	return nil
}

// IsValid reports whether s is a known status.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusInterview, JobStatusDeclined:
		return true
	default:
		return false
	}
}
