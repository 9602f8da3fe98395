package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// CreateJobRequest is the body of POST /jobs. There is no owner field:
// the owner is always the authenticated caller.
type CreateJobRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Company     string `json:"company"     validate:"max=50"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending interview declined"`
}

// UpdateJobRequest is the body of PATCH /jobs/{id}. Absent fields are left
// unchanged.
type UpdateJobRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=100"`
	Company     *string `json:"company"     validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending interview declined"`
}

// ListJobsQuery holds the query parameters of GET /jobs.
type ListJobsQuery struct {
	Status string `json:"status" validate:"omitempty,oneof=all pending interview declined"`
	Search string `json:"search" validate:"max=100"`
	Sort   string `json:"sort"   validate:"omitempty,oneof=latest oldest a-z z-a"`
	Page   int    `json:"page"   validate:"gte=0,lte=1000000"`
	Limit  int    `json:"limit"  validate:"gte=0,lte=100"`
}

// JobResponse is the public view of a job.
type JobResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func jobToResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		OwnerID:     job.OwnerID,
		Title:       job.Title,
		Company:     job.Company,
		Description: job.Description,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

func (req CreateJobRequest) toInput() domain.JobInput {
	return domain.JobInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Status:      domain.JobStatus(req.Status),
	}
}

func (req UpdateJobRequest) toPatch() domain.JobPatch {
	patch := domain.JobPatch{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		patch.Status = &status
	}
	return patch
}
