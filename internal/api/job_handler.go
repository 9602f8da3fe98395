package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/jobs-api/internal/api/shared"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/platform/logger"
	"github.com/phrazzld/jobs-api/internal/service"
)

// Pagination headers set by ListJobs.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
)

// JobHandler serves the /jobs endpoints. Every route expects the auth guard
// to have put the caller's ID in the request context.
type JobHandler struct {
	jobService service.JobService
	logger     *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService, logger *slog.Logger) *JobHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobHandler{
		jobService: jobService,
		logger:     logger.With(slog.String("component", "job_handler")),
	}
}

// ListJobs handles GET /jobs.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	filter, err := parseListJobsQuery(r.URL.Query())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	page, err := h.jobService.ListJobs(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list jobs")
		return
	}

	jobs := make([]JobResponse, 0, len(page.Jobs))
	for _, job := range page.Jobs {
		jobs = append(jobs, jobToResponse(job))
	}

	w.Header().Set(HeaderTotalCount, strconv.Itoa(page.Total))
	w.Header().Set(HeaderTotalPages, strconv.Itoa(page.TotalPages))
	shared.RespondWithJSON(w, r, http.StatusOK, jobs)
}

// GetJob handles GET /jobs/{id}.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, jobID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(r.Context(), userID, jobID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// CreateJob handles POST /jobs.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateJobRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, jobToResponse(job))
}

// UpdateJob handles PATCH /jobs/{id}.
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, jobID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	job, err := h.jobService.UpdateJob(r.Context(), userID, jobID, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// DeleteJob handles DELETE /jobs/{id}.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, jobID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(r.Context(), userID, jobID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete job")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Success! Job removed"})
}
