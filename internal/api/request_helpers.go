package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/jobs-api/internal/api/shared"
	"github.com/phrazzld/jobs-api/internal/domain"
	"github.com/phrazzld/jobs-api/internal/store"
)

// getPathUUID parses the named chi path parameter as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handleUserIDAndPathUUID returns the caller's ID and the path UUID, or
// writes an error response and returns false.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := getPathUUID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter", slog.String("param_name", paramName))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, pathID, true
}

// parseListJobsQuery reads and validates the GET /jobs query string.
func parseListJobsQuery(values url.Values) (store.JobFilter, error) {
	q := ListJobsQuery{
		Status: strings.TrimSpace(values.Get("status")),
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   strings.TrimSpace(values.Get("sort")),
	}

	var err error
	if q.Page, err = queryInt(values, "page"); err != nil {
		return store.JobFilter{}, err
	}
	if q.Limit, err = queryInt(values, "limit"); err != nil {
		return store.JobFilter{}, err
	}
	if err := shared.ValidateRequest(&q); err != nil {
		return store.JobFilter{}, err
	}

	filter := store.JobFilter{
		Search: q.Search,
		Sort:   q.Sort,
		Page:   q.Page,
		Limit:  q.Limit,
	}
	if q.Status != "all" {
		filter.Status = domain.JobStatus(q.Status)
	}
	return filter, nil
}

func queryInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer", domain.ErrInvalidFormat)
	}
	return n, nil
}
