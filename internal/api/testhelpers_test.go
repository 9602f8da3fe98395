package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/jobs-api/internal/api/middleware"
	"github.com/phrazzld/jobs-api/internal/mocks"
	"github.com/phrazzld/jobs-api/internal/service"
	"github.com/phrazzld/jobs-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	handler http.Handler
	jobs    *mocks.InMemoryJobRepository
	users   *mocks.MockUserStore
	jwt     auth.JWTService
}

// newTestAPI wires the real services over in-memory stores behind the same
// routes and auth guard the server uses.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := mocks.NewMockUserStore()
	userService, err := service.NewUserService(users, auth.NewBcryptVerifier(), nil)
	require.NoError(t, err)

	jobs := mocks.NewInMemoryJobRepository()
	jobService, err := service.NewJobService(jobs, nil)
	require.NoError(t, err)

	jwtService := auth.RequireTestJWTService(t)
	authHandler := NewAuthHandler(userService, jwtService, nil)
	jobHandler := NewJobHandler(jobService, nil)
	guard := middleware.NewAuthMiddleware(jwtService)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(guard.Authenticate)
		r.Get("/jobs", jobHandler.ListJobs)
		r.Post("/jobs", jobHandler.CreateJob)
		r.Get("/jobs/{id}", jobHandler.GetJob)
		r.Patch("/jobs/{id}", jobHandler.UpdateJob)
		r.Delete("/jobs/{id}", jobHandler.DeleteJob)
	})

	return &testAPI{handler: r, jobs: jobs, users: users, jwt: jwtService}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns the auth response.
func (a *testAPI) register(t *testing.T, name, email string) AuthResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/auth/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (a *testAPI) createJob(t *testing.T, token string, req CreateJobRequest) JobResponse {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/jobs", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var job JobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	return job
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Error
}
