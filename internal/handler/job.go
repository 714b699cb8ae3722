package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/jobtracker/internal/auth"
	"github.com/sakif/jobtracker/internal/model"
	"github.com/sakif/jobtracker/internal/repository"
	"github.com/sakif/jobtracker/internal/service"
)

// JobHandler serves the protected /jobs routes.
//
// Every handler here starts by reading the verified identity out of the
// request context (put there by auth.RequireAuth). That identity — and only
// that identity — scopes every service call. A created_by or userId field in
// the request body would simply be ignored by the typed request structs.
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, logger: logger}
}

type createJobRequest struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

// updateJobRequest uses pointers so "field absent" and "field set to empty"
// are distinguishable. Unknown JSON fields are silently dropped by the
// decoder — they are ignored, not errors.
type updateJobRequest struct {
	Role    *string `json:"role"`
	Company *string `json:"company"`
	Status  *string `json:"status"`
}

type listJobsResponse struct {
	Jobs  []model.Job `json:"jobs"`
	Count int         `json:"count"`
}

// identity returns the authenticated caller, or writes a 401 and returns
// false. On a RequireAuth-protected route the middleware has always run, but
// a misrouted handler must fail closed, not panic.
func (h *JobHandler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Authentication invalid"})
		return auth.Identity{}, false
	}
	return ident, true
}

// jobID parses the {id} path parameter. A non-numeric id cannot match any
// stored job, so it gets the same 404 a missing job would.
func (h *JobHandler) jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "No such job was found"})
		return 0, false
	}
	return id, true
}

// HandleCreate creates a job owned by the caller.
//
// HTTP: POST /jobs
// Body: {"role":"Engineer","company":"Acme","status":"pending"}
// Status is optional and defaults to "pending".
func (h *JobHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	job, err := h.jobs.Create(r.Context(), ident.UserID, req.Role, req.Company, req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// HandleList returns all of the caller's jobs.
//
// HTTP: GET /jobs
// Response: {"jobs":[...],"count":N}
func (h *JobHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	jobs, err := h.jobs.List(r.Context(), ident.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, listJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// HandleGet returns one of the caller's jobs.
//
// HTTP: GET /jobs/{id}
func (h *JobHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	job, err := h.jobs.Get(r.Context(), id, ident.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// HandleUpdate partially updates one of the caller's jobs.
//
// HTTP: PATCH /jobs/{id}
// Body: any subset of {"role","company","status"}; other fields are ignored.
func (h *JobHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	var req updateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	patch := repository.JobPatch{
		Role:    req.Role,
		Company: req.Company,
		Status:  req.Status,
	}

	job, err := h.jobs.Update(r.Context(), id, ident.UserID, patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// HandleDelete removes one of the caller's jobs.
//
// HTTP: DELETE /jobs/{id}
// Responds 204 on success, 404 when the job is absent or not the caller's.
func (h *JobHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.jobID(w, r)
	if !ok {
		return
	}

	if err := h.jobs.Delete(r.Context(), id, ident.UserID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
