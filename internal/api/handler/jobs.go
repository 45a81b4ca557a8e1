package handler

import (
	"fmt"
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/request"
	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
)

type Jobs struct {
	svc *core.QuartzService
}

func NewJobs(svc *core.QuartzService) *Jobs {
	return &Jobs{svc: svc}
}

// List godoc
//
//	@Summary		List scheduled jobs
//	@Description	Lists every job known to the scheduler, optionally filtered to one job group.
//	@Tags			Jobs
//	@Param			body body request.ListJobs true "Connection and optional group filter"
//	@Success		200 {object} map[string][]model.JobDetail
//	@Router			/api/jobs/list [post]
func (h *Jobs) List(w http.ResponseWriter, r *http.Request) {
	var req request.ListJobs
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	jobs, err := h.svc.GetAllJobs(r.Context(), req.Connection, req.FilterGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// Detail godoc
//
//	@Summary		Get one job by key
//	@Tags			Jobs
//	@Param			body body request.JobKey true "Connection and job key"
//	@Success		200 {object} map[string]model.JobDetail
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/jobs/detail [post]
func (h *Jobs) Detail(w http.ResponseWriter, r *http.Request) {
	var req request.JobKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	job, err := h.svc.GetJob(r.Context(), req.Connection, req.JobName, req.JobGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"job": job})
}

// Delete godoc
//
//	@Summary		Delete a job and its triggers
//	@Tags			Jobs
//	@Param			body body request.JobKey true "Connection and job key"
//	@Success		200 {object} map[string]any
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/jobs/delete [post]
func (h *Jobs) Delete(w http.ResponseWriter, r *http.Request) {
	var req request.JobKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	deleted, err := h.svc.DeleteJob(r.Context(), req.Connection, req.JobName, req.JobGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		response.WriteError(w, http.StatusNotFound, "Not Found",
			fmt.Sprintf("Job %s.%s not found", req.JobGroup, req.JobName))
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Job %s.%s deleted successfully", req.JobGroup, req.JobName),
	})
}
