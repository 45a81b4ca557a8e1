package handler

import (
	"fmt"
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/request"
	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
)

type Triggers struct {
	svc *core.QuartzService
}

func NewTriggers(svc *core.QuartzService) *Triggers {
	return &Triggers{svc: svc}
}

// List godoc
//
//	@Summary		List triggers
//	@Description	Lists all triggers, or only the triggers attached to one job when both halves of the job key are supplied.
//	@Tags			Triggers
//	@Param			body body request.ListTriggers true "Connection and optional job key"
//	@Success		200 {object} map[string][]model.TriggerInfo
//	@Router			/api/triggers/list [post]
func (h *Triggers) List(w http.ResponseWriter, r *http.Request) {
	var req request.ListTriggers
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	triggers, err := h.svc.GetAllTriggers(r.Context(), req.Connection, req.JobName, req.JobGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"triggers": triggers})
}

// Executing godoc
//
//	@Summary		Currently executing jobs
//	@Tags			Triggers
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string][]model.ExecutingJob
//	@Router			/api/triggers/executing [post]
func (h *Triggers) Executing(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	jobs, err := h.svc.GetExecutingJobs(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"executingJobs": jobs})
}

// Pause godoc
//
//	@Summary		Pause a trigger
//	@Tags			Triggers
//	@Param			body body request.TriggerKey true "Connection and trigger key"
//	@Success		200 {object} map[string]any
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/triggers/pause [post]
func (h *Triggers) Pause(w http.ResponseWriter, r *http.Request) {
	var req request.TriggerKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	paused, err := h.svc.PauseTrigger(r.Context(), req.Connection, req.TriggerName, req.TriggerGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !paused {
		response.WriteError(w, http.StatusNotFound, "Not Found",
			fmt.Sprintf("Trigger %s.%s not found or already paused", req.TriggerGroup, req.TriggerName))
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Trigger %s.%s paused successfully", req.TriggerGroup, req.TriggerName),
	})
}

// Resume godoc
//
//	@Summary		Resume a paused trigger
//	@Tags			Triggers
//	@Param			body body request.TriggerKey true "Connection and trigger key"
//	@Success		200 {object} map[string]any
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/triggers/resume [post]
func (h *Triggers) Resume(w http.ResponseWriter, r *http.Request) {
	var req request.TriggerKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	resumed, err := h.svc.ResumeTrigger(r.Context(), req.Connection, req.TriggerName, req.TriggerGroup)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !resumed {
		response.WriteError(w, http.StatusNotFound, "Not Found",
			fmt.Sprintf("Trigger %s.%s not found or not paused", req.TriggerGroup, req.TriggerName))
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Trigger %s.%s resumed successfully", req.TriggerGroup, req.TriggerName),
	})
}

// UpdateCron godoc
//
//	@Summary		Replace the cron expression of a cron trigger
//	@Description	Validates the expression, updates the cron subtype row, and zeroes the trigger's next fire time so the scheduler recomputes it.
//	@Tags			Triggers
//	@Param			body body request.UpdateTriggerCron true "Connection, trigger key, and new expression"
//	@Success		200 {object} map[string]any
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/api/triggers/update [post]
func (h *Triggers) UpdateCron(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTriggerCron
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	err := h.svc.UpdateTriggerCronExpression(r.Context(), req.Connection, req.TriggerName, req.TriggerGroup, req.CronExpression)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Trigger %s.%s updated successfully", req.TriggerGroup, req.TriggerName),
	})
}

// ValidateCron godoc
//
//	@Summary		Validate a Quartz cron expression
//	@Description	Pure validation, no database round trip. Invalid expressions come back in the envelope with a 200.
//	@Tags			Triggers
//	@Param			body body request.ValidateCron true "Expression"
//	@Success		200 {object} model.CronValidation
//	@Router			/api/triggers/validate-cron [post]
func (h *Triggers) ValidateCron(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateCron
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, core.ValidateCronExpression(req.CronExpression))
}
