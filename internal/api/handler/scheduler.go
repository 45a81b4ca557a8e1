package handler

import (
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/request"
	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
)

type Scheduler struct {
	svc *core.QuartzService
}

func NewScheduler(svc *core.QuartzService) *Scheduler {
	return &Scheduler{svc: svc}
}

// Info godoc
//
//	@Summary		Scheduler instance states
//	@Tags			Scheduler
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string][]model.SchedulerInfo
//	@Router			/api/scheduler/info [post]
func (h *Scheduler) Info(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	info, err := h.svc.GetSchedulerInfo(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"schedulerInfo": info})
}

// Statistics godoc
//
//	@Summary		Aggregate scheduler counts
//	@Description	Job, trigger, executing, and paused counts gathered in one call. Any single failure fails the whole call.
//	@Tags			Scheduler
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string]model.SchedulerStatistics
//	@Router			/api/scheduler/statistics [post]
func (h *Scheduler) Statistics(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	stats, err := h.svc.GetStatistics(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"statistics": stats})
}
