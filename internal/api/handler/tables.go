package handler

import (
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/request"
	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
)

type Tables struct {
	svc *core.QuartzService
}

func NewTables(svc *core.QuartzService) *Tables {
	return &Tables{svc: svc}
}

// List godoc
//
//	@Summary		List the Quartz tables present in the schema
//	@Description	Catalog listing with best-effort row counts; a count failure degrades to zero.
//	@Tags			Tables
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string][]model.QuartzTable
//	@Router			/api/database-view/tables [post]
func (h *Tables) List(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	tables, err := h.svc.GetQuartzTables(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

// Data godoc
//
//	@Summary		Page through the rows of one Quartz table
//	@Description	Rejects any table name without the qrtz_ prefix before touching the database.
//	@Tags			Tables
//	@Param			body body request.TableData true "Connection, table name, and page"
//	@Success		200 {object} model.TablePage
//	@Failure		400 {object} response.ErrorResponse
//	@Router			/api/database-view/table-data [post]
func (h *Tables) Data(w http.ResponseWriter, r *http.Request) {
	var req request.TableData
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	page, err := h.svc.GetTableData(r.Context(), req.Connection, req.TableName, req.Page, req.PageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, page)
}

// Schema godoc
//
//	@Summary		Column definitions of one Quartz table
//	@Tags			Tables
//	@Param			body body request.TableSchema true "Connection and table name"
//	@Success		200 {object} map[string][]model.ColumnInfo
//	@Failure		400 {object} response.ErrorResponse
//	@Router			/api/database-view/table-schema [post]
func (h *Tables) Schema(w http.ResponseWriter, r *http.Request) {
	var req request.TableSchema
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	columns, err := h.svc.GetTableSchema(r.Context(), req.Connection, req.TableName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"columns": columns})
}
