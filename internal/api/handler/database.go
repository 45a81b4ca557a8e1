package handler

import (
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/request"
	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
	"github.com/quartzboard/quartzboard/internal/db"
)

type Database struct {
	manager *db.Manager
	svc     *core.SchemaService
}

func NewDatabase(manager *db.Manager, svc *core.SchemaService) *Database {
	return &Database{manager: manager, svc: svc}
}

// TestConnection godoc
//
//	@Summary		Test a database connection
//	@Description	Opens a short-lived connection to the described database, runs the dialect's version query, and reports the outcome. Failures come back in the envelope, not as errors.
//	@Tags			Database
//	@Param			body body db.Descriptor true "Connection descriptor"
//	@Success		200 {object} db.TestResult
//	@Failure		400 {object} db.TestResult
//	@Router			/api/database/test-connection [post]
func (h *Database) TestConnection(w http.ResponseWriter, r *http.Request) {
	var desc db.Descriptor
	if err := request.Decode(r, &desc); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	result := h.manager.TestConnection(r.Context(), desc)
	if !result.Success {
		response.WriteJSON(w, http.StatusBadRequest, result)
		return
	}
	response.WriteJSON(w, http.StatusOK, result)
}

// Schemas godoc
//
//	@Summary		List schemas
//	@Description	Lists the non-system schemas of the target database in ascending order.
//	@Tags			Database
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string][]string
//	@Router			/api/database/schemas [post]
func (h *Database) Schemas(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	schemas, err := h.svc.ListSchemas(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"schemas": schemas})
}

// SchemasWithQuartz godoc
//
//	@Summary		List schemas with Quartz table detection
//	@Tags			Database
//	@Param			body body request.Connection true "Connection"
//	@Success		200 {object} map[string][]model.SchemaInfo
//	@Router			/api/database/schemas-with-quartz [post]
func (h *Database) SchemasWithQuartz(w http.ResponseWriter, r *http.Request) {
	var req request.Connection
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	infos, err := h.svc.SchemasWithQuartzInfo(r.Context(), req.Connection)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]any{"schemas": infos})
}

// ValidateQuartz godoc
//
//	@Summary		Validate the Quartz table set of a schema
//	@Tags			Database
//	@Param			body body request.SchemaScoped true "Connection and schema"
//	@Success		200 {object} model.QuartzValidationResult
//	@Router			/api/database/validate-quartz [post]
func (h *Database) ValidateQuartz(w http.ResponseWriter, r *http.Request) {
	var req request.SchemaScoped
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	validation, err := h.svc.ValidateQuartzTables(r.Context(), req.Connection, req.Schema)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, validation)
}

// TableCounts godoc
//
//	@Summary		Row counts of the high-traffic Quartz tables
//	@Description	Per-table failures degrade to a zero count instead of failing the call.
//	@Tags			Database
//	@Param			body body request.SchemaScoped true "Connection and schema"
//	@Success		200 {object} map[string]int64
//	@Router			/api/database/table-counts [post]
func (h *Database) TableCounts(w http.ResponseWriter, r *http.Request) {
	var req request.SchemaScoped
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", err.Error())
		return
	}

	counts, err := h.svc.TableCounts(r.Context(), req.Connection, req.Schema)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, counts)
}
