package handler

import (
	"errors"
	"net/http"

	"github.com/quartzboard/quartzboard/internal/api/response"
	"github.com/quartzboard/quartzboard/internal/core"
	"github.com/quartzboard/quartzboard/internal/db"
)

// writeServiceError maps core/db error kinds to status codes: validation and
// unsupported dialects are caller mistakes (400), missing rows are 404,
// unreachable databases are 503, everything else is a 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", validationErr.Message)
		return
	}

	var dialectErr *db.UnsupportedDialectError
	if errors.As(err, &dialectErr) {
		response.WriteError(w, http.StatusBadRequest, "Validation Error", dialectErr.Error())
		return
	}

	var notFoundErr *core.NotFoundError
	if errors.As(err, &notFoundErr) {
		response.WriteError(w, http.StatusNotFound, "Not Found", notFoundErr.Message)
		return
	}

	var connErr *db.ConnectionError
	if errors.As(err, &connErr) {
		response.WriteError(w, http.StatusServiceUnavailable, "Connection Error", connErr.Error())
		return
	}

	response.WriteError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
}
