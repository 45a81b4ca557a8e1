package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quartzboard/quartzboard/internal/core"
	"github.com/quartzboard/quartzboard/internal/db"
)

func TestDatabase_TestConnection_InvalidBody(t *testing.T) {
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(newMockQuerier()))

	rec := httptest.NewRecorder()
	h.TestConnection(rec, newRequestRaw("POST", "/api/database/test-connection", `{"host": "only"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation Error", decodeErrorResponse(rec)["error"])
}

func TestDatabase_TestConnection_UnreachableHost(t *testing.T) {
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(newMockQuerier()))

	rec := httptest.NewRecorder()
	h.TestConnection(rec, newRequest("POST", "/api/database/test-connection", map[string]any{
		"host":         "127.0.0.1",
		"port":         1,
		"database":     "quartz",
		"username":     "admin",
		"password":     "secret",
		"databaseType": "postgresql",
	}))

	// Failures come back in the envelope with a 400, never as a 5xx.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["message"])
}

func TestDatabase_Schemas(t *testing.T) {
	q := newMockQuerier()
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(q))

	rows := []map[string]any{{"schema_name": "public"}, {"schema_name": "scheduler"}}
	q.On("Query", mock.Anything, testDescriptor(), queryContains("schema_name"), []any(nil)).
		Return(rows, nil).Once()

	rec := httptest.NewRecorder()
	h.Schemas(rec, newRequest("POST", "/api/database/schemas", map[string]any{"connection": validConnection}))

	assert.Equal(t, http.StatusOK, rec.Code)
	schemas, ok := decodeBody(rec)["schemas"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"public", "scheduler"}, schemas)
}

func TestDatabase_ValidateQuartz_MissingSchemaField(t *testing.T) {
	q := newMockQuerier()
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(q))

	rec := httptest.NewRecorder()
	h.ValidateQuartz(rec, newRequest("POST", "/api/database/validate-quartz", map[string]any{
		"connection": validConnection,
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	q.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDatabase_ValidateQuartz(t *testing.T) {
	q := newMockQuerier()
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(q))

	q.On("Query", mock.Anything, testDescriptor(), mock.AnythingOfType("string"), []any{"public"}).
		Return([]map[string]any{{"table_name": "qrtz_job_details"}}, nil).Once()

	rec := httptest.NewRecorder()
	h.ValidateQuartz(rec, newRequest("POST", "/api/database/validate-quartz", map[string]any{
		"connection": validConnection,
		"schema":     "public",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, false, body["valid"])
	missing, ok := body["missingTables"].([]any)
	require.True(t, ok)
	assert.Len(t, missing, 10)
}

func TestDatabase_TableCounts(t *testing.T) {
	q := newMockQuerier()
	h := NewDatabase(db.NewManager(zerolog.Nop()), core.NewSchemaService(q))

	countRows := []map[string]any{{"count": int64(3)}}
	q.On("Query", mock.Anything, testDescriptor(), mock.AnythingOfType("string"), []any(nil)).
		Return(countRows, nil).Times(3)

	rec := httptest.NewRecorder()
	h.TableCounts(rec, newRequest("POST", "/api/database/table-counts", map[string]any{
		"connection": validConnection,
		"schema":     "public",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, float64(3), body["qrtz_job_details"])
	assert.Equal(t, float64(3), body["qrtz_triggers"])
	assert.Equal(t, float64(3), body["qrtz_fired_triggers"])
}
