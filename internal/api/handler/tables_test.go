package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quartzboard/quartzboard/internal/core"
)

func TestTables_Data(t *testing.T) {
	q := newMockQuerier()
	h := NewTables(core.NewQuartzService(q))

	q.On("Query", mock.Anything, testDescriptor(), queryContains("COUNT(*)"), []any(nil)).
		Return([]map[string]any{{"count": int64(2)}}, nil).Once()
	q.On("Query", mock.Anything, testDescriptor(), queryContains("SELECT * FROM qrtz_locks"), []any(nil)).
		Return([]map[string]any{
			{"sched_name": "TestScheduler", "lock_name": []byte("TRIGGER_ACCESS")},
			{"sched_name": "TestScheduler", "lock_name": []byte("STATE_ACCESS")},
		}, nil).Once()

	rec := httptest.NewRecorder()
	h.Data(rec, newRequest("POST", "/api/database-view/table-data", map[string]any{
		"connection": validConnection,
		"tableName":  "qrtz_locks",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(50), body["pageSize"])
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, "TRIGGER_ACCESS", data[0].(map[string]any)["lock_name"])
}

func TestTables_Data_RejectsNonQuartzTable(t *testing.T) {
	q := newMockQuerier()
	h := NewTables(core.NewQuartzService(q))

	rec := httptest.NewRecorder()
	h.Data(rec, newRequest("POST", "/api/database-view/table-data", map[string]any{
		"connection": validConnection,
		"tableName":  "users",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Equal(t, "Validation Error", body["error"])
	assert.Contains(t, body["message"], "qrtz_")
	q.AssertNotCalled(t, "Query", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTables_Schema(t *testing.T) {
	q := newMockQuerier()
	h := NewTables(core.NewQuartzService(q))

	rows := []map[string]any{
		{"column_name": "sched_name", "data_type": "character varying", "is_nullable": "NO"},
	}
	q.On("Query", mock.Anything, testDescriptor(), queryContains("column_name"), []any{"public", "qrtz_locks"}).
		Return(rows, nil).Once()

	rec := httptest.NewRecorder()
	h.Schema(rec, newRequest("POST", "/api/database-view/table-schema", map[string]any{
		"connection": validConnection,
		"tableName":  "qrtz_locks",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	columns, ok := decodeBody(rec)["columns"].([]any)
	require.True(t, ok)
	require.Len(t, columns, 1)
	column := columns[0].(map[string]any)
	assert.Equal(t, "sched_name", column["name"])
	assert.Equal(t, false, column["nullable"])
}

func TestTables_List(t *testing.T) {
	q := newMockQuerier()
	h := NewTables(core.NewQuartzService(q))

	q.On("Query", mock.Anything, testDescriptor(), queryContains("table_name"), []any{"public"}).
		Return([]map[string]any{{"table_name": "qrtz_locks"}}, nil).Once()
	q.On("Query", mock.Anything, testDescriptor(), queryContains("FROM qrtz_locks"), []any(nil)).
		Return([]map[string]any{{"count": int64(2)}}, nil).Once()

	rec := httptest.NewRecorder()
	h.List(rec, newRequest("POST", "/api/database-view/tables", map[string]any{"connection": validConnection}))

	assert.Equal(t, http.StatusOK, rec.Code)
	tables, ok := decodeBody(rec)["tables"].([]any)
	require.True(t, ok)
	require.Len(t, tables, 1)
	table := tables[0].(map[string]any)
	assert.Equal(t, "qrtz_locks", table["name"])
	assert.Equal(t, float64(2), table["rowCount"])
	assert.Equal(t, "Scheduler locks", table["description"])
}
