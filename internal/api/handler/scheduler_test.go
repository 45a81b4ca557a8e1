package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quartzboard/quartzboard/internal/core"
)

func TestScheduler_Info(t *testing.T) {
	q := newMockQuerier()
	h := NewScheduler(core.NewQuartzService(q))

	rows := []map[string]any{{
		"sched_name":        "TestScheduler",
		"instance_name":     "node-1",
		"last_checkin_time": int64(1756600000000),
		"checkin_interval":  int64(7500),
	}}
	q.On("Query", mock.Anything, testDescriptor(), queryContains("FROM qrtz_scheduler_state"), []any(nil)).
		Return(rows, nil).Once()

	rec := httptest.NewRecorder()
	h.Info(rec, newRequest("POST", "/api/scheduler/info", map[string]any{"connection": validConnection}))

	assert.Equal(t, http.StatusOK, rec.Code)
	info, ok := decodeBody(rec)["schedulerInfo"].([]any)
	require.True(t, ok)
	require.Len(t, info, 1)
	assert.Equal(t, "node-1", info[0].(map[string]any)["instanceName"])
}

func TestScheduler_Statistics(t *testing.T) {
	q := newMockQuerier()
	h := NewScheduler(core.NewQuartzService(q))

	countRows := []map[string]any{{"count": int64(4)}}
	q.On("Query", mock.Anything, testDescriptor(), mock.AnythingOfType("string"), []any(nil)).
		Return(countRows, nil).Times(5)

	rec := httptest.NewRecorder()
	h.Statistics(rec, newRequest("POST", "/api/scheduler/statistics", map[string]any{"connection": validConnection}))

	assert.Equal(t, http.StatusOK, rec.Code)
	stats, ok := decodeBody(rec)["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), stats["totalJobs"])
	assert.Equal(t, float64(4), stats["totalTriggers"])
}

func TestScheduler_Statistics_QueryFailure(t *testing.T) {
	q := newMockQuerier()
	h := NewScheduler(core.NewQuartzService(q))

	q.On("Query", mock.Anything, testDescriptor(), mock.AnythingOfType("string"), []any(nil)).
		Return(nil, errors.New("relation does not exist"))

	rec := httptest.NewRecorder()
	h.Statistics(rec, newRequest("POST", "/api/scheduler/statistics", map[string]any{"connection": validConnection}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeErrorResponse(rec)["error"])
}
