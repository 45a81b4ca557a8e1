package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebindQuestion(t *testing.T) {
	query, args, err := rebindQuestion(
		"SELECT * FROM qrtz_job_details WHERE job_name = $1 AND job_group = $2",
		[]any{"job1", "grp"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM qrtz_job_details WHERE job_name = ? AND job_group = ?", query)
	assert.Equal(t, []any{"job1", "grp"}, args)
}

func TestRebindQuestion_RepeatedOrdinal(t *testing.T) {
	query, args, err := rebindQuestion(
		"SELECT * FROM t WHERE a = $1 OR b = $1 OR c = $2",
		[]any{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = ? OR b = ? OR c = ?", query)
	// The repeated ordinal duplicates its argument in occurrence order.
	assert.Equal(t, []any{"x", "x", "y"}, args)
}

func TestRebindQuestion_OutOfOrderOrdinals(t *testing.T) {
	query, args, err := rebindQuestion(
		"UPDATE t SET a = $2 WHERE b = $1",
		[]any{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET a = ? WHERE b = ?", query)
	assert.Equal(t, []any{"two", "one"}, args)
}

func TestRebindQuestion_LeavesLiteralsAlone(t *testing.T) {
	query, args, err := rebindQuestion(
		"SELECT COUNT(*) AS count FROM qrtz_triggers WHERE trigger_state = 'PAUSED' AND trigger_group = $1",
		[]any{"grp"})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*) AS count FROM qrtz_triggers WHERE trigger_state = 'PAUSED' AND trigger_group = ?",
		query)
	assert.Equal(t, []any{"grp"}, args)
}

func TestRebindQuestion_NoPlaceholders(t *testing.T) {
	query, args, err := rebindQuestion("SELECT COUNT(*) AS count FROM qrtz_locks", nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) AS count FROM qrtz_locks", query)
	assert.Empty(t, args)
}

func TestRebindQuestion_MissingArgument(t *testing.T) {
	_, _, err := rebindQuestion("SELECT * FROM t WHERE a = $1 AND b = $2", []any{"only-one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$2")
}

func TestRebindAt(t *testing.T) {
	query, args, err := rebindAt(
		"SELECT * FROM qrtz_triggers WHERE trigger_name = $1 AND trigger_group = $2",
		[]any{"nightly", "grp"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM qrtz_triggers WHERE trigger_name = @p1 AND trigger_group = @p2", query)
	// Named markers bind positionally; the argument list passes through.
	assert.Equal(t, []any{"nightly", "grp"}, args)
}

func TestRebindAt_RepeatedOrdinal(t *testing.T) {
	query, args, err := rebindAt(
		"SELECT * FROM t WHERE a = $1 OR b = $1",
		[]any{"x"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = @p1 OR b = @p1", query)
	assert.Equal(t, []any{"x"}, args)
}

func TestRebindAt_MissingArgument(t *testing.T) {
	_, _, err := rebindAt("SELECT * FROM t WHERE a = $3", []any{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$3")
}
