package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresAdapter_ApplyLimit(t *testing.T) {
	a := &postgresAdapter{}
	assert.Equal(t, "SELECT * FROM qrtz_triggers LIMIT 10",
		a.ApplyLimit("SELECT * FROM qrtz_triggers", 10))
}

func TestPostgresAdapter_ApplyPage(t *testing.T) {
	a := &postgresAdapter{}
	assert.Equal(t, "SELECT * FROM qrtz_triggers LIMIT 50 OFFSET 100",
		a.ApplyPage("SELECT * FROM qrtz_triggers", 50, 100))
}

func TestMySQLAdapter_ApplyPage(t *testing.T) {
	a := &mysqlAdapter{}
	assert.Equal(t, "SELECT * FROM qrtz_triggers LIMIT 25 OFFSET 0",
		a.ApplyPage("SELECT * FROM qrtz_triggers", 25, 0))
}

func TestMSSQLAdapter_ApplyLimit_TopAfterSelect(t *testing.T) {
	a := &mssqlAdapter{}
	assert.Equal(t, "SELECT TOP 10 * FROM qrtz_triggers",
		a.ApplyLimit("SELECT * FROM qrtz_triggers", 10))
}

func TestMSSQLAdapter_ApplyLimit_CaseInsensitiveSelect(t *testing.T) {
	a := &mssqlAdapter{}
	assert.Equal(t, "SELECT TOP 5 * FROM qrtz_locks",
		a.ApplyLimit("select * FROM qrtz_locks", 5))
}

func TestMSSQLAdapter_ApplyLimit_NonSelectUnchanged(t *testing.T) {
	a := &mssqlAdapter{}
	assert.Equal(t, "DELETE FROM qrtz_locks",
		a.ApplyLimit("DELETE FROM qrtz_locks", 5))
}

func TestMSSQLAdapter_ApplyPage_AddsStableOrdering(t *testing.T) {
	a := &mssqlAdapter{}
	assert.Equal(t,
		"SELECT * FROM qrtz_triggers ORDER BY (SELECT NULL) OFFSET 100 ROWS FETCH NEXT 50 ROWS ONLY",
		a.ApplyPage("SELECT * FROM qrtz_triggers", 50, 100))
}

func TestMSSQLAdapter_ApplyPage_KeepsExistingOrdering(t *testing.T) {
	a := &mssqlAdapter{}
	assert.Equal(t,
		"SELECT * FROM qrtz_triggers ORDER BY trigger_name OFFSET 0 ROWS FETCH NEXT 50 ROWS ONLY",
		a.ApplyPage("SELECT * FROM qrtz_triggers ORDER BY trigger_name", 50, 0))
}

func TestAdapterVersionQueries(t *testing.T) {
	assert.Contains(t, (&postgresAdapter{}).VersionQuery(), "version()")
	assert.Contains(t, (&mysqlAdapter{}).VersionQuery(), "VERSION()")
	assert.Contains(t, (&mssqlAdapter{}).VersionQuery(), "@@VERSION")
}
