package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorKey_ExcludesPassword(t *testing.T) {
	desc := Descriptor{
		Host:     "db.example.test",
		Port:     5432,
		Database: "quartz",
		Username: "admin",
		Password: "first",
		Dialect:  DialectPostgres,
	}
	rotated := desc
	rotated.Password = "second"

	// Credential rotation against the same endpoint keeps hitting the
	// cached pool.
	assert.Equal(t, desc.Key(), rotated.Key())
	assert.NotContains(t, desc.Key(), "first")
}

func TestDescriptorKey_DistinctPerEndpoint(t *testing.T) {
	base := Descriptor{
		Host:     "db.example.test",
		Port:     5432,
		Database: "quartz",
		Username: "admin",
		Dialect:  DialectPostgres,
	}

	otherDB := base
	otherDB.Database = "quartz_staging"
	otherUser := base
	otherUser.Username = "reader"
	otherDialect := base
	otherDialect.Dialect = DialectMySQL
	otherPort := base
	otherPort.Port = 5433

	keys := map[string]bool{
		base.Key():         true,
		otherDB.Key():      true,
		otherUser.Key():    true,
		otherDialect.Key(): true,
		otherPort.Key():    true,
	}
	assert.Len(t, keys, 5)
}

func TestDescriptorEndpoint_OmitsCredentials(t *testing.T) {
	desc := Descriptor{
		Host:     "db.example.test",
		Port:     1433,
		Database: "quartz",
		Username: "sa",
		Password: "hunter2",
		Dialect:  DialectSQLServer,
	}
	assert.Equal(t, "db.example.test:1433/quartz", desc.Endpoint())
	assert.NotContains(t, desc.Endpoint(), "sa")
	assert.NotContains(t, desc.Endpoint(), "hunter2")
}
