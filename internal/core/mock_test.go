package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/quartzboard/quartzboard/internal/db"
)

// ---------- Mock Querier ----------

// mockQuerier implements the Querier interface for testing. AdapterFor
// delegates to a real manager because the adapters are stateless.
type mockQuerier struct {
	mock.Mock
	manager *db.Manager
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{manager: db.NewManager(zerolog.Nop())}
}

func (m *mockQuerier) Query(ctx context.Context, desc db.Descriptor, query string, args ...any) ([]map[string]any, error) {
	called := m.Called(ctx, desc, query, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).([]map[string]any), called.Error(1)
}

func (m *mockQuerier) Exec(ctx context.Context, desc db.Descriptor, query string, args ...any) (int64, error) {
	called := m.Called(ctx, desc, query, args)
	return called.Get(0).(int64), called.Error(1)
}

func (m *mockQuerier) AdapterFor(dialect db.Dialect) (db.Adapter, error) {
	return m.manager.AdapterFor(dialect)
}

func (m *mockQuerier) TestConnection(ctx context.Context, desc db.Descriptor) db.TestResult {
	called := m.Called(ctx, desc)
	return called.Get(0).(db.TestResult)
}

// queryContains matches the SQL argument of a Query/Exec expectation by
// substring.
func queryContains(substr string) any {
	return mock.MatchedBy(func(query string) bool {
		return strings.Contains(query, substr)
	})
}

func testDescriptor() db.Descriptor {
	return db.Descriptor{
		Host:     "db.example.test",
		Port:     5432,
		Database: "quartz",
		Username: "quartz",
		Password: "secret",
		Dialect:  db.DialectPostgres,
	}
}
