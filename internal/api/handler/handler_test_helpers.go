package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"

	"github.com/quartzboard/quartzboard/internal/db"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// decodeBody parses a JSON response body into a map.
func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// mockQuerier implements core.Querier for handler tests.
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

// validConnection is the descriptor payload reused across handler tests.
var validConnection = map[string]any{
	"host":         "db.example.test",
	"port":         5432,
	"database":     "quartz",
	"username":     "admin",
	"password":     "secret",
	"databaseType": "postgresql",
}

func testDescriptor() db.Descriptor {
	return db.Descriptor{
		Host:     "db.example.test",
		Port:     5432,
		Database: "quartz",
		Username: "admin",
		Password: "secret",
		Dialect:  db.DialectPostgres,
	}
}
