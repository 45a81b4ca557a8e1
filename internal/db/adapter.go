package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	maxOpenConns   = 10
	connIdleTime   = 30 * time.Second
	connectTimeout = 5 * time.Second
)

// Adapter translates logical database operations into vendor-specific driver
// calls and SQL fragments. One adapter exists per dialect; all of them pool
// through database/sql with the same bounds.
type Adapter interface {
	// Open creates a connected pool for the descriptor. Network or auth
	// failures surface as *ConnectionError.
	Open(ctx context.Context, desc Descriptor) (*sqlx.DB, error)

	// Query runs a parameterized statement written with $1..$n ordinals and
	// returns the rows as column-name → value maps.
	Query(ctx context.Context, pool *sqlx.DB, query string, args ...any) ([]map[string]any, error)

	// Exec runs a mutating statement and returns the number of affected rows.
	Exec(ctx context.Context, pool *sqlx.DB, query string, args ...any) (int64, error)

	// Test opens a short-lived connection, runs the dialect's version query,
	// and closes the connection before returning. It never returns an error;
	// failures are reported in the result envelope.
	Test(ctx context.Context, desc Descriptor) TestResult

	// VersionQuery returns the statement whose first row carries a "version"
	// column.
	VersionQuery() string

	// SchemaListQuery lists non-system schemas as a "schema_name" column,
	// ascending.
	SchemaListQuery() string

	// TablesInSchemaQuery lists base tables of the schema bound to $1 as a
	// "table_name" column, ascending.
	TablesInSchemaQuery() string

	// ColumnsQuery lists column metadata for the table bound to ($1 schema,
	// $2 table), ordered by ordinal position.
	ColumnsQuery() string

	// ApplyLimit composes a row-limiting clause into the statement at the
	// position the dialect requires. It rounds out the pagination surface
	// for callers that cap a result set without paging; current query
	// builders all page and go through ApplyPage.
	ApplyLimit(query string, limit int) string

	// ApplyPage composes limit+offset pagination into the statement.
	ApplyPage(query string, limit, offset int) string
}

// openPool dials a bounded pool and verifies connectivity within the connect
// timeout.
func openPool(ctx context.Context, driverName, dsn string, desc Descriptor) (*sqlx.DB, error) {
	pool, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, &ConnectionError{Endpoint: desc.Endpoint(), Err: err}
	}

	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetConnMaxIdleTime(connIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		pool.Close()
		return nil, &ConnectionError{Endpoint: desc.Endpoint(), Err: err}
	}

	return pool, nil
}

// queryMaps executes a statement and scans every row into a
// column-name → value map.
func queryMaps(ctx context.Context, pool *sqlx.DB, query string, args []any) ([]map[string]any, error) {
	rows, err := pool.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// execRowsAffected executes a mutating statement and reports affected rows.
func execRowsAffected(ctx context.Context, pool *sqlx.DB, query string, args []any) (int64, error) {
	res, err := pool.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// testWithPool is the shared body of Adapter.Test: ping, run the version
// query, and always close the throwaway pool.
func testWithPool(ctx context.Context, adapter Adapter, desc Descriptor) TestResult {
	pool, err := adapter.Open(ctx, desc)
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("Connection failed: %v", err)}
	}
	defer pool.Close()

	rows, err := adapter.Query(ctx, pool, adapter.VersionQuery())
	if err != nil {
		return TestResult{Success: false, Message: fmt.Sprintf("Connection failed: %v", err)}
	}

	version := "Unknown"
	if len(rows) > 0 {
		if v, ok := rows[0]["version"]; ok && v != nil {
			version = fmt.Sprintf("%v", toText(v))
		}
	}

	return TestResult{Success: true, Message: "Connection successful", ServerVersion: version}
}

// toText normalizes driver byte-slice values to strings.
func toText(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
