package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	_ "github.com/microsoft/go-mssqldb"
)

// mssqlAdapter talks to SQL Server. Ordinal placeholders are rewritten to
// @pN named markers, which the driver binds to the positional argument list.
type mssqlAdapter struct{}

func (a *mssqlAdapter) Open(ctx context.Context, desc Descriptor) (*sqlx.DB, error) {
	query := url.Values{}
	query.Set("database", desc.Database)
	query.Set("connection timeout", "5")
	query.Set("TrustServerCertificate", "true")

	dsn := (&url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(desc.Username, desc.Password),
		Host:     fmt.Sprintf("%s:%d", desc.Host, desc.Port),
		RawQuery: query.Encode(),
	}).String()

	return openPool(ctx, "sqlserver", dsn, desc)
}

func (a *mssqlAdapter) Query(ctx context.Context, pool *sqlx.DB, query string, args ...any) ([]map[string]any, error) {
	rebound, reboundArgs, err := rebindAt(query, args)
	if err != nil {
		return nil, err
	}
	return queryMaps(ctx, pool, rebound, reboundArgs)
}

func (a *mssqlAdapter) Exec(ctx context.Context, pool *sqlx.DB, query string, args ...any) (int64, error) {
	rebound, reboundArgs, err := rebindAt(query, args)
	if err != nil {
		return 0, err
	}
	return execRowsAffected(ctx, pool, rebound, reboundArgs)
}

func (a *mssqlAdapter) Test(ctx context.Context, desc Descriptor) TestResult {
	return testWithPool(ctx, a, desc)
}

func (a *mssqlAdapter) VersionQuery() string {
	return "SELECT @@VERSION AS version"
}

func (a *mssqlAdapter) SchemaListQuery() string {
	return `SELECT SCHEMA_NAME AS schema_name
		FROM INFORMATION_SCHEMA.SCHEMATA
		WHERE SCHEMA_NAME NOT IN ('guest', 'INFORMATION_SCHEMA', 'sys', 'db_owner',
			'db_accessadmin', 'db_securityadmin', 'db_ddladmin', 'db_backupoperator',
			'db_datareader', 'db_datawriter', 'db_denydatareader', 'db_denydatawriter')
		ORDER BY SCHEMA_NAME`
}

func (a *mssqlAdapter) TablesInSchemaQuery() string {
	return `SELECT TABLE_NAME AS table_name
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`
}

func (a *mssqlAdapter) ColumnsQuery() string {
	return `SELECT COLUMN_NAME AS column_name, DATA_TYPE AS data_type,
			IS_NULLABLE AS is_nullable, COLUMN_DEFAULT AS column_default
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = $1 AND TABLE_NAME = $2
		ORDER BY ORDINAL_POSITION`
}

// ApplyLimit places TOP directly after the leading SELECT keyword. SQL Server
// rejects a trailing LIMIT-style clause.
func (a *mssqlAdapter) ApplyLimit(query string, limit int) string {
	trimmed := strings.TrimLeft(query, " \t\r\n")
	if len(trimmed) >= 6 && strings.EqualFold(trimmed[:6], "SELECT") {
		return fmt.Sprintf("SELECT TOP %d%s", limit, trimmed[6:])
	}
	return query
}

// ApplyPage uses OFFSET/FETCH, which requires an ORDER BY; when the statement
// carries none, an arbitrary stable ordering is appended.
func (a *mssqlAdapter) ApplyPage(query string, limit, offset int) string {
	if !strings.Contains(strings.ToUpper(query), "ORDER BY") {
		query += " ORDER BY (SELECT NULL)"
	}
	return fmt.Sprintf("%s OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", query, offset, limit)
}
