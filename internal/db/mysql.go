package db

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// mysqlAdapter talks to MySQL/MariaDB. Ordinal placeholders are rewritten to
// the driver's ? markers, with arguments expanded in occurrence order.
type mysqlAdapter struct{}

func (a *mysqlAdapter) Open(ctx context.Context, desc Descriptor) (*sqlx.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = desc.Username
	cfg.Passwd = desc.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", desc.Host, desc.Port)
	cfg.DBName = desc.Database
	cfg.Timeout = connectTimeout
	return openPool(ctx, "mysql", cfg.FormatDSN(), desc)
}

func (a *mysqlAdapter) Query(ctx context.Context, pool *sqlx.DB, query string, args ...any) ([]map[string]any, error) {
	rebound, reboundArgs, err := rebindQuestion(query, args)
	if err != nil {
		return nil, err
	}
	return queryMaps(ctx, pool, rebound, reboundArgs)
}

func (a *mysqlAdapter) Exec(ctx context.Context, pool *sqlx.DB, query string, args ...any) (int64, error) {
	rebound, reboundArgs, err := rebindQuestion(query, args)
	if err != nil {
		return 0, err
	}
	return execRowsAffected(ctx, pool, rebound, reboundArgs)
}

func (a *mysqlAdapter) Test(ctx context.Context, desc Descriptor) TestResult {
	return testWithPool(ctx, a, desc)
}

func (a *mysqlAdapter) VersionQuery() string {
	return "SELECT VERSION() AS version"
}

func (a *mysqlAdapter) SchemaListQuery() string {
	return `SELECT SCHEMA_NAME AS schema_name
		FROM INFORMATION_SCHEMA.SCHEMATA
		WHERE SCHEMA_NAME NOT IN ('information_schema', 'mysql', 'performance_schema', 'sys')
		ORDER BY SCHEMA_NAME`
}

func (a *mysqlAdapter) TablesInSchemaQuery() string {
	return `SELECT TABLE_NAME AS table_name
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`
}

func (a *mysqlAdapter) ColumnsQuery() string {
	return `SELECT COLUMN_NAME AS column_name, DATA_TYPE AS data_type,
			IS_NULLABLE AS is_nullable, COLUMN_DEFAULT AS column_default
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = $1 AND TABLE_NAME = $2
		ORDER BY ORDINAL_POSITION`
}

func (a *mysqlAdapter) ApplyLimit(query string, limit int) string {
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}

func (a *mysqlAdapter) ApplyPage(query string, limit, offset int) string {
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", query, limit, offset)
}
