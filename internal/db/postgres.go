package db

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// postgresAdapter talks to PostgreSQL through the pgx stdlib driver. The
// ordinal placeholder convention is native, so queries pass through
// untranslated.
type postgresAdapter struct{}

func (a *postgresAdapter) Open(ctx context.Context, desc Descriptor) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		url.QueryEscape(desc.Username), url.QueryEscape(desc.Password),
		desc.Host, desc.Port, url.PathEscape(desc.Database))
	return openPool(ctx, "pgx", dsn, desc)
}

func (a *postgresAdapter) Query(ctx context.Context, pool *sqlx.DB, query string, args ...any) ([]map[string]any, error) {
	return queryMaps(ctx, pool, query, args)
}

func (a *postgresAdapter) Exec(ctx context.Context, pool *sqlx.DB, query string, args ...any) (int64, error) {
	return execRowsAffected(ctx, pool, query, args)
}

func (a *postgresAdapter) Test(ctx context.Context, desc Descriptor) TestResult {
	return testWithPool(ctx, a, desc)
}

func (a *postgresAdapter) VersionQuery() string {
	return "SELECT version() AS version"
}

func (a *postgresAdapter) SchemaListQuery() string {
	return `SELECT schema_name
		FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
		ORDER BY schema_name`
}

func (a *postgresAdapter) TablesInSchemaQuery() string {
	return `SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`
}

func (a *postgresAdapter) ColumnsQuery() string {
	return `SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`
}

func (a *postgresAdapter) ApplyLimit(query string, limit int) string {
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}

func (a *postgresAdapter) ApplyPage(query string, limit, offset int) string {
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", query, limit, offset)
}
