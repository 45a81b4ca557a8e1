package core

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/quartzboard/quartzboard/internal/db"
)

// Querier is the slice of the pool manager the domain services depend on.
type Querier interface {
	Query(ctx context.Context, desc db.Descriptor, query string, args ...any) ([]map[string]any, error)
	Exec(ctx context.Context, desc db.Descriptor, query string, args ...any) (int64, error)
	AdapterFor(dialect db.Dialect) (db.Adapter, error)
	TestConnection(ctx context.Context, desc db.Descriptor) db.TestResult
}

// schemaPrefix renders the table qualifier for a descriptor.
func schemaPrefix(desc db.Descriptor) string {
	if desc.Schema == "" {
		return ""
	}
	return desc.Schema + "."
}

// effectiveSchema resolves the schema used for catalog lookups when the
// descriptor leaves it unset. MySQL schemas are databases; the others have a
// well-known default.
func effectiveSchema(desc db.Descriptor) string {
	if desc.Schema != "" {
		return desc.Schema
	}
	switch desc.Dialect {
	case db.DialectPostgres:
		return "public"
	case db.DialectSQLServer:
		return "dbo"
	default:
		return desc.Database
	}
}

// Drivers disagree on the Go types they hand back for the same column: text
// arrives as string or []byte, numerics as int64, float64, or textual digits.
// The coercions below normalize row values before they reach the models.

func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(strconvAny(t))
	}
}

func strconvAny(v any) string {
	switch t := v.(type) {
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case int64:
		return t
	case int32:
		return int64(t)
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		n, _ := strconv.ParseInt(string(t), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}

func asInt64Ptr(v any) *int64 {
	if v == nil {
		return nil
	}
	n := asInt64(v)
	return &n
}

func asInt(v any) int {
	return int(asInt64(v))
}

func asBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case int64:
		return t != 0
	case int32:
		return t != 0
	case int:
		return t != 0
	case []byte:
		return parseBoolText(string(t))
	case string:
		return parseBoolText(t)
	default:
		return false
	}
}

// parseBoolText covers the flag spellings the three backends use for the
// Quartz boolean columns ('t'/'f', '1'/'0', 'true'/'false', 'Y'/'N').
func parseBoolText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes":
		return true
	default:
		return false
	}
}

// countValue extracts the single COUNT(*) column from a one-row result.
func countValue(rows []map[string]any) int64 {
	if len(rows) == 0 {
		return 0
	}
	return asInt64(rows[0]["count"])
}
