package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/quartzboard/quartzboard/internal/db"
	"github.com/quartzboard/quartzboard/internal/model"
)

// tableDescriptions maps the well-known Quartz tables to a static
// human-readable description.
var tableDescriptions = map[string]string{
	"qrtz_job_details":         "Job definitions and configurations",
	"qrtz_triggers":            "Trigger configurations and schedules",
	"qrtz_simple_triggers":     "Simple trigger details",
	"qrtz_cron_triggers":       "Cron expression triggers",
	"qrtz_simprop_triggers":    "Simple property triggers",
	"qrtz_blob_triggers":       "Binary large object triggers",
	"qrtz_fired_triggers":      "Currently executing jobs",
	"qrtz_calendars":           "Calendar definitions",
	"qrtz_paused_trigger_grps": "Paused trigger groups",
	"qrtz_scheduler_state":     "Scheduler instance states",
	"qrtz_locks":               "Scheduler locks",
}

const genericTableDescription = "Quartz table"

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// GetQuartzTables lists every qrtz_ table in the effective schema with a
// description and a best-effort row count. A failing count yields 0 and the
// table stays in the listing.
func (s *QuartzService) GetQuartzTables(ctx context.Context, desc db.Descriptor) ([]model.QuartzTable, error) {
	adapter, err := s.q.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}
	prefix := schemaPrefix(desc)

	rows, err := s.q.Query(ctx, desc, adapter.TablesInSchemaQuery(), effectiveSchema(desc))
	if err != nil {
		return nil, fmt.Errorf("list quartz tables: %w", err)
	}

	tables := make([]model.QuartzTable, 0, len(rows))
	for _, row := range rows {
		name := asText(row["table_name"])
		if !strings.HasPrefix(strings.ToLower(name), "qrtz_") {
			continue
		}

		description, ok := tableDescriptions[strings.ToLower(name)]
		if !ok {
			description = genericTableDescription
		}

		var count int64
		countRows, err := s.q.Query(ctx, desc, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s%s", prefix, name))
		if err == nil {
			count = countValue(countRows)
		}

		tables = append(tables, model.QuartzTable{
			Name:        name,
			RowCount:    count,
			Description: description,
		})
	}
	return tables, nil
}

// GetTableData is the generic paginated browser. The qrtz_ prefix check is a
// security boundary: it is the one place raw table names flow toward SQL
// construction, and it runs before any database round trip.
func (s *QuartzService) GetTableData(ctx context.Context, desc db.Descriptor, tableName string, page, pageSize int) (model.TablePage, error) {
	if err := validateQuartzTableName(tableName); err != nil {
		return model.TablePage{}, err
	}
	adapter, err := s.q.AdapterFor(desc.Dialect)
	if err != nil {
		return model.TablePage{}, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize
	prefix := schemaPrefix(desc)

	countRows, err := s.q.Query(ctx, desc, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s%s", prefix, tableName))
	if err != nil {
		return model.TablePage{}, fmt.Errorf("count rows of %s: %w", tableName, err)
	}
	total := countValue(countRows)

	dataQuery := adapter.ApplyPage(fmt.Sprintf("SELECT * FROM %s%s", prefix, tableName), pageSize, offset)
	rows, err := s.q.Query(ctx, desc, dataQuery)
	if err != nil {
		return model.TablePage{}, fmt.Errorf("read page of %s: %w", tableName, err)
	}

	data := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		data = append(data, normalizeRow(row))
	}

	return model.TablePage{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetTableSchema reads the column metadata of a qrtz_ table from the catalog,
// ordered by physical column position.
func (s *QuartzService) GetTableSchema(ctx context.Context, desc db.Descriptor, tableName string) ([]model.ColumnInfo, error) {
	if err := validateQuartzTableName(tableName); err != nil {
		return nil, err
	}
	adapter, err := s.q.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, desc, adapter.ColumnsQuery(), effectiveSchema(desc), tableName)
	if err != nil {
		return nil, fmt.Errorf("read schema of %s: %w", tableName, err)
	}

	columns := make([]model.ColumnInfo, 0, len(rows))
	for _, row := range rows {
		columns = append(columns, model.ColumnInfo{
			Name:     asText(row["column_name"]),
			Type:     asText(row["data_type"]),
			Nullable: strings.EqualFold(asText(row["is_nullable"]), "YES"),
			Default:  asText(row["column_default"]),
		})
	}
	return columns, nil
}

func validateQuartzTableName(tableName string) error {
	if tableName == "" {
		return &ValidationError{Message: "Table name is required"}
	}
	if !strings.HasPrefix(strings.ToLower(tableName), "qrtz_") {
		return &ValidationError{Message: "Invalid table name. Only Quartz tables (qrtz_*) are allowed."}
	}
	return nil
}

// normalizeRow rewrites driver byte-slice values to strings so browsed rows
// serialize as text instead of base64.
func normalizeRow(row map[string]any) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		if b, ok := v.([]byte); ok {
			out[k] = string(b)
			continue
		}
		out[k] = v
	}
	return out
}
