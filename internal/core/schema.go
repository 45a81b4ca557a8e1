package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/quartzboard/quartzboard/internal/db"
	"github.com/quartzboard/quartzboard/internal/model"
)

// requiredQuartzTables is the fixed eleven-table set a Quartz persistent job
// store needs.
var requiredQuartzTables = []string{
	"qrtz_job_details",
	"qrtz_triggers",
	"qrtz_simple_triggers",
	"qrtz_cron_triggers",
	"qrtz_simprop_triggers",
	"qrtz_blob_triggers",
	"qrtz_fired_triggers",
	"qrtz_calendars",
	"qrtz_paused_trigger_grps",
	"qrtz_scheduler_state",
	"qrtz_locks",
}

// countedTables is the high-traffic subset reported by TableCounts.
var countedTables = []string{"qrtz_job_details", "qrtz_triggers", "qrtz_fired_triggers"}

// SchemaService discovers schemas and validates the Quartz table set.
type SchemaService struct {
	q Querier
}

func NewSchemaService(q Querier) *SchemaService {
	return &SchemaService{q: q}
}

// ListSchemas returns the non-system schemas of the target database in
// ascending order.
func (s *SchemaService) ListSchemas(ctx context.Context, desc db.Descriptor) ([]string, error) {
	adapter, err := s.q.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, desc, adapter.SchemaListQuery())
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}

	schemas := make([]string, 0, len(rows))
	for _, row := range rows {
		schemas = append(schemas, asText(row["schema_name"]))
	}
	return schemas, nil
}

// DetectQuartzTables lists the qrtz_-prefixed base tables of the schema,
// ascending.
func (s *SchemaService) DetectQuartzTables(ctx context.Context, desc db.Descriptor, schemaName string) ([]string, error) {
	if schemaName == "" {
		return nil, &ValidationError{Message: "schema name is required"}
	}

	adapter, err := s.q.AdapterFor(desc.Dialect)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.Query(ctx, desc, adapter.TablesInSchemaQuery(), schemaName)
	if err != nil {
		return nil, fmt.Errorf("list tables in schema %s: %w", schemaName, err)
	}

	var tables []string
	for _, row := range rows {
		name := asText(row["table_name"])
		if strings.HasPrefix(strings.ToLower(name), "qrtz_") {
			tables = append(tables, name)
		}
	}
	sort.Strings(tables)
	return tables, nil
}

// SchemasWithQuartzInfo runs table detection for every schema. One catalog
// round trip per schema; acceptable for an interactive discovery call.
func (s *SchemaService) SchemasWithQuartzInfo(ctx context.Context, desc db.Descriptor) ([]model.SchemaInfo, error) {
	schemas, err := s.ListSchemas(ctx, desc)
	if err != nil {
		return nil, err
	}

	infos := make([]model.SchemaInfo, 0, len(schemas))
	for _, schema := range schemas {
		tables, err := s.DetectQuartzTables(ctx, desc, schema)
		if err != nil {
			return nil, err
		}
		if tables == nil {
			tables = []string{}
		}
		infos = append(infos, model.SchemaInfo{
			SchemaName:      schema,
			HasQuartzTables: len(tables) > 0,
			QuartzTables:    tables,
		})
	}
	return infos, nil
}

// ValidateQuartzTables compares detected tables against the required set,
// case-insensitively.
func (s *SchemaService) ValidateQuartzTables(ctx context.Context, desc db.Descriptor, schemaName string) (model.QuartzValidationResult, error) {
	existing, err := s.DetectQuartzTables(ctx, desc, schemaName)
	if err != nil {
		return model.QuartzValidationResult{}, err
	}

	existingSet := map[string]bool{}
	for _, t := range existing {
		existingSet[strings.ToLower(t)] = true
	}

	missing := []string{}
	for _, required := range requiredQuartzTables {
		if !existingSet[required] {
			missing = append(missing, required)
		}
	}
	if existing == nil {
		existing = []string{}
	}

	return model.QuartzValidationResult{
		Valid:          len(missing) == 0,
		MissingTables:  missing,
		ExistingTables: existing,
	}, nil
}

// TableCounts reports row counts for the high-traffic tables. A failing count
// yields 0 for that table instead of aborting the call.
func (s *SchemaService) TableCounts(ctx context.Context, desc db.Descriptor, schemaName string) (map[string]int64, error) {
	if schemaName == "" {
		return nil, &ValidationError{Message: "schema name is required"}
	}

	counts := map[string]int64{}
	for _, table := range countedTables {
		rows, err := s.q.Query(ctx, desc, fmt.Sprintf("SELECT COUNT(*) AS count FROM %s.%s", schemaName, table))
		if err != nil {
			counts[table] = 0
			continue
		}
		counts[table] = countValue(rows)
	}
	return counts, nil
}
