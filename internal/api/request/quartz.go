package request

import (
	"github.com/quartzboard/quartzboard/internal/db"
)

// Connection wraps the descriptor every operation (except cron validation)
// requires.
type Connection struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
}

type SchemaScoped struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
	Schema     string        `json:"schema" validate:"required"`
}

type ListJobs struct {
	Connection  db.Descriptor `json:"connection" validate:"required"`
	FilterGroup string        `json:"filterGroup"`
}

type JobKey struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
	JobName    string        `json:"jobName" validate:"required"`
	JobGroup   string        `json:"jobGroup" validate:"required"`
}

// ListTriggers filters to one job only when both key halves are present.
type ListTriggers struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
	JobName    string        `json:"jobName"`
	JobGroup   string        `json:"jobGroup"`
}

type TriggerKey struct {
	Connection   db.Descriptor `json:"connection" validate:"required"`
	TriggerName  string        `json:"triggerName" validate:"required"`
	TriggerGroup string        `json:"triggerGroup" validate:"required"`
}

type UpdateTriggerCron struct {
	Connection     db.Descriptor `json:"connection" validate:"required"`
	TriggerName    string        `json:"triggerName" validate:"required"`
	TriggerGroup   string        `json:"triggerGroup" validate:"required"`
	CronExpression string        `json:"cronExpression" validate:"required"`
}

type ValidateCron struct {
	CronExpression string `json:"cronExpression" validate:"required"`
}

type TableData struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
	TableName  string        `json:"tableName" validate:"required"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
}

type TableSchema struct {
	Connection db.Descriptor `json:"connection" validate:"required"`
	TableName  string        `json:"tableName" validate:"required"`
}
