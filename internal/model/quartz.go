package model

// JobDetail is one row of the job-details table. JobData payloads are
// vendor-serialized binary blobs and are never decoded; the field is always
// an empty map on the wire.
type JobDetail struct {
	SchedName        string         `json:"schedName"`
	JobName          string         `json:"jobName"`
	JobGroup         string         `json:"jobGroup"`
	Description      string         `json:"description,omitempty"`
	JobClassName     string         `json:"jobClassName"`
	IsDurable        bool           `json:"isDurable"`
	IsNonconcurrent  bool           `json:"isNonconcurrent"`
	IsUpdateData     bool           `json:"isUpdateData"`
	RequestsRecovery bool           `json:"requestsRecovery"`
	JobData          map[string]any `json:"jobData"`
}

// TriggerInfo joins the trigger table with the cron-trigger subtype.
// Non-cron triggers carry empty cron fields.
type TriggerInfo struct {
	SchedName    string `json:"schedName"`
	TriggerName  string `json:"triggerName"`
	TriggerGroup string `json:"triggerGroup"`
	JobName      string `json:"jobName"`
	JobGroup     string `json:"jobGroup"`
	Description  string `json:"description,omitempty"`
	NextFireTime *int64 `json:"nextFireTime,omitempty"`
	PrevFireTime *int64 `json:"prevFireTime,omitempty"`
	Priority     int    `json:"priority"`
	TriggerState string `json:"triggerState"`
	TriggerType  string `json:"triggerType"`
	StartTime    int64  `json:"startTime"`
	EndTime      *int64 `json:"endTime,omitempty"`
	CalendarName string `json:"calendarName,omitempty"`
	MisfireInstr int    `json:"misfireInstr"`

	CronExpression string `json:"cronExpression,omitempty"`
	TimeZoneID     string `json:"timeZoneId,omitempty"`
}

// ExecutingJob is one row of the fired-triggers table: a currently running
// fire instance.
type ExecutingJob struct {
	SchedName        string `json:"schedName"`
	EntryID          string `json:"entryId"`
	TriggerName      string `json:"triggerName"`
	TriggerGroup     string `json:"triggerGroup"`
	InstanceName     string `json:"instanceName"`
	FiredTime        int64  `json:"firedTime"`
	SchedTime        int64  `json:"schedTime"`
	Priority         int    `json:"priority"`
	State            string `json:"state"`
	JobName          string `json:"jobName"`
	JobGroup         string `json:"jobGroup"`
	IsNonconcurrent  bool   `json:"isNonconcurrent"`
	RequestsRecovery bool   `json:"requestsRecovery"`
}

// SchedulerInfo is one row of the scheduler-state table: a live scheduler
// instance or cluster member.
type SchedulerInfo struct {
	SchedName       string `json:"schedName"`
	InstanceName    string `json:"instanceName"`
	LastCheckinTime int64  `json:"lastCheckinTime"`
	CheckinInterval int64  `json:"checkinInterval"`
}

// SchedulerStatistics aggregates the five summary counts.
type SchedulerStatistics struct {
	TotalJobs          int `json:"totalJobs"`
	TotalTriggers      int `json:"totalTriggers"`
	ExecutingJobs      int `json:"executingJobs"`
	PausedTriggers     int `json:"pausedTriggers"`
	SchedulerInstances int `json:"schedulerInstances"`
}

// SchemaInfo reports whether a schema contains Quartz tables. Recomputed on
// every discovery call, never cached.
type SchemaInfo struct {
	SchemaName      string   `json:"schemaName"`
	HasQuartzTables bool     `json:"hasQuartzTables"`
	QuartzTables    []string `json:"quartzTables"`
}

// QuartzValidationResult compares detected tables against the required set.
type QuartzValidationResult struct {
	Valid          bool     `json:"valid"`
	MissingTables  []string `json:"missingTables"`
	ExistingTables []string `json:"existingTables"`
}

// QuartzTable is one entry of the table listing with a best-effort row count.
type QuartzTable struct {
	Name        string `json:"name"`
	RowCount    int64  `json:"rowCount"`
	Description string `json:"description"`
}

// ColumnInfo is one column of a table's catalog metadata.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Default  string `json:"default,omitempty"`
}

// TablePage is one page of a generic table browse.
type TablePage struct {
	Data     []map[string]any `json:"data"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// CronValidation is the result of validating a cron expression.
type CronValidation struct {
	Valid    bool   `json:"valid"`
	Readable string `json:"readable,omitempty"`
	Error    string `json:"error,omitempty"`
}
