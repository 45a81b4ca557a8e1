package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quartzboard/quartzboard/internal/db"
	"github.com/quartzboard/quartzboard/internal/model"
)

// Trigger states written by the pause/resume operations. These are the
// states the external Quartz scheduler itself uses.
const (
	triggerStatePaused  = "PAUSED"
	triggerStateWaiting = "WAITING"
)

// QuartzService is the query/mutation layer over the Quartz persistence
// tables. Every operation receives a connection descriptor; nothing is
// cached between calls except the underlying pools.
type QuartzService struct {
	q Querier
}

func NewQuartzService(q Querier) *QuartzService {
	return &QuartzService{q: q}
}

const jobColumns = `sched_name, job_name, job_group, description, job_class_name,
		is_durable, is_nonconcurrent, is_update_data, requests_recovery, job_data`

// GetAllJobs returns every job, optionally filtered by exact group match,
// ordered by (group, name).
func (s *QuartzService) GetAllJobs(ctx context.Context, desc db.Descriptor, filterGroup string) ([]model.JobDetail, error) {
	prefix := schemaPrefix(desc)

	query := fmt.Sprintf("SELECT %s FROM %sqrtz_job_details", jobColumns, prefix)
	var args []any
	if filterGroup != "" {
		query += " WHERE job_group = $1"
		args = append(args, filterGroup)
	}
	query += " ORDER BY job_group, job_name"

	rows, err := s.q.Query(ctx, desc, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]model.JobDetail, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, jobFromRow(row))
	}
	return jobs, nil
}

// GetJob looks up a single job by its composite key.
func (s *QuartzService) GetJob(ctx context.Context, desc db.Descriptor, jobName, jobGroup string) (*model.JobDetail, error) {
	if jobName == "" || jobGroup == "" {
		return nil, &ValidationError{Message: "jobName and jobGroup are required"}
	}
	prefix := schemaPrefix(desc)

	query := fmt.Sprintf("SELECT %s FROM %sqrtz_job_details WHERE job_name = $1 AND job_group = $2", jobColumns, prefix)
	rows, err := s.q.Query(ctx, desc, query, jobName, jobGroup)
	if err != nil {
		return nil, fmt.Errorf("get job %s.%s: %w", jobGroup, jobName, err)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Message: fmt.Sprintf("Job %s.%s not found", jobGroup, jobName)}
	}

	job := jobFromRow(rows[0])
	return &job, nil
}

// DeleteJob removes a job and its triggers. Triggers go first because the
// schema holds a foreign key from triggers to jobs. The two deletes are
// separately-committed statements; no rollback is attempted if the second
// fails.
func (s *QuartzService) DeleteJob(ctx context.Context, desc db.Descriptor, jobName, jobGroup string) (bool, error) {
	if jobName == "" || jobGroup == "" {
		return false, &ValidationError{Message: "jobName and jobGroup are required"}
	}
	prefix := schemaPrefix(desc)

	if _, err := s.q.Exec(ctx, desc,
		fmt.Sprintf("DELETE FROM %sqrtz_triggers WHERE job_name = $1 AND job_group = $2", prefix),
		jobName, jobGroup); err != nil {
		return false, fmt.Errorf("delete triggers of job %s.%s: %w", jobGroup, jobName, err)
	}

	affected, err := s.q.Exec(ctx, desc,
		fmt.Sprintf("DELETE FROM %sqrtz_job_details WHERE job_name = $1 AND job_group = $2", prefix),
		jobName, jobGroup)
	if err != nil {
		return false, fmt.Errorf("delete job %s.%s: %w", jobGroup, jobName, err)
	}
	return affected > 0, nil
}

// GetAllTriggers returns every trigger joined with its cron subtype row,
// optionally filtered to one job, ordered by (group, name).
func (s *QuartzService) GetAllTriggers(ctx context.Context, desc db.Descriptor, jobName, jobGroup string) ([]model.TriggerInfo, error) {
	prefix := schemaPrefix(desc)

	query := fmt.Sprintf(`SELECT
			t.sched_name, t.trigger_name, t.trigger_group, t.job_name, t.job_group,
			t.description, t.next_fire_time, t.prev_fire_time, t.priority,
			t.trigger_state, t.trigger_type, t.start_time, t.end_time,
			t.calendar_name, t.misfire_instr, c.cron_expression, c.time_zone_id
		FROM %sqrtz_triggers t
		LEFT JOIN %sqrtz_cron_triggers c
			ON t.sched_name = c.sched_name
			AND t.trigger_name = c.trigger_name
			AND t.trigger_group = c.trigger_group`, prefix, prefix)

	var args []any
	if jobName != "" && jobGroup != "" {
		query += " WHERE t.job_name = $1 AND t.job_group = $2"
		args = append(args, jobName, jobGroup)
	}
	query += " ORDER BY t.trigger_group, t.trigger_name"

	rows, err := s.q.Query(ctx, desc, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}

	triggers := make([]model.TriggerInfo, 0, len(rows))
	for _, row := range rows {
		triggers = append(triggers, model.TriggerInfo{
			SchedName:      asText(row["sched_name"]),
			TriggerName:    asText(row["trigger_name"]),
			TriggerGroup:   asText(row["trigger_group"]),
			JobName:        asText(row["job_name"]),
			JobGroup:       asText(row["job_group"]),
			Description:    asText(row["description"]),
			NextFireTime:   asInt64Ptr(row["next_fire_time"]),
			PrevFireTime:   asInt64Ptr(row["prev_fire_time"]),
			Priority:       asInt(row["priority"]),
			TriggerState:   asText(row["trigger_state"]),
			TriggerType:    asText(row["trigger_type"]),
			StartTime:      asInt64(row["start_time"]),
			EndTime:        asInt64Ptr(row["end_time"]),
			CalendarName:   asText(row["calendar_name"]),
			MisfireInstr:   asInt(row["misfire_instr"]),
			CronExpression: asText(row["cron_expression"]),
			TimeZoneID:     asText(row["time_zone_id"]),
		})
	}
	return triggers, nil
}

// GetExecutingJobs reads the fired-triggers table, most recent fire first.
func (s *QuartzService) GetExecutingJobs(ctx context.Context, desc db.Descriptor) ([]model.ExecutingJob, error) {
	prefix := schemaPrefix(desc)

	query := fmt.Sprintf(`SELECT
			sched_name, entry_id, trigger_name, trigger_group, instance_name,
			fired_time, sched_time, priority, state, job_name, job_group,
			is_nonconcurrent, requests_recovery
		FROM %sqrtz_fired_triggers
		ORDER BY fired_time DESC`, prefix)

	rows, err := s.q.Query(ctx, desc, query)
	if err != nil {
		return nil, fmt.Errorf("list executing jobs: %w", err)
	}

	jobs := make([]model.ExecutingJob, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, model.ExecutingJob{
			SchedName:        asText(row["sched_name"]),
			EntryID:          asText(row["entry_id"]),
			TriggerName:      asText(row["trigger_name"]),
			TriggerGroup:     asText(row["trigger_group"]),
			InstanceName:     asText(row["instance_name"]),
			FiredTime:        asInt64(row["fired_time"]),
			SchedTime:        asInt64(row["sched_time"]),
			Priority:         asInt(row["priority"]),
			State:            asText(row["state"]),
			JobName:          asText(row["job_name"]),
			JobGroup:         asText(row["job_group"]),
			IsNonconcurrent:  asBool(row["is_nonconcurrent"]),
			RequestsRecovery: asBool(row["requests_recovery"]),
		})
	}
	return jobs, nil
}

// GetSchedulerInfo reads the scheduler-state table ordered by instance name.
func (s *QuartzService) GetSchedulerInfo(ctx context.Context, desc db.Descriptor) ([]model.SchedulerInfo, error) {
	prefix := schemaPrefix(desc)

	query := fmt.Sprintf(`SELECT sched_name, instance_name, last_checkin_time, checkin_interval
		FROM %sqrtz_scheduler_state
		ORDER BY instance_name`, prefix)

	rows, err := s.q.Query(ctx, desc, query)
	if err != nil {
		return nil, fmt.Errorf("list scheduler instances: %w", err)
	}

	infos := make([]model.SchedulerInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, model.SchedulerInfo{
			SchedName:       asText(row["sched_name"]),
			InstanceName:    asText(row["instance_name"]),
			LastCheckinTime: asInt64(row["last_checkin_time"]),
			CheckinInterval: asInt64(row["checkin_interval"]),
		})
	}
	return infos, nil
}

// GetStatistics issues its five count queries concurrently and fails the
// whole call if any one fails. This is deliberately stricter than the
// per-table tolerance of the discovery counts; callers depend on either
// behavior.
func (s *QuartzService) GetStatistics(ctx context.Context, desc db.Descriptor) (model.SchedulerStatistics, error) {
	prefix := schemaPrefix(desc)

	queries := []string{
		fmt.Sprintf("SELECT COUNT(*) AS count FROM %sqrtz_job_details", prefix),
		fmt.Sprintf("SELECT COUNT(*) AS count FROM %sqrtz_triggers", prefix),
		fmt.Sprintf("SELECT COUNT(*) AS count FROM %sqrtz_fired_triggers", prefix),
		fmt.Sprintf("SELECT COUNT(*) AS count FROM %sqrtz_triggers WHERE trigger_state = 'PAUSED'", prefix),
		fmt.Sprintf("SELECT COUNT(*) AS count FROM %sqrtz_scheduler_state", prefix),
	}

	counts := make([]int64, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			rows, err := s.q.Query(gctx, desc, query)
			if err != nil {
				return err
			}
			counts[i] = countValue(rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.SchedulerStatistics{}, fmt.Errorf("collect statistics: %w", err)
	}

	return model.SchedulerStatistics{
		TotalJobs:          int(counts[0]),
		TotalTriggers:      int(counts[1]),
		ExecutingJobs:      int(counts[2]),
		PausedTriggers:     int(counts[3]),
		SchedulerInstances: int(counts[4]),
	}, nil
}

// PauseTrigger moves a trigger into the paused state. The false return
// collapses "not found" and "already paused"; callers treat both as no-op.
func (s *QuartzService) PauseTrigger(ctx context.Context, desc db.Descriptor, triggerName, triggerGroup string) (bool, error) {
	if triggerName == "" || triggerGroup == "" {
		return false, &ValidationError{Message: "triggerName and triggerGroup are required"}
	}
	prefix := schemaPrefix(desc)

	affected, err := s.q.Exec(ctx, desc,
		fmt.Sprintf(`UPDATE %sqrtz_triggers SET trigger_state = '%s'
			WHERE trigger_name = $1 AND trigger_group = $2 AND trigger_state != '%s'`,
			prefix, triggerStatePaused, triggerStatePaused),
		triggerName, triggerGroup)
	if err != nil {
		return false, fmt.Errorf("pause trigger %s.%s: %w", triggerGroup, triggerName, err)
	}
	return affected > 0, nil
}

// ResumeTrigger moves a paused trigger back to waiting. Symmetric to
// PauseTrigger, including the collapsed false return.
func (s *QuartzService) ResumeTrigger(ctx context.Context, desc db.Descriptor, triggerName, triggerGroup string) (bool, error) {
	if triggerName == "" || triggerGroup == "" {
		return false, &ValidationError{Message: "triggerName and triggerGroup are required"}
	}
	prefix := schemaPrefix(desc)

	affected, err := s.q.Exec(ctx, desc,
		fmt.Sprintf(`UPDATE %sqrtz_triggers SET trigger_state = '%s'
			WHERE trigger_name = $1 AND trigger_group = $2 AND trigger_state = '%s'`,
			prefix, triggerStateWaiting, triggerStatePaused),
		triggerName, triggerGroup)
	if err != nil {
		return false, fmt.Errorf("resume trigger %s.%s: %w", triggerGroup, triggerName, err)
	}
	return affected > 0, nil
}

// UpdateTriggerCronExpression validates the expression, rewrites the cron
// subtype row, and zeroes next_fire_time so the running scheduler recomputes
// it on its next poll. The service never computes fire times itself.
func (s *QuartzService) UpdateTriggerCronExpression(ctx context.Context, desc db.Descriptor, triggerName, triggerGroup, cronExpression string) error {
	if triggerName == "" || triggerGroup == "" {
		return &ValidationError{Message: "triggerName and triggerGroup are required"}
	}
	if validation := ValidateCronExpression(cronExpression); !validation.Valid {
		return &ValidationError{Message: fmt.Sprintf("Invalid cron expression: %s", validation.Error)}
	}
	prefix := schemaPrefix(desc)

	affected, err := s.q.Exec(ctx, desc,
		fmt.Sprintf("UPDATE %sqrtz_cron_triggers SET cron_expression = $1 WHERE trigger_name = $2 AND trigger_group = $3", prefix),
		cronExpression, triggerName, triggerGroup)
	if err != nil {
		return fmt.Errorf("update cron expression of %s.%s: %w", triggerGroup, triggerName, err)
	}
	if affected == 0 {
		return &NotFoundError{Message: "Trigger not found or is not a cron trigger"}
	}

	if _, err := s.q.Exec(ctx, desc,
		fmt.Sprintf("UPDATE %sqrtz_triggers SET next_fire_time = 0 WHERE trigger_name = $1 AND trigger_group = $2", prefix),
		triggerName, triggerGroup); err != nil {
		return fmt.Errorf("reset next fire time of %s.%s: %w", triggerGroup, triggerName, err)
	}
	return nil
}

func jobFromRow(row map[string]any) model.JobDetail {
	return model.JobDetail{
		SchedName:        asText(row["sched_name"]),
		JobName:          asText(row["job_name"]),
		JobGroup:         asText(row["job_group"]),
		Description:      asText(row["description"]),
		JobClassName:     asText(row["job_class_name"]),
		IsDurable:        asBool(row["is_durable"]),
		IsNonconcurrent:  asBool(row["is_nonconcurrent"]),
		IsUpdateData:     asBool(row["is_update_data"]),
		RequestsRecovery: asBool(row["requests_recovery"]),
		// Job data is a vendor-serialized blob; surfaced opaque and empty.
		JobData: map[string]any{},
	}
}
