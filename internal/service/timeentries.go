package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetTimeEntries returns every time entry.
func (s *Service) GetTimeEntries(ctx context.Context) ([]model.TimeEntry, error) {
	rows, err := s.api.GetRange(ctx, codec.TimeEntriesRange)
	if err != nil {
		return nil, s.translate(err, "time entries")
	}
	return codec.DecodeTimeEntries(rows), nil
}

// GetTimeEntriesForProject returns the time entries logged against one
// project.
func (s *Service) GetTimeEntriesForProject(ctx context.Context, projectID string) ([]model.TimeEntry, error) {
	entries, err := s.GetTimeEntries(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.ProjectID == projectID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// AddTimeEntry validates and appends a time entry. Duration is recomputed
// from the start and end clock times; the caller's value is discarded, and
// a non-positive duration is rejected before anything is written.
//
// After the append, the task's actual hours and the project's total actual
// hours are rolled up best-effort; a rollup failure is logged, never
// surfaced.
func (s *Service) AddTimeEntry(ctx context.Context, entry model.TimeEntry, userName string) (*model.TimeEntry, error) {
	if err := validateTimeEntry(&entry); err != nil {
		return nil, err
	}

	entry.Duration = clockDuration(entry.StartTime, entry.EndTime)
	if entry.Duration <= 0 {
		return nil, &ValidationError{Violations: []string{"end time must be after start time"}}
	}

	entry.ID = model.NewTimeEntryID(s.now())

	if err := s.api.AppendRows(ctx, codec.TimeEntriesRange, [][]string{codec.EncodeTimeEntry(entry)}); err != nil {
		return nil, s.translate(err, "time entries")
	}

	s.rollUpActualHours(ctx, entry)

	s.recordActivity(ctx, model.ActivityTimeEntryCreated,
		fmt.Sprintf("Logged %.2fh on task %s", entry.Duration, entry.TaskID),
		entry.ID, entry.TaskID, userName)

	return &entry, nil
}

// rollUpActualHours adds a new entry's duration to the owning task and
// project. Actual-hour columns are written only here, never by direct
// edits.
func (s *Service) rollUpActualHours(ctx context.Context, entry model.TimeEntry) {
	taskRows, err := s.api.GetRange(ctx, codec.TasksRange)
	if err == nil {
		tasks := codec.DecodeTasks(taskRows)
		for i := range tasks {
			if tasks[i].ID != entry.TaskID {
				continue
			}
			task := tasks[i]
			task.ActualHours = round2(task.ActualHours + entry.Duration)
			rowRange := rangeForRow(codec.TasksRange, sheetRow(i))
			err = s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeTask(task)})
			break
		}
	}
	if err != nil {
		s.logger.Warn("task actual-hours rollup failed",
			"task_id", entry.TaskID, "entry_id", entry.ID, "error", err)
	}

	projectRows, err := s.api.GetRange(ctx, codec.ProjectsRange)
	if err == nil {
		projects := codec.DecodeProjects(projectRows)
		for i := range projects {
			if projects[i].ID != entry.ProjectID {
				continue
			}
			project := projects[i]
			project.TotalActualHours = round2(project.TotalActualHours + entry.Duration)
			rowRange := rangeForRow(codec.ProjectsRange, sheetRow(i))
			err = s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeProject(project)})
			break
		}
	}
	if err != nil {
		s.logger.Warn("project actual-hours rollup failed",
			"project_id", entry.ProjectID, "entry_id", entry.ID, "error", err)
	}
}

// UpdateTimeEntry overwrites a time entry row located by ID, recomputing
// the duration. The actual-hours rollups are not adjusted retroactively.
func (s *Service) UpdateTimeEntry(ctx context.Context, entry model.TimeEntry, userName string) (*model.TimeEntry, error) {
	if entry.ID == "" {
		return nil, &ValidationError{Violations: []string{"time entry ID is required"}}
	}
	if err := validateTimeEntry(&entry); err != nil {
		return nil, err
	}

	entry.Duration = clockDuration(entry.StartTime, entry.EndTime)
	if entry.Duration <= 0 {
		return nil, &ValidationError{Violations: []string{"end time must be after start time"}}
	}

	rows, err := s.api.GetRange(ctx, codec.TimeEntriesRange)
	if err != nil {
		return nil, s.translate(err, "time entries")
	}

	existing := codec.DecodeTimeEntries(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == entry.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("time entry", entry.ID)
	}

	rowRange := rangeForRow(codec.TimeEntriesRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeTimeEntry(entry)}); err != nil {
		return nil, s.translate(err, "time entries")
	}

	s.recordActivity(ctx, model.ActivityTimeEntryUpdated,
		fmt.Sprintf("Updated time entry %s", entry.ID),
		entry.ID, entry.TaskID, userName)

	return &entry, nil
}

func validateTimeEntry(e *model.TimeEntry) error {
	var v violations

	if e.ProjectID == "" {
		v.addf("project ID is required")
	}
	if e.TaskID == "" {
		v.addf("task ID is required")
	}
	if e.UserName == "" {
		v.addf("user name is required")
	}
	if e.Date == "" {
		v.addf("date is required")
	} else if !validDate(e.Date) {
		v.addf("date %q is not a valid date", e.Date)
	}
	if e.StartTime == "" {
		v.addf("start time is required")
	} else if !validClock(e.StartTime) {
		v.addf("start time %q is not a valid HH:MM time", e.StartTime)
	}
	if e.EndTime == "" {
		v.addf("end time is required")
	} else if !validClock(e.EndTime) {
		v.addf("end time %q is not a valid HH:MM time", e.EndTime)
	}

	return v.err()
}
