package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetTasks returns every task.
func (s *Service) GetTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.api.GetRange(ctx, codec.TasksRange)
	if err != nil {
		return nil, s.translate(err, "tasks")
	}
	return codec.DecodeTasks(rows), nil
}

// GetTasksForProject returns the tasks belonging to one project.
func (s *Service) GetTasksForProject(ctx context.Context, projectID string) ([]model.Task, error) {
	tasks, err := s.GetTasks(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ProjectID == projectID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// AddTask validates, assigns an ID, computes the derived amount and
// appends the task.
func (s *Service) AddTask(ctx context.Context, task model.Task, userName string) (*model.Task, error) {
	if err := validateTask(&task); err != nil {
		return nil, err
	}

	task.ID = model.NewTaskID(s.now())
	if task.Status == "" {
		task.Status = model.StatusToDo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	task.ComputeCalculatedAmount()

	if err := s.api.AppendRows(ctx, codec.TasksRange, [][]string{codec.EncodeTask(task)}); err != nil {
		return nil, s.translate(err, "tasks")
	}

	s.recordActivity(ctx, model.ActivityTaskCreated,
		fmt.Sprintf("Created task %q", task.Name),
		task.ID, task.Name, userName)

	return &task, nil
}

// UpdateTask overwrites a task row located by ID. The accumulated actual
// and billed hour columns are preserved from the stored row because the
// update payload does not own them.
func (s *Service) UpdateTask(ctx context.Context, task model.Task, userName string) (*model.Task, error) {
	if task.ID == "" {
		return nil, &ValidationError{Violations: []string{"task ID is required"}}
	}
	if err := validateTask(&task); err != nil {
		return nil, err
	}

	rows, err := s.api.GetRange(ctx, codec.TasksRange)
	if err != nil {
		return nil, s.translate(err, "tasks")
	}

	existing := codec.DecodeTasks(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == task.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("task", task.ID)
	}

	task.ActualHours = existing[index].ActualHours
	task.BilledHours = existing[index].BilledHours
	task.ComputeCalculatedAmount()

	rowRange := rangeForRow(codec.TasksRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeTask(task)}); err != nil {
		return nil, s.translate(err, "tasks")
	}

	s.recordActivity(ctx, model.ActivityTaskUpdated,
		fmt.Sprintf("Updated task %q", task.Name),
		task.ID, task.Name, userName)

	return &task, nil
}

// UpdateTaskStatus moves a task to a new board column, overwriting only
// the status cell. Calling it again with the same status succeeds and
// emits another activity; there is no duplicate suppression.
func (s *Service) UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus, userName string) error {
	if !status.IsValid() {
		return &ValidationError{Violations: []string{fmt.Sprintf("status %q is not valid", status)}}
	}

	rows, err := s.api.GetRange(ctx, codec.TasksRange)
	if err != nil {
		return s.translate(err, "tasks")
	}

	existing := codec.DecodeTasks(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == taskID {
			index = i
			break
		}
	}
	if index < 0 {
		return notFound("task", taskID)
	}

	// Status lives in column G; writing just that cell leaves concurrent
	// edits to the rest of the row untouched.
	cellRange := fmt.Sprintf("Tasks!G%d", sheetRow(index))
	if err := s.api.UpdateRange(ctx, cellRange, [][]string{{string(status)}}); err != nil {
		return s.translate(err, "tasks")
	}

	s.recordActivity(ctx, model.ActivityTaskStatusMoved,
		fmt.Sprintf("Moved task %q to %s", existing[index].Name, status),
		taskID, existing[index].Name, userName)

	return nil
}

func validateTask(t *model.Task) error {
	var v violations

	if t.ProjectID == "" {
		v.addf("project ID is required")
	}
	if t.Name == "" {
		v.addf("task name is required")
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		v.addf("priority %q is not one of High, Medium, Low", t.Priority)
	}
	if t.Status != "" && !t.Status.IsValid() {
		v.addf("status %q is not one of To Do, In Progress, Review, Completed", t.Status)
	}
	if t.EstimatedHours < 0 {
		v.addf("estimated hours cannot be negative")
	}
	if t.BilledHours < 0 {
		v.addf("billed hours cannot be negative")
	}
	if t.ProjectPerHourRate < 0 {
		v.addf("project per hour rate cannot be negative")
	}
	if t.TaskPerHourRate < 0 {
		v.addf("task per hour rate cannot be negative")
	}
	if t.DueDate != "" && !validDate(t.DueDate) {
		v.addf("due date %q is not a valid date", t.DueDate)
	}

	return v.err()
}
