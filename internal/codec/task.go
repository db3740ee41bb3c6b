package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeTasks converts fetched Tasks rows (header included) into typed
// records. Unknown status and priority cells fall back to the defaults
// shown on a fresh board.
func DecodeTasks(rows [][]string) []model.Task {
	data := dataRows(rows)
	tasks := make([]model.Task, 0, len(data))
	for _, row := range data {
		status := model.TaskStatus(cell(row, 6))
		if !status.IsValid() {
			status = model.StatusToDo
		}
		priority := model.TaskPriority(cell(row, 5))
		if !priority.IsValid() {
			priority = model.PriorityMedium
		}

		tasks = append(tasks, model.Task{
			ID:                 cell(row, 0),
			ProjectID:          cell(row, 1),
			Name:               cell(row, 2),
			Description:        cell(row, 3),
			AssignedTo:         cell(row, 4),
			Priority:           priority,
			Status:             status,
			EstimatedHours:     parseFloat(row, 7),
			ActualHours:        parseFloat(row, 8),
			BilledHours:        parseFloat(row, 9),
			ProjectPerHourRate: parseFloat(row, 10),
			TaskPerHourRate:    parseFloat(row, 11),
			CalculatedAmount:   parseFloat(row, 12),
			DueDate:            cell(row, 13),
			Artifacts:          cell(row, 14),
		})
	}
	return tasks
}

// EncodeTask serializes a task as one full-width row.
func EncodeTask(t model.Task) []string {
	return []string{
		t.ID,
		t.ProjectID,
		t.Name,
		t.Description,
		t.AssignedTo,
		string(t.Priority),
		string(t.Status),
		formatFloat(t.EstimatedHours),
		formatFloat(t.ActualHours),
		formatFloat(t.BilledHours),
		formatFloat(t.ProjectPerHourRate),
		formatFloat(t.TaskPerHourRate),
		formatFloat(t.CalculatedAmount),
		t.DueDate,
		t.Artifacts,
	}
}
