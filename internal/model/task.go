package model

// TaskPriority is the urgency bucket shown on the board.
type TaskPriority string

// Valid task priorities.
const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskStatus is the kanban column a task sits in.
type TaskStatus string

// Valid task statuses.
const (
	StatusToDo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusCompleted  TaskStatus = "Completed"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work within a project. BilledHours only ever grows,
// incremented by invoice generation.
type Task struct {
	ID                 string
	ProjectID          string
	Name               string
	Description        string
	AssignedTo         string
	Priority           TaskPriority
	Status             TaskStatus
	EstimatedHours     float64
	ActualHours        float64
	BilledHours        float64
	ProjectPerHourRate float64
	TaskPerHourRate    float64
	CalculatedAmount   float64
	DueDate            string
	Artifacts          string
}

// ComputeCalculatedAmount recalculates the derived amount from billed hours.
func (t *Task) ComputeCalculatedAmount() {
	t.CalculatedAmount = round2(t.BilledHours * t.TaskPerHourRate)
}
