package model

// TimeEntry is a logged block of work against a task. Duration is always
// recomputed from the start and end times; a client-submitted value is
// discarded.
type TimeEntry struct {
	ID          string
	ProjectID   string
	TaskID      string
	Date        string
	StartTime   string
	EndTime     string
	Duration    float64
	Description string
	UserName    string
}
