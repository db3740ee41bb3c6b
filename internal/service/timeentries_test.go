package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeEntryMock() *sheets.MockAPI {
	task := taskFixture("TASK-1")
	task.ActualHours = 1.5

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.TasksRange] = table("Tasks", codec.EncodeTask(task))
	mock.Ranges[codec.ProjectsRange] = table("Projects", codec.EncodeProject(model.Project{
		ID: "PROJ-1", Name: "Site build", ClientName: "Acme",
		StartDate: "2026-01-01", EndDate: "2026-06-30", TotalActualHours: 10,
	}))
	return mock
}

func TestAddTimeEntryComputesDuration(t *testing.T) {
	mock := timeEntryMock()
	svc := newTestService(mock)

	created, err := svc.AddTimeEntry(context.Background(), model.TimeEntry{
		ProjectID: "PROJ-1",
		TaskID:    "TASK-1",
		Date:      "2026-03-15",
		StartTime: "09:00",
		EndTime:   "11:45",
		Duration:  99,
		UserName:  "dana",
	}, "dana")
	require.NoError(t, err)

	assert.Equal(t, 2.75, created.Duration, "client-submitted duration is discarded")
	assert.True(t, strings.HasPrefix(created.ID, "TIME-"), "ID: %s", created.ID)

	appended := mock.AppendedTo(codec.TimeEntriesRange)
	require.Len(t, appended, 1)
	stored := codec.DecodeTimeEntries(table("TimeEntries", appended[0]))
	assert.Equal(t, 2.75, stored[0].Duration)
}

func TestAddTimeEntryRollsUpActualHours(t *testing.T) {
	mock := timeEntryMock()
	svc := newTestService(mock)

	_, err := svc.AddTimeEntry(context.Background(), model.TimeEntry{
		ProjectID: "PROJ-1", TaskID: "TASK-1", Date: "2026-03-15",
		StartTime: "09:00", EndTime: "11:30", UserName: "dana",
	}, "dana")
	require.NoError(t, err)

	require.Len(t, mock.UpdateCalls, 2, "one task row and one project row")

	taskRow := codec.DecodeTasks(table("Tasks", mock.UpdateCalls[0].Rows[0]))[0]
	assert.Equal(t, "Tasks!A2:O2", mock.UpdateCalls[0].Range)
	assert.Equal(t, 4.0, taskRow.ActualHours, "1.5 stored plus 2.5 logged")

	projectRow := codec.DecodeProjects(table("Projects", mock.UpdateCalls[1].Rows[0]))[0]
	assert.Equal(t, "Projects!A2:M2", mock.UpdateCalls[1].Range)
	assert.Equal(t, 12.5, projectRow.TotalActualHours)
}

func TestAddTimeEntryRejectsNonPositiveDuration(t *testing.T) {
	mock := timeEntryMock()
	svc := newTestService(mock)

	_, err := svc.AddTimeEntry(context.Background(), model.TimeEntry{
		ProjectID: "PROJ-1", TaskID: "TASK-1", Date: "2026-03-15",
		StartTime: "10:00", EndTime: "09:00", UserName: "dana",
	}, "dana")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "end time must be after start time")
	assert.Empty(t, mock.AppendCalls, "nothing is written when the clock times are inverted")

	_, err = svc.AddTimeEntry(context.Background(), model.TimeEntry{
		ProjectID: "PROJ-1", TaskID: "TASK-1", Date: "2026-03-15",
		StartTime: "10:00", EndTime: "10:00", UserName: "dana",
	}, "dana")
	require.Error(t, err, "zero-length entries are rejected too")
	assert.Empty(t, mock.AppendCalls)
}

func TestAddTimeEntryRollupFailureDoesNotFailTheEntry(t *testing.T) {
	mock := timeEntryMock()
	mock.UpdateFunc = func(context.Context, string, [][]string) error {
		return errors.New("boom")
	}
	svc := newTestService(mock)

	created, err := svc.AddTimeEntry(context.Background(), model.TimeEntry{
		ProjectID: "PROJ-1", TaskID: "TASK-1", Date: "2026-03-15",
		StartTime: "09:00", EndTime: "10:00", UserName: "dana",
	}, "dana")
	require.NoError(t, err, "the entry is the source of truth; rollups are best-effort")
	assert.NotNil(t, created)
	assert.Len(t, mock.AppendedTo(codec.TimeEntriesRange), 1)
}

func TestUpdateTimeEntryRecomputesDuration(t *testing.T) {
	entry := model.TimeEntry{
		ID: "TIME-1-ab", ProjectID: "PROJ-1", TaskID: "TASK-1",
		Date: "2026-03-10", StartTime: "09:00", EndTime: "10:00",
		Duration: 1, UserName: "dana",
	}

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.TimeEntriesRange] = table("TimeEntries", codec.EncodeTimeEntry(entry))
	svc := newTestService(mock)

	payload := entry
	payload.EndTime = "12:30"
	payload.Duration = 1

	updated, err := svc.UpdateTimeEntry(context.Background(), payload, "dana")
	require.NoError(t, err)
	assert.Equal(t, 3.5, updated.Duration)

	require.Len(t, mock.UpdateCalls, 1)
	assert.Equal(t, "TimeEntries!A2:I2", mock.UpdateCalls[0].Range)
}
