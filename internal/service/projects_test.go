package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProject(t *testing.T) {
	mock := sheets.NewMockAPI()
	svc := newTestService(mock)

	created, err := svc.AddProject(context.Background(), model.Project{
		Name:             "Site build",
		ClientName:       "Acme",
		StartDate:        "2026-03-01",
		EndDate:          "2026-06-30",
		PerHourRate:      85.5,
		TotalBilledHours: 10,
	}, "dana")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "PROJ-2026-"), "ID carries the creation year: %s", created.ID)
	assert.Equal(t, 855.0, created.TotalAmount, "total is billed hours times rate")
	assert.Equal(t, "Active", created.Status)

	appended := mock.AppendedTo(codec.ProjectsRange)
	require.Len(t, appended, 1)
	stored := codec.DecodeProjects(table("Projects", appended[0]))
	require.Len(t, stored, 1)
	assert.Equal(t, *created, stored[0], "appended row round-trips to the returned project")

	activities := mock.AppendedTo(codec.ActivitiesRange)
	require.Len(t, activities, 1)
	audit := codec.DecodeActivities(table("Activities", activities[0]))
	require.Len(t, audit, 1)
	assert.Equal(t, model.ActivityProjectCreated, audit[0].Type)
	assert.Equal(t, created.ID, audit[0].EntityID)
	assert.Equal(t, "dana", audit[0].UserName)
}

func TestAddProjectValidationAggregates(t *testing.T) {
	mock := sheets.NewMockAPI()
	svc := newTestService(mock)

	_, err := svc.AddProject(context.Background(), model.Project{
		EndDate: "2026-01-01",
		Budget:  -5,
	}, "dana")
	require.Error(t, err)
	require.True(t, IsValidation(err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Violations), 3, "every violation is reported at once: %v", verr.Violations)
	assert.Empty(t, mock.AppendCalls, "invalid input never reaches the store")
}

func TestUpdateProjectPreservesRollupHours(t *testing.T) {
	existing := model.Project{
		ID: "PROJ-2026-1-ab", Name: "Site build", ClientName: "Acme",
		StartDate: "2026-03-01", EndDate: "2026-06-30", Status: "Active",
		PerHourRate: 85.5, TotalActualHours: 12.5, TotalBilledHours: 8,
	}

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.ProjectsRange] = table("Projects",
		codec.EncodeProject(model.Project{ID: "PROJ-other", Name: "Other", ClientName: "B", StartDate: "2026-01-01", EndDate: "2026-02-01"}),
		codec.EncodeProject(existing),
	)
	svc := newTestService(mock)

	payload := existing
	payload.Name = "Site rebuild"
	payload.PerHourRate = 100
	payload.TotalActualHours = 999
	payload.TotalBilledHours = 999

	updated, err := svc.UpdateProject(context.Background(), payload, "dana")
	require.NoError(t, err)

	assert.Equal(t, 12.5, updated.TotalActualHours, "rollup-owned hours come from the stored row")
	assert.Equal(t, 8.0, updated.TotalBilledHours)
	assert.Equal(t, 800.0, updated.TotalAmount, "total recomputed from preserved hours and new rate")

	require.Len(t, mock.UpdateCalls, 1)
	assert.Equal(t, "Projects!A3:M3", mock.UpdateCalls[0].Range, "second data row lives on sheet row 3")
}

func TestUpdateProjectNotFound(t *testing.T) {
	mock := sheets.NewMockAPI()
	mock.Ranges[codec.ProjectsRange] = table("Projects")
	svc := newTestService(mock)

	_, err := svc.UpdateProject(context.Background(), model.Project{
		ID: "PROJ-missing", Name: "x", ClientName: "y",
		StartDate: "2026-01-01", EndDate: "2026-02-01",
	}, "dana")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, mock.UpdateCalls)
}

func TestGetProject(t *testing.T) {
	project := model.Project{
		ID: "PROJ-1", Name: "Site build", ClientName: "Acme",
		StartDate: "2026-03-01", EndDate: "2026-06-30",
	}

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.ProjectsRange] = table("Projects", codec.EncodeProject(project))
	svc := newTestService(mock)

	got, err := svc.GetProject(context.Background(), "PROJ-1")
	require.NoError(t, err)
	assert.Equal(t, "Site build", got.Name)

	_, err = svc.GetProject(context.Background(), "PROJ-2")
	assert.True(t, IsNotFound(err))
}
