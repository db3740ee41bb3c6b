package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetProjects returns every project.
func (s *Service) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.api.GetRange(ctx, codec.ProjectsRange)
	if err != nil {
		return nil, s.translate(err, "projects")
	}
	return codec.DecodeProjects(rows), nil
}

// GetProject returns one project by ID.
func (s *Service) GetProject(ctx context.Context, id string) (*model.Project, error) {
	projects, err := s.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, notFound("project", id)
}

// AddProject validates, assigns an ID, computes the derived total and
// appends the project. Initial hour counts are accepted here (seed data
// needs them); after creation they are only ever written by rollups.
func (s *Service) AddProject(ctx context.Context, project model.Project, userName string) (*model.Project, error) {
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	project.ID = model.NewProjectID(s.now())
	project.ComputeTotalAmount()
	if project.Status == "" {
		project.Status = "Active"
	}

	if err := s.api.AppendRows(ctx, codec.ProjectsRange, [][]string{codec.EncodeProject(project)}); err != nil {
		return nil, s.translate(err, "projects")
	}

	s.recordActivity(ctx, model.ActivityProjectCreated,
		fmt.Sprintf("Created project %q", project.Name),
		project.ID, project.Name, userName)

	return &project, nil
}

// UpdateProject overwrites a project row located by ID. The ID and the
// rollup-owned hour columns are preserved from the stored row; the total
// is recomputed.
func (s *Service) UpdateProject(ctx context.Context, project model.Project, userName string) (*model.Project, error) {
	if project.ID == "" {
		return nil, &ValidationError{Violations: []string{"project ID is required"}}
	}
	if err := validateProject(&project); err != nil {
		return nil, err
	}

	rows, err := s.api.GetRange(ctx, codec.ProjectsRange)
	if err != nil {
		return nil, s.translate(err, "projects")
	}

	existing := codec.DecodeProjects(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == project.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("project", project.ID)
	}

	project.TotalActualHours = existing[index].TotalActualHours
	project.TotalBilledHours = existing[index].TotalBilledHours
	project.ComputeTotalAmount()

	rowRange := rangeForRow(codec.ProjectsRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeProject(project)}); err != nil {
		return nil, s.translate(err, "projects")
	}

	s.recordActivity(ctx, model.ActivityProjectUpdated,
		fmt.Sprintf("Updated project %q", project.Name),
		project.ID, project.Name, userName)

	return &project, nil
}

func validateProject(p *model.Project) error {
	var v violations

	if p.Name == "" {
		v.addf("project name is required")
	}
	if p.ClientName == "" {
		v.addf("client name is required")
	}
	if p.StartDate == "" {
		v.addf("start date is required")
	} else if !validDate(p.StartDate) {
		v.addf("start date %q is not a valid date", p.StartDate)
	}
	if p.EndDate == "" {
		v.addf("end date is required")
	} else if !validDate(p.EndDate) {
		v.addf("end date %q is not a valid date", p.EndDate)
	}
	if validDate(p.StartDate) && validDate(p.EndDate) && !dateAfterOrEqual(p.StartDate, p.EndDate) {
		v.addf("end date must be on or after start date")
	}
	if p.Budget < 0 {
		v.addf("budget cannot be negative")
	}
	if p.PerHourRate < 0 {
		v.addf("per hour rate cannot be negative")
	}
	if p.TotalEstimatedHours < 0 {
		v.addf("estimated hours cannot be negative")
	}
	if p.TotalBilledHours < 0 {
		v.addf("billed hours cannot be negative")
	}

	return v.err()
}
