package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeProjects converts fetched Projects rows (header included) into
// typed records.
func DecodeProjects(rows [][]string) []model.Project {
	data := dataRows(rows)
	projects := make([]model.Project, 0, len(data))
	for _, row := range data {
		projects = append(projects, model.Project{
			ID:                  cell(row, 0),
			Name:                cell(row, 1),
			ClientName:          cell(row, 2),
			Description:         cell(row, 3),
			StartDate:           cell(row, 4),
			EndDate:             cell(row, 5),
			Status:              cell(row, 6),
			Budget:              parseFloat(row, 7),
			PerHourRate:         parseFloat(row, 8),
			TotalEstimatedHours: parseFloat(row, 9),
			TotalActualHours:    parseFloat(row, 10),
			TotalBilledHours:    parseFloat(row, 11),
			TotalAmount:         parseFloat(row, 12),
		})
	}
	return projects
}

// EncodeProject serializes a project as one full-width row.
func EncodeProject(p model.Project) []string {
	return []string{
		p.ID,
		p.Name,
		p.ClientName,
		p.Description,
		p.StartDate,
		p.EndDate,
		p.Status,
		formatFloat(p.Budget),
		formatFloat(p.PerHourRate),
		formatFloat(p.TotalEstimatedHours),
		formatFloat(p.TotalActualHours),
		formatFloat(p.TotalBilledHours),
		formatFloat(p.TotalAmount),
	}
}
