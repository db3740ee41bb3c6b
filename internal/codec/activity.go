package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeActivities converts fetched Activities rows (header included) into
// typed records.
func DecodeActivities(rows [][]string) []model.Activity {
	data := dataRows(rows)
	activities := make([]model.Activity, 0, len(data))
	for _, row := range data {
		activities = append(activities, model.Activity{
			ID:          cell(row, 0),
			Timestamp:   cell(row, 1),
			Type:        model.ActivityType(cell(row, 2)),
			Description: cell(row, 3),
			EntityID:    cell(row, 4),
			EntityName:  cell(row, 5),
			UserName:    cell(row, 6),
			Metadata:    cell(row, 7),
		})
	}
	return activities
}

// EncodeActivity serializes an activity as one full-width row.
func EncodeActivity(a model.Activity) []string {
	return []string{
		a.ID,
		a.Timestamp,
		string(a.Type),
		a.Description,
		a.EntityID,
		a.EntityName,
		a.UserName,
		a.Metadata,
	}
}
