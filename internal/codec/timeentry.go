package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeTimeEntries converts fetched TimeEntries rows (header included)
// into typed records.
func DecodeTimeEntries(rows [][]string) []model.TimeEntry {
	data := dataRows(rows)
	entries := make([]model.TimeEntry, 0, len(data))
	for _, row := range data {
		entries = append(entries, model.TimeEntry{
			ID:          cell(row, 0),
			ProjectID:   cell(row, 1),
			TaskID:      cell(row, 2),
			Date:        cell(row, 3),
			StartTime:   cell(row, 4),
			EndTime:     cell(row, 5),
			Duration:    parseFloat(row, 6),
			Description: cell(row, 7),
			UserName:    cell(row, 8),
		})
	}
	return entries
}

// EncodeTimeEntry serializes a time entry as one full-width row.
func EncodeTimeEntry(e model.TimeEntry) []string {
	return []string{
		e.ID,
		e.ProjectID,
		e.TaskID,
		e.Date,
		e.StartTime,
		e.EndTime,
		formatFloat(e.Duration),
		e.Description,
		e.UserName,
	}
}
