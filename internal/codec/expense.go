package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeExpenses converts fetched Expenses rows (header included) into
// typed records.
func DecodeExpenses(rows [][]string) []model.Expense {
	data := dataRows(rows)
	expenses := make([]model.Expense, 0, len(data))
	for _, row := range data {
		status := model.ExpenseStatus(cell(row, 10))
		if status == "" {
			status = model.ExpensePending
		}

		expenses = append(expenses, model.Expense{
			ID:            cell(row, 0),
			ProjectID:     cell(row, 1),
			ClientID:      cell(row, 2),
			ExpenseDate:   cell(row, 3),
			Category:      cell(row, 4),
			Description:   cell(row, 5),
			Amount:        parseFloat(row, 6),
			ReceiptURL:    cell(row, 7),
			Billable:      parseBool(row, 8),
			Reimbursable:  parseBool(row, 9),
			Status:        status,
			SubmittedBy:   cell(row, 11),
			SubmittedDate: cell(row, 12),
			ApprovedBy:    cell(row, 13),
			ApprovedDate:  cell(row, 14),
			Notes:         cell(row, 15),
		})
	}
	return expenses
}

// EncodeExpense serializes an expense as one full-width row.
func EncodeExpense(e model.Expense) []string {
	return []string{
		e.ID,
		e.ProjectID,
		e.ClientID,
		e.ExpenseDate,
		e.Category,
		e.Description,
		formatFloat(e.Amount),
		e.ReceiptURL,
		formatBool(e.Billable),
		formatBool(e.Reimbursable),
		string(e.Status),
		e.SubmittedBy,
		e.SubmittedDate,
		e.ApprovedBy,
		e.ApprovedDate,
		e.Notes,
	}
}
