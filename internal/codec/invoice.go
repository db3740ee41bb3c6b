package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodeInvoices converts fetched Invoices rows (header included) into
// typed records.
func DecodeInvoices(rows [][]string) []model.Invoice {
	data := dataRows(rows)
	invoices := make([]model.Invoice, 0, len(data))
	for _, row := range data {
		status := model.InvoiceStatus(cell(row, 6))
		if status == "" {
			status = model.InvoiceDraft
		}

		invoices = append(invoices, model.Invoice{
			ID:            cell(row, 0),
			InvoiceNumber: cell(row, 1),
			ClientID:      cell(row, 2),
			ProjectID:     cell(row, 3),
			IssueDate:     cell(row, 4),
			DueDate:       cell(row, 5),
			Status:        status,
			Subtotal:      parseFloat(row, 7),
			TaxRate:       parseFloat(row, 8),
			TaxAmount:     parseFloat(row, 9),
			TotalAmount:   parseFloat(row, 10),
			PaidAmount:    parseFloat(row, 11),
			BalanceAmount: parseFloat(row, 12),
			PaymentDate:   cell(row, 13),
			Notes:         cell(row, 14),
			CreatedBy:     cell(row, 15),
			CreatedDate:   cell(row, 16),
		})
	}
	return invoices
}

// EncodeInvoice serializes an invoice as one full-width row.
func EncodeInvoice(i model.Invoice) []string {
	return []string{
		i.ID,
		i.InvoiceNumber,
		i.ClientID,
		i.ProjectID,
		i.IssueDate,
		i.DueDate,
		string(i.Status),
		formatFloat(i.Subtotal),
		formatFloat(i.TaxRate),
		formatFloat(i.TaxAmount),
		formatFloat(i.TotalAmount),
		formatFloat(i.PaidAmount),
		formatFloat(i.BalanceAmount),
		i.PaymentDate,
		i.Notes,
		i.CreatedBy,
		i.CreatedDate,
	}
}
