package codec

import "github.com/Veraticus/sheetboard/internal/model"

// DecodePayments converts fetched Payments rows (header included) into
// typed records.
func DecodePayments(rows [][]string) []model.Payment {
	data := dataRows(rows)
	payments := make([]model.Payment, 0, len(data))
	for _, row := range data {
		payments = append(payments, model.Payment{
			ID:              cell(row, 0),
			InvoiceID:       cell(row, 1),
			PaymentDate:     cell(row, 2),
			Amount:          parseFloat(row, 3),
			PaymentMethod:   cell(row, 4),
			ReferenceNumber: cell(row, 5),
			Notes:           cell(row, 6),
			RecordedBy:      cell(row, 7),
			RecordedDate:    cell(row, 8),
		})
	}
	return payments
}

// EncodePayment serializes a payment as one full-width row.
func EncodePayment(p model.Payment) []string {
	return []string{
		p.ID,
		p.InvoiceID,
		p.PaymentDate,
		formatFloat(p.Amount),
		p.PaymentMethod,
		p.ReferenceNumber,
		p.Notes,
		p.RecordedBy,
		p.RecordedDate,
	}
}
