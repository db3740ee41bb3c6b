package codec

import (
	"strconv"

	"github.com/Veraticus/sheetboard/internal/model"
)

// DecodeClients converts fetched Clients rows (header included) into typed
// records.
func DecodeClients(rows [][]string) []model.Client {
	data := dataRows(rows)
	clients := make([]model.Client, 0, len(data))
	for _, row := range data {
		clients = append(clients, model.Client{
			ID:           cell(row, 0),
			Name:         cell(row, 1),
			ContactEmail: cell(row, 2),
			ContactPhone: cell(row, 3),
			Address:      cell(row, 4),
			CompanyName:  cell(row, 5),
			TaxID:        cell(row, 6),
			PaymentTerms: parseInt(row, 7),
			HourlyRate:   parseFloat(row, 8),
			Status:       cell(row, 9),
			CreatedDate:  cell(row, 10),
			Notes:        cell(row, 11),
		})
	}
	return clients
}

// EncodeClient serializes a client as one full-width row.
func EncodeClient(c model.Client) []string {
	return []string{
		c.ID,
		c.Name,
		c.ContactEmail,
		c.ContactPhone,
		c.Address,
		c.CompanyName,
		c.TaxID,
		strconv.Itoa(c.PaymentTerms),
		formatFloat(c.HourlyRate),
		c.Status,
		c.CreatedDate,
		c.Notes,
	}
}
