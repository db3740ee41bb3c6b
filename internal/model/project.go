// Package model defines the typed entities stored as worksheet rows.
//
// Dates and times are kept as the display strings the spreadsheet holds
// ("2006-01-02" dates, "15:04" times); the service layer validates them on
// the way in. Numbers and flags are typed, decoded once at the codec
// boundary.
package model

// Project is a billable engagement for a client.
type Project struct {
	ID                  string
	Name                string
	ClientName          string
	Description         string
	StartDate           string
	EndDate             string
	Status              string
	Budget              float64
	PerHourRate         float64
	TotalEstimatedHours float64
	TotalActualHours    float64
	TotalBilledHours    float64
	TotalAmount         float64
}

// ComputeTotalAmount recalculates the derived total from billed hours.
// TotalAmount is never accepted from a caller.
func (p *Project) ComputeTotalAmount() {
	p.TotalAmount = round2(p.TotalBilledHours * p.PerHourRate)
}
