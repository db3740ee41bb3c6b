package model

// Client is a billable customer. PaymentTerms (days) drives invoice
// due-date computation.
type Client struct {
	ID           string
	Name         string
	ContactEmail string
	ContactPhone string
	Address      string
	CompanyName  string
	TaxID        string
	PaymentTerms int
	HourlyRate   float64
	Status       string
	CreatedDate  string
	Notes        string
}
