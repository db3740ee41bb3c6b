package model

// Payment is money received against an invoice. Recording one mutates the
// parent invoice's paid amount, balance and status as a side effect.
type Payment struct {
	ID              string
	InvoiceID       string
	PaymentDate     string
	Amount          float64
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
	RecordedBy      string
	RecordedDate    string
}
