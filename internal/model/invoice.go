package model

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

// Invoice statuses.
const (
	InvoiceDraft InvoiceStatus = "Draft"
	InvoiceSent  InvoiceStatus = "Sent"
	InvoicePaid  InvoiceStatus = "Paid"
)

// Invoice bills a client for a project's unbilled task hours.
// BalanceAmount always equals TotalAmount minus PaidAmount; it is
// recomputed on every payment write, never cached independently.
type Invoice struct {
	ID            string
	InvoiceNumber string
	ClientID      string
	ProjectID     string
	IssueDate     string
	DueDate       string
	Status        InvoiceStatus
	Subtotal      float64
	TaxRate       float64
	TaxAmount     float64
	TotalAmount   float64
	PaidAmount    float64
	BalanceAmount float64
	PaymentDate   string
	Notes         string
	CreatedBy     string
	CreatedDate   string
}

// ApplyPayment adds a payment and recomputes the balance and status.
// The status flips to Paid when the balance reaches zero.
func (i *Invoice) ApplyPayment(amount float64, paymentDate string) {
	i.PaidAmount = round2(i.PaidAmount + amount)
	i.BalanceAmount = round2(i.TotalAmount - i.PaidAmount)
	if i.BalanceAmount <= 0 {
		i.Status = InvoicePaid
		i.PaymentDate = paymentDate
	}
}
