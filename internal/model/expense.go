package model

// ExpenseStatus is the approval state of an expense.
type ExpenseStatus string

// Expense statuses.
const (
	ExpensePending  ExpenseStatus = "Pending"
	ExpenseApproved ExpenseStatus = "Approved"
	ExpenseRejected ExpenseStatus = "Rejected"
)

// Expense is a cost submitted against a project. The billable and
// reimbursable flags are stored as "TRUE"/"FALSE" strings in the sheet.
type Expense struct {
	ID            string
	ProjectID     string
	ClientID      string
	ExpenseDate   string
	Category      string
	Description   string
	Amount        float64
	ReceiptURL    string
	Billable      bool
	Reimbursable  bool
	Status        ExpenseStatus
	SubmittedBy   string
	SubmittedDate string
	ApprovedBy    string
	ApprovedDate  string
	Notes         string
}
