package model

// ActivityType labels what kind of mutation produced an audit entry.
type ActivityType string

// Activity types, one per mutation family.
const (
	ActivityProjectCreated   ActivityType = "project_created"
	ActivityProjectUpdated   ActivityType = "project_updated"
	ActivityTaskCreated      ActivityType = "task_created"
	ActivityTaskUpdated      ActivityType = "task_updated"
	ActivityTaskStatusMoved  ActivityType = "task_status_moved"
	ActivityTimeEntryCreated ActivityType = "time_entry_created"
	ActivityTimeEntryUpdated ActivityType = "time_entry_updated"
	ActivityClientCreated    ActivityType = "client_created"
	ActivityClientUpdated    ActivityType = "client_updated"
	ActivityInvoiceCreated   ActivityType = "invoice_created"
	ActivityInvoiceUpdated   ActivityType = "invoice_updated"
	ActivityExpenseCreated   ActivityType = "expense_created"
	ActivityExpenseUpdated   ActivityType = "expense_updated"
	ActivityPaymentRecorded  ActivityType = "payment_recorded"
	ActivityUserLogin        ActivityType = "user_login"
)

// Activity is an append-only audit record. Activities are never updated
// or deleted.
type Activity struct {
	ID          string
	Timestamp   string
	Type        ActivityType
	Description string
	EntityID    string
	EntityName  string
	UserName    string
	Metadata    string
}
