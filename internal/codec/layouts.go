package codec

// Worksheet ranges, one fixed-width table per entity. Row 1 is the header;
// data starts at row 2.
const (
	ProjectsRange    = "Projects!A:M"
	TasksRange       = "Tasks!A:O"
	TimeEntriesRange = "TimeEntries!A:I"
	ActivitiesRange  = "Activities!A:H"
	UsersRange       = "Users!A:C"
	ClientsRange     = "Clients!A:L"
	InvoicesRange    = "Invoices!A:Q"
	ExpensesRange    = "Expenses!A:P"
	PaymentsRange    = "Payments!A:I"
)

// Headers lists the authoritative column headers per worksheet tab. The
// configuration verifier compares live header rows against these.
var Headers = map[string][]string{
	"Projects": {
		"Project ID", "Project Name", "Client Name", "Project Description",
		"Start Date", "End Date", "Status", "Budget", "Per Hour Rate",
		"Total Estimated Hours", "Total Actual Hours", "Total Billed Hours",
		"Total Amount",
	},
	"Tasks": {
		"Task ID", "Project ID", "Task Name", "Task Description",
		"Assigned To", "Priority", "Status", "Estimated Hours",
		"Actual Hours", "Billed Hours", "Project Per Hour Rate",
		"Task Per Hour Rate", "Calculated Amount", "Due Date", "Artifacts",
	},
	"TimeEntries": {
		"Time Entry ID", "Project ID", "Task ID", "Date", "Start Time",
		"End Time", "Duration", "Description/Notes", "User/Employee Name",
	},
	"Activities": {
		"Activity ID", "Timestamp", "Type", "Description", "Entity ID",
		"Entity Name", "User Name", "Metadata",
	},
	"Users": {
		"Username", "Password", "Last Login",
	},
	"Clients": {
		"ID", "Client Name", "Contact Email", "Contact Phone", "Address",
		"Company Name", "Tax ID", "Payment Terms", "Hourly Rate", "Status",
		"Created Date", "Notes",
	},
	"Invoices": {
		"ID", "Invoice Number", "Client ID", "Project ID", "Issue Date",
		"Due Date", "Status", "Subtotal", "Tax Rate", "Tax Amount",
		"Total Amount", "Paid Amount", "Balance Amount", "Payment Date",
		"Notes", "Created By", "Created Date",
	},
	"Expenses": {
		"ID", "Project ID", "Client ID", "Expense Date", "Category",
		"Description", "Amount", "Receipt URL", "Billable", "Reimbursable",
		"Status", "Submitted By", "Submitted Date", "Approved By",
		"Approved Date", "Notes",
	},
	"Payments": {
		"ID", "Invoice ID", "Payment Date", "Amount", "Payment Method",
		"Reference Number", "Notes", "Recorded By", "Recorded Date",
	},
}

// RequiredTabs are the worksheets that must exist for the application to
// function at all; the remaining tabs degrade gracefully when absent.
var RequiredTabs = []string{"Projects", "Tasks", "TimeEntries", "Activities", "Users"}
