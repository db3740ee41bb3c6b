package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invoiceMock seeds a project at 100/h with two tasks: TASK-1 has 5h
// logged of which 2h are billed, TASK-2 has 1.5h logged and none billed.
// That leaves 4.5 unbilled hours.
func invoiceMock() *sheets.MockAPI {
	task1 := taskFixture("TASK-1")
	task1.BilledHours = 2
	task1.TaskPerHourRate = 100
	task2 := taskFixture("TASK-2")
	task2.TaskPerHourRate = 100

	entry := func(id, taskID, start, end string) []string {
		return codec.EncodeTimeEntry(model.TimeEntry{
			ID: id, ProjectID: "PROJ-1", TaskID: taskID, Date: "2026-03-01",
			StartTime: start, EndTime: end, Duration: clockDuration(start, end),
			UserName: "dana",
		})
	}

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.ProjectsRange] = table("Projects", codec.EncodeProject(model.Project{
		ID: "PROJ-1", Name: "Site build", ClientName: "Acme",
		StartDate: "2026-01-01", EndDate: "2026-06-30",
		PerHourRate: 100, TotalBilledHours: 2, TotalAmount: 200,
	}))
	mock.Ranges[codec.TasksRange] = table("Tasks", codec.EncodeTask(task1), codec.EncodeTask(task2))
	mock.Ranges[codec.TimeEntriesRange] = table("TimeEntries",
		entry("TIME-1", "TASK-1", "09:00", "12:00"),
		entry("TIME-2", "TASK-1", "13:00", "15:00"),
		entry("TIME-3", "TASK-2", "09:00", "10:30"),
	)
	mock.Ranges[codec.ClientsRange] = table("Clients", codec.EncodeClient(model.Client{
		ID: "CLIENT-1", Name: "Acme", ContactEmail: "ops@acme.test", PaymentTerms: 45,
	}))
	mock.Ranges[codec.InvoicesRange] = table("Invoices")
	return mock
}

func TestGenerateInvoice(t *testing.T) {
	mock := invoiceMock()
	svc := newTestService(mock)

	invoice, err := svc.GenerateInvoice(context.Background(), "PROJ-1", "CLIENT-1", "dana")
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", invoice.InvoiceNumber)
	assert.Equal(t, invoice.InvoiceNumber, invoice.ID, "invoice ID is the invoice number")
	assert.Equal(t, model.InvoiceDraft, invoice.Status)
	assert.Equal(t, 450.0, invoice.Subtotal, "4.5 unbilled hours at 100/h")
	assert.Equal(t, 0.18, invoice.TaxRate)
	assert.Equal(t, 81.0, invoice.TaxAmount)
	assert.Equal(t, 531.0, invoice.TotalAmount)
	assert.Equal(t, 0.0, invoice.PaidAmount)
	assert.Equal(t, 531.0, invoice.BalanceAmount)
	assert.Equal(t, "2026-03-15", invoice.IssueDate)
	assert.Equal(t, "2026-04-29", invoice.DueDate, "client payment terms of 45 days apply")

	require.Len(t, mock.AppendedTo(codec.InvoicesRange), 1)
}

func TestGenerateInvoiceRollsUpBilledHours(t *testing.T) {
	mock := invoiceMock()
	svc := newTestService(mock)

	_, err := svc.GenerateInvoice(context.Background(), "PROJ-1", "CLIENT-1", "dana")
	require.NoError(t, err)

	require.Len(t, mock.UpdateCalls, 3, "two task rows and the project row")

	task1 := codec.DecodeTasks(table("Tasks", mock.UpdateCalls[0].Rows[0]))[0]
	assert.Equal(t, "Tasks!A2:O2", mock.UpdateCalls[0].Range)
	assert.Equal(t, 5.0, task1.BilledHours, "2 already billed plus 3 newly invoiced")
	assert.Equal(t, 500.0, task1.CalculatedAmount)

	task2 := codec.DecodeTasks(table("Tasks", mock.UpdateCalls[1].Rows[0]))[0]
	assert.Equal(t, "Tasks!A3:O3", mock.UpdateCalls[1].Range)
	assert.Equal(t, 1.5, task2.BilledHours)

	project := codec.DecodeProjects(table("Projects", mock.UpdateCalls[2].Rows[0]))[0]
	assert.Equal(t, "Projects!A2:M2", mock.UpdateCalls[2].Range)
	assert.Equal(t, 6.5, project.TotalBilledHours)
	assert.Equal(t, 650.0, project.TotalAmount)
}

func TestGenerateInvoiceNoUnbilledHours(t *testing.T) {
	mock := invoiceMock()
	// Bill everything up front so nothing is left to invoice.
	task1 := taskFixture("TASK-1")
	task1.BilledHours = 5
	task2 := taskFixture("TASK-2")
	task2.BilledHours = 1.5
	mock.Ranges[codec.TasksRange] = table("Tasks", codec.EncodeTask(task1), codec.EncodeTask(task2))
	svc := newTestService(mock)

	_, err := svc.GenerateInvoice(context.Background(), "PROJ-1", "CLIENT-1", "dana")
	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.Contains(t, err.Error(), "no unbilled hours")
	assert.Empty(t, mock.AppendCalls, "a zero invoice is never written")
}

func TestGenerateInvoiceSequencesNumbersPerYear(t *testing.T) {
	mock := invoiceMock()
	mock.Ranges[codec.InvoicesRange] = table("Invoices",
		codec.EncodeInvoice(model.Invoice{ID: "INV-2026-0007", InvoiceNumber: "INV-2026-0007"}),
		codec.EncodeInvoice(model.Invoice{ID: "INV-2025-0099", InvoiceNumber: "INV-2025-0099"}),
	)
	svc := newTestService(mock)

	invoice, err := svc.GenerateInvoice(context.Background(), "PROJ-1", "CLIENT-1", "dana")
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0008", invoice.InvoiceNumber, "prior years never advance the sequence")
}

func TestGenerateInvoiceSurvivesRollupFailure(t *testing.T) {
	mock := invoiceMock()
	mock.UpdateFunc = func(context.Context, string, [][]string) error {
		return errors.New("boom")
	}
	svc := newTestService(mock)

	invoice, err := svc.GenerateInvoice(context.Background(), "PROJ-1", "CLIENT-1", "dana")
	require.NoError(t, err, "the written invoice stands even when the rollup fails")
	assert.NotNil(t, invoice)
	assert.Len(t, mock.AppendedTo(codec.InvoicesRange), 1)
}

func TestUpdateInvoicePreservesNumberAndPaidAmount(t *testing.T) {
	stored := model.Invoice{
		ID: "INV-2026-0001", InvoiceNumber: "INV-2026-0001",
		ClientID: "CLIENT-1", ProjectID: "PROJ-1",
		Status: model.InvoiceSent, Subtotal: 450, TaxRate: 0.18,
		TaxAmount: 81, TotalAmount: 531, PaidAmount: 100, BalanceAmount: 431,
	}

	mock := sheets.NewMockAPI()
	mock.Ranges[codec.InvoicesRange] = table("Invoices", codec.EncodeInvoice(stored))
	svc := newTestService(mock)

	payload := stored
	payload.InvoiceNumber = "INV-9999-9999"
	payload.PaidAmount = 0
	payload.BalanceAmount = 0
	payload.Notes = "resent"

	updated, err := svc.UpdateInvoice(context.Background(), payload, "dana")
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-0001", updated.InvoiceNumber)
	assert.Equal(t, 100.0, updated.PaidAmount)
	assert.Equal(t, 431.0, updated.BalanceAmount, "balance recomputed from total minus paid")
	assert.Equal(t, "resent", updated.Notes)
}
