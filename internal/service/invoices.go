package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// taxRate is the fixed rate applied to every invoice subtotal.
const taxRate = 0.18

// defaultPaymentTermsDays is used when the client has no payment terms set.
const defaultPaymentTermsDays = 30

// GetInvoices returns every invoice.
func (s *Service) GetInvoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := s.api.GetRange(ctx, codec.InvoicesRange)
	if err != nil {
		return nil, s.translate(err, "invoices")
	}
	return codec.DecodeInvoices(rows), nil
}

// GetInvoice returns one invoice by ID.
func (s *Service) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	invoices, err := s.GetInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, notFound("invoice", id)
}

// taskBilling is one task's contribution to an invoice.
type taskBilling struct {
	index    int
	task     model.Task
	unbilled float64
}

// GenerateInvoice bills a project's unbilled task hours to a client.
//
// Unbilled hours per task are the summed time-entry durations minus hours
// already billed, floored at zero, so billed hours can only grow. The
// invoice is persisted as Draft first; afterwards each affected task's
// billed-hours column is incremented best-effort. That follow-up is not a
// transaction: if it fails, the invoice stands and the divergence is
// logged for manual reconciliation.
func (s *Service) GenerateInvoice(ctx context.Context, projectID, clientID, createdBy string) (*model.Invoice, error) {
	var v violations
	if projectID == "" {
		v.addf("project ID is required")
	}
	if clientID == "" {
		v.addf("client ID is required")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	taskRows, err := s.api.GetRange(ctx, codec.TasksRange)
	if err != nil {
		return nil, s.translate(err, "tasks")
	}
	tasks := codec.DecodeTasks(taskRows)

	entries, err := s.GetTimeEntriesForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	loggedByTask := make(map[string]float64)
	for _, e := range entries {
		loggedByTask[e.TaskID] += e.Duration
	}

	var billings []taskBilling
	var billableHours float64
	for i, t := range tasks {
		if t.ProjectID != projectID {
			continue
		}
		unbilled := round2(loggedByTask[t.ID] - t.BilledHours)
		if unbilled <= 0 {
			continue
		}
		billings = append(billings, taskBilling{index: i, task: t, unbilled: unbilled})
		billableHours += unbilled
	}
	billableHours = round2(billableHours)

	if billableHours <= 0 {
		return nil, domainErrorf("project %s has no unbilled hours to invoice", projectID)
	}

	terms := defaultPaymentTermsDays
	client, err := s.GetClient(ctx, clientID)
	if err == nil && client.PaymentTerms > 0 {
		terms = client.PaymentTerms
	}

	invoiceRows, err := s.api.GetRange(ctx, codec.InvoicesRange)
	if err != nil {
		return nil, s.translate(err, "invoices")
	}
	existing := codec.DecodeInvoices(invoiceRows)
	numbers := make([]string, 0, len(existing))
	for _, inv := range existing {
		numbers = append(numbers, inv.InvoiceNumber)
	}

	now := s.now()
	subtotal := round2(billableHours * project.PerHourRate)
	taxAmount := round2(subtotal * taxRate)
	total := round2(subtotal + taxAmount)
	number := model.NewInvoiceNumber(now, numbers)

	invoice := model.Invoice{
		ID:            number,
		InvoiceNumber: number,
		ClientID:      clientID,
		ProjectID:     projectID,
		IssueDate:     now.Format("2006-01-02"),
		DueDate:       dueDate(now, terms),
		Status:        model.InvoiceDraft,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		TotalAmount:   total,
		PaidAmount:    0,
		BalanceAmount: total,
		CreatedBy:     createdBy,
		CreatedDate:   now.Format("2006-01-02"),
	}

	if err := s.api.AppendRows(ctx, codec.InvoicesRange, [][]string{codec.EncodeInvoice(invoice)}); err != nil {
		return nil, s.translate(err, "invoices")
	}

	s.rollUpBilledHours(ctx, invoice, project, billings, billableHours)

	s.recordActivity(ctx, model.ActivityInvoiceCreated,
		fmt.Sprintf("Generated invoice %s for %.2fh", number, billableHours),
		invoice.ID, number, createdBy)

	return &invoice, nil
}

// rollUpBilledHours increments billed hours on each invoiced task and on
// the project. Best-effort by design: the invoice row is already written
// and must not be rolled back.
func (s *Service) rollUpBilledHours(ctx context.Context, invoice model.Invoice, project *model.Project, billings []taskBilling, billableHours float64) {
	var failed []string
	for _, b := range billings {
		task := b.task
		task.BilledHours = round2(task.BilledHours + b.unbilled)
		task.ComputeCalculatedAmount()

		rowRange := rangeForRow(codec.TasksRange, sheetRow(b.index))
		if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeTask(task)}); err != nil {
			failed = append(failed, task.ID)
			s.logger.Warn("task billed-hours rollup failed",
				"invoice_id", invoice.ID, "task_id", task.ID, "error", err)
		}
	}

	updated := *project
	updated.TotalBilledHours = round2(updated.TotalBilledHours + billableHours)
	updated.ComputeTotalAmount()

	projectRows, err := s.api.GetRange(ctx, codec.ProjectsRange)
	if err == nil {
		projects := codec.DecodeProjects(projectRows)
		for i := range projects {
			if projects[i].ID != project.ID {
				continue
			}
			rowRange := rangeForRow(codec.ProjectsRange, sheetRow(i))
			err = s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeProject(updated)})
			break
		}
	}
	if err != nil {
		s.logger.Warn("project billed-hours rollup failed",
			"invoice_id", invoice.ID, "project_id", project.ID, "error", err)
	}

	if len(failed) > 0 {
		s.logger.Warn("invoice and task billed hours have diverged",
			"invoice_id", invoice.ID, "task_ids", failed)
	}
}

// UpdateInvoice overwrites an invoice row located by ID. Money columns are
// recomputed so the balance invariant holds no matter what the payload
// carried.
func (s *Service) UpdateInvoice(ctx context.Context, invoice model.Invoice, userName string) (*model.Invoice, error) {
	if invoice.ID == "" {
		return nil, &ValidationError{Violations: []string{"invoice ID is required"}}
	}

	rows, err := s.api.GetRange(ctx, codec.InvoicesRange)
	if err != nil {
		return nil, s.translate(err, "invoices")
	}

	existing := codec.DecodeInvoices(rows)
	index := -1
	for i := range existing {
		if existing[i].ID == invoice.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("invoice", invoice.ID)
	}

	invoice.InvoiceNumber = existing[index].InvoiceNumber
	invoice.PaidAmount = existing[index].PaidAmount
	invoice.BalanceAmount = round2(invoice.TotalAmount - invoice.PaidAmount)

	rowRange := rangeForRow(codec.InvoicesRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeInvoice(invoice)}); err != nil {
		return nil, s.translate(err, "invoices")
	}

	s.recordActivity(ctx, model.ActivityInvoiceUpdated,
		fmt.Sprintf("Updated invoice %s", invoice.InvoiceNumber),
		invoice.ID, invoice.InvoiceNumber, userName)

	return &invoice, nil
}

// dueDate is exposed for tests of payment-terms arithmetic.
func dueDate(issue time.Time, termsDays int) string {
	if termsDays <= 0 {
		termsDays = defaultPaymentTermsDays
	}
	return issue.AddDate(0, 0, termsDays).Format("2006-01-02")
}
