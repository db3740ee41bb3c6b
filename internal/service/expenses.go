package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetExpenses returns every expense.
func (s *Service) GetExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.api.GetRange(ctx, codec.ExpensesRange)
	if err != nil {
		return nil, s.translate(err, "expenses")
	}
	return codec.DecodeExpenses(rows), nil
}

// AddExpense validates, assigns an ID and appends the expense as Pending.
func (s *Service) AddExpense(ctx context.Context, expense model.Expense, userName string) (*model.Expense, error) {
	if err := validateExpense(&expense); err != nil {
		return nil, err
	}

	expense.ID = model.NewExpenseID(s.now())
	expense.Status = model.ExpensePending
	expense.SubmittedDate = s.today()
	if expense.SubmittedBy == "" {
		expense.SubmittedBy = userName
	}

	if err := s.api.AppendRows(ctx, codec.ExpensesRange, [][]string{codec.EncodeExpense(expense)}); err != nil {
		return nil, s.translate(err, "expenses")
	}

	s.recordActivity(ctx, model.ActivityExpenseCreated,
		fmt.Sprintf("Submitted expense %q for %.2f", expense.Description, expense.Amount),
		expense.ID, expense.Category, userName)

	return &expense, nil
}

// ApproveExpense marks a pending expense Approved, stamping the approver
// and date.
func (s *Service) ApproveExpense(ctx context.Context, expenseID, approver string) (*model.Expense, error) {
	return s.resolveExpense(ctx, expenseID, approver, model.ExpenseApproved)
}

// RejectExpense marks a pending expense Rejected, stamping the approver
// and date.
func (s *Service) RejectExpense(ctx context.Context, expenseID, approver string) (*model.Expense, error) {
	return s.resolveExpense(ctx, expenseID, approver, model.ExpenseRejected)
}

func (s *Service) resolveExpense(ctx context.Context, expenseID, approver string, status model.ExpenseStatus) (*model.Expense, error) {
	rows, err := s.api.GetRange(ctx, codec.ExpensesRange)
	if err != nil {
		return nil, s.translate(err, "expenses")
	}

	expenses := codec.DecodeExpenses(rows)
	index := -1
	for i := range expenses {
		if expenses[i].ID == expenseID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("expense", expenseID)
	}

	expense := expenses[index]
	if expense.Status != model.ExpensePending {
		return nil, domainErrorf("expense %s is already %s", expenseID, expense.Status)
	}

	expense.Status = status
	expense.ApprovedBy = approver
	expense.ApprovedDate = s.today()

	rowRange := rangeForRow(codec.ExpensesRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeExpense(expense)}); err != nil {
		return nil, s.translate(err, "expenses")
	}

	s.recordActivity(ctx, model.ActivityExpenseUpdated,
		fmt.Sprintf("Expense %s marked %s", expenseID, status),
		expense.ID, expense.Category, approver)

	return &expense, nil
}

func validateExpense(e *model.Expense) error {
	var v violations

	if e.ProjectID == "" {
		v.addf("project ID is required")
	}
	if e.Description == "" {
		v.addf("description is required")
	}
	if e.Amount <= 0 {
		v.addf("amount must be positive")
	}
	if e.ExpenseDate == "" {
		v.addf("expense date is required")
	} else if !validDate(e.ExpenseDate) {
		v.addf("expense date %q is not a valid date", e.ExpenseDate)
	}

	return v.err()
}
