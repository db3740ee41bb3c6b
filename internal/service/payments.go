package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
)

// GetPayments returns every payment.
func (s *Service) GetPayments(ctx context.Context) ([]model.Payment, error) {
	rows, err := s.api.GetRange(ctx, codec.PaymentsRange)
	if err != nil {
		return nil, s.translate(err, "payments")
	}
	return codec.DecodePayments(rows), nil
}

// RecordPayment appends the payment row and then rewrites the parent
// invoice: paid amount grows by the payment, the balance is recomputed
// from the total, and the status flips to Paid once the balance reaches
// zero. The two writes are not atomic; the payment row is the source of
// truth if the invoice rewrite fails.
func (s *Service) RecordPayment(ctx context.Context, payment model.Payment, userName string) (*model.Payment, error) {
	if err := validatePayment(&payment); err != nil {
		return nil, err
	}

	rows, err := s.api.GetRange(ctx, codec.InvoicesRange)
	if err != nil {
		return nil, s.translate(err, "invoices")
	}

	invoices := codec.DecodeInvoices(rows)
	index := -1
	for i := range invoices {
		if invoices[i].ID == payment.InvoiceID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, notFound("invoice", payment.InvoiceID)
	}

	invoice := invoices[index]
	if payment.Amount > invoice.BalanceAmount {
		return nil, domainErrorf("payment of %.2f exceeds invoice balance of %.2f",
			payment.Amount, invoice.BalanceAmount)
	}

	payment.ID = model.NewPaymentID(s.now())
	payment.RecordedDate = s.today()
	if payment.RecordedBy == "" {
		payment.RecordedBy = userName
	}

	if err := s.api.AppendRows(ctx, codec.PaymentsRange, [][]string{codec.EncodePayment(payment)}); err != nil {
		return nil, s.translate(err, "payments")
	}

	invoice.ApplyPayment(payment.Amount, s.today())

	rowRange := rangeForRow(codec.InvoicesRange, sheetRow(index))
	if err := s.api.UpdateRange(ctx, rowRange, [][]string{codec.EncodeInvoice(invoice)}); err != nil {
		// The payment row is already appended; surface the inconsistency
		// instead of pretending the whole operation failed cleanly.
		s.logger.Error("payment recorded but invoice update failed",
			"payment_id", payment.ID, "invoice_id", invoice.ID, "error", err)
		return nil, s.translate(err, "invoices")
	}

	s.recordActivity(ctx, model.ActivityPaymentRecorded,
		fmt.Sprintf("Recorded payment of %.2f against invoice %s", payment.Amount, invoice.InvoiceNumber),
		payment.ID, invoice.InvoiceNumber, userName)

	return &payment, nil
}

func validatePayment(p *model.Payment) error {
	var v violations

	if p.InvoiceID == "" {
		v.addf("invoice ID is required")
	}
	if p.Amount <= 0 {
		v.addf("amount must be positive")
	}
	if p.PaymentDate == "" {
		v.addf("payment date is required")
	} else if !validDate(p.PaymentDate) {
		v.addf("payment date %q is not a valid date", p.PaymentDate)
	}

	return v.err()
}
