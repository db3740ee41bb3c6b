package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/sheetboard/internal/codec"
	"github.com/Veraticus/sheetboard/internal/model"
	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentMock() *sheets.MockAPI {
	mock := sheets.NewMockAPI()
	mock.Ranges[codec.InvoicesRange] = table("Invoices", codec.EncodeInvoice(model.Invoice{
		ID: "INV-2026-0001", InvoiceNumber: "INV-2026-0001",
		ClientID: "CLIENT-1", ProjectID: "PROJ-1",
		Status: model.InvoiceSent, Subtotal: 450, TaxRate: 0.18,
		TaxAmount: 81, TotalAmount: 531, PaidAmount: 100, BalanceAmount: 431,
	}))
	return mock
}

func TestRecordPartialPayment(t *testing.T) {
	mock := paymentMock()
	svc := newTestService(mock)

	payment, err := svc.RecordPayment(context.Background(), model.Payment{
		InvoiceID:   "INV-2026-0001",
		PaymentDate: "2026-03-15",
		Amount:      100,
	}, "dana")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payment.ID, "PAY-"), "ID: %s", payment.ID)
	assert.Equal(t, "dana", payment.RecordedBy)
	assert.Equal(t, "2026-03-15", payment.RecordedDate)
	require.Len(t, mock.AppendedTo(codec.PaymentsRange), 1)

	require.Len(t, mock.UpdateCalls, 1)
	assert.Equal(t, "Invoices!A2:Q2", mock.UpdateCalls[0].Range)
	invoice := codec.DecodeInvoices(table("Invoices", mock.UpdateCalls[0].Rows[0]))[0]
	assert.Equal(t, 200.0, invoice.PaidAmount)
	assert.Equal(t, 331.0, invoice.BalanceAmount)
	assert.Equal(t, model.InvoiceSent, invoice.Status, "a partial payment does not settle the invoice")
}

func TestRecordFinalPaymentFlipsToPaid(t *testing.T) {
	mock := paymentMock()
	svc := newTestService(mock)

	_, err := svc.RecordPayment(context.Background(), model.Payment{
		InvoiceID:   "INV-2026-0001",
		PaymentDate: "2026-03-15",
		Amount:      431,
	}, "dana")
	require.NoError(t, err)

	require.Len(t, mock.UpdateCalls, 1)
	invoice := codec.DecodeInvoices(table("Invoices", mock.UpdateCalls[0].Rows[0]))[0]
	assert.Equal(t, 531.0, invoice.PaidAmount)
	assert.Equal(t, 0.0, invoice.BalanceAmount)
	assert.Equal(t, model.InvoicePaid, invoice.Status)
	assert.Equal(t, "2026-03-15", invoice.PaymentDate)
}

func TestRecordPaymentExceedingBalance(t *testing.T) {
	mock := paymentMock()
	svc := newTestService(mock)

	_, err := svc.RecordPayment(context.Background(), model.Payment{
		InvoiceID:   "INV-2026-0001",
		PaymentDate: "2026-03-15",
		Amount:      431.01,
	}, "dana")
	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.Contains(t, err.Error(), "exceeds invoice balance")
	assert.Empty(t, mock.AppendCalls, "an overpayment is rejected before any write")
	assert.Empty(t, mock.UpdateCalls)
}

func TestRecordPaymentValidation(t *testing.T) {
	mock := paymentMock()
	svc := newTestService(mock)

	_, err := svc.RecordPayment(context.Background(), model.Payment{Amount: -1}, "dana")
	require.Error(t, err)
	require.True(t, IsValidation(err))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3, "invoice ID, amount and date all flagged: %v", verr.Violations)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	mock := paymentMock()
	svc := newTestService(mock)

	_, err := svc.RecordPayment(context.Background(), model.Payment{
		InvoiceID: "INV-missing", PaymentDate: "2026-03-15", Amount: 10,
	}, "dana")
	assert.True(t, IsNotFound(err))
}

func TestRecordPaymentInvoiceRewriteFailureSurfaces(t *testing.T) {
	mock := paymentMock()
	mock.UpdateFunc = func(context.Context, string, [][]string) error {
		return errors.New("boom")
	}
	svc := newTestService(mock)

	_, err := svc.RecordPayment(context.Background(), model.Payment{
		InvoiceID: "INV-2026-0001", PaymentDate: "2026-03-15", Amount: 100,
	}, "dana")
	require.Error(t, err, "the caller must learn the invoice row is stale")
	assert.Len(t, mock.AppendedTo(codec.PaymentsRange), 1,
		"the payment row is already written and stays the source of truth")
}
