package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/billing"
)

// InvoiceResult is the application-level view of an invoice, with the
// paid total and remaining balance resolved and overdue derived
// against the current time.
type InvoiceResult struct {
	ID            uuid.UUID             `json:"id"`
	ContractID    uuid.UUID             `json:"contract_id"`
	InvoiceNumber string                `json:"invoice_number"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	TaxAmount     decimal.Decimal       `json:"tax_amount"`
	Total         decimal.Decimal       `json:"total"`
	Status        billing.InvoiceStatus `json:"status"`
	// DueDate is a calendar date, rendered YYYY-MM-DD
	DueDate          string          `json:"due_date"`
	PaidAt           *time.Time      `json:"paid_at"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewInvoiceResult builds an InvoiceResult from an invoice and its paid total
func NewInvoiceResult(invoice *billing.Invoice, totalPaid decimal.Decimal, now time.Time) *InvoiceResult {
	return &InvoiceResult{
		ID:               invoice.ID,
		ContractID:       invoice.ContractID,
		InvoiceNumber:    invoice.InvoiceNumber,
		Subtotal:         invoice.Subtotal,
		TaxAmount:        invoice.TaxAmount,
		Total:            invoice.Total,
		Status:           invoice.DisplayStatus(now),
		DueDate:          invoice.DueDate.Format("2006-01-02"),
		PaidAt:           invoice.PaidAt,
		TotalPaid:        totalPaid,
		RemainingBalance: invoice.Total.Sub(totalPaid),
		CreatedAt:        invoice.CreatedAt,
	}
}

// ContractSummaryResult is the application-level view of a contract's
// financial summary. Percentages are display derivations rounded to
// two decimal places, zero when nothing has been invoiced.
type ContractSummaryResult struct {
	ContractID            uuid.UUID       `json:"contract_id"`
	UnitName              string          `json:"unit_name"`
	CustomerName          string          `json:"customer_name"`
	TotalInvoiced         decimal.Decimal `json:"total_invoiced"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	Outstanding           decimal.Decimal `json:"outstanding"`
	InvoicesCount         int             `json:"invoices_count"`
	LatestInvoiceDate     *time.Time      `json:"latest_invoice_date"`
	PaidPercentage        decimal.Decimal `json:"paid_percentage"`
	OutstandingPercentage decimal.Decimal `json:"outstanding_percentage"`
}

// NewContractSummaryResult builds a summary result for a contract
func NewContractSummaryResult(contract *billing.Contract, summary billing.ContractSummary) *ContractSummaryResult {
	return &ContractSummaryResult{
		ContractID:            contract.ID,
		UnitName:              contract.UnitName,
		CustomerName:          contract.CustomerName,
		TotalInvoiced:         summary.TotalInvoiced,
		TotalPaid:             summary.TotalPaid,
		Outstanding:           summary.Outstanding,
		InvoicesCount:         summary.InvoicesCount,
		LatestInvoiceDate:     summary.LatestInvoiceDate,
		PaidPercentage:        summary.PaidPercentage(),
		OutstandingPercentage: summary.OutstandingPercentage(),
	}
}

// PaymentResult is the application-level view of a recorded payment
type PaymentResult struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"payment_method"`
	Reference string          `json:"reference_number,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

// NewPaymentResult builds a PaymentResult from a payment record
func NewPaymentResult(payment *billing.Payment) *PaymentResult {
	return &PaymentResult{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Reference: payment.Reference,
		PaidAt:    payment.PaidAt,
	}
}

// InvoiceDetailResult pairs an invoice view with its payment history
type InvoiceDetailResult struct {
	InvoiceResult
	Payments []*PaymentResult `json:"payments"`
}
