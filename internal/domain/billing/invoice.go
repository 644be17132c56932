package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending       InvoiceStatus = "pending"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// Invoice represents a monthly rent invoice issued against a contract.
// Monetary fields are fixed at creation: total == subtotal + tax_amount
// and neither is ever recomputed afterwards; payments mutate only the
// status and paid_at fields.
type Invoice struct {
	shared.TenantAggregateRoot
	ContractID    uuid.UUID
	InvoiceNumber string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Status        InvoiceStatus
	DueDate       time.Time
	PaidAt        *time.Time
}

// NewInvoice creates a pending invoice for a contract. The caller is
// responsible for having computed tax from subtotal and for allocating
// a unique invoice number.
func NewInvoice(tenantID int64, contractID uuid.UUID, number string, subtotal, taxAmount decimal.Decimal, dueDate time.Time) *Invoice {
	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ContractID:          contractID,
		InvoiceNumber:       number,
		Subtotal:            subtotal.Round(2),
		TaxAmount:           taxAmount.Round(2),
		Total:               subtotal.Add(taxAmount).Round(2),
		Status:              InvoiceStatusPending,
		DueDate:             dueDate,
	}
}

// NextStatus returns the status an invoice reaches once totalPaid has
// been recorded against total. Terminal statuses are absorbing. It is
// a pure function of its inputs.
func NextStatus(current InvoiceStatus, totalPaid, total decimal.Decimal) InvoiceStatus {
	switch current {
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return current
	}
	if totalPaid.GreaterThanOrEqual(total) {
		return InvoiceStatusPaid
	}
	if totalPaid.IsPositive() {
		return InvoiceStatusPartiallyPaid
	}
	return InvoiceStatusPending
}

// CanAcceptPayment returns a domain error if the invoice's current
// status forbids recording a payment
func (i *Invoice) CanAcceptPayment() error {
	switch i.Status {
	case InvoiceStatusCancelled:
		return shared.NewDomainError("INVALID_STATE", "Cannot pay cancelled invoice")
	case InvoiceStatusPaid:
		return shared.NewDomainError("INVALID_STATE", "Invoice already paid")
	}
	return nil
}

// ApplyPayment validates a payment amount against the remaining balance
// and transitions the invoice status. totalPaidBefore is the sum of all
// previously recorded payments; now stamps paid_at when the invoice
// settles in full.
func (i *Invoice) ApplyPayment(amount, totalPaidBefore decimal.Decimal, now time.Time) error {
	if err := i.CanAcceptPayment(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_ARGUMENT", "Payment amount must be greater than zero")
	}
	remaining := i.Total.Sub(totalPaidBefore)
	if amount.GreaterThan(remaining) {
		return shared.NewDomainError("INVALID_ARGUMENT",
			fmt.Sprintf("Payment amount %s exceeds remaining balance %s", amount.StringFixed(2), remaining.StringFixed(2)))
	}

	totalPaid := totalPaidBefore.Add(amount)
	i.Status = NextStatus(i.Status, totalPaid, i.Total)
	if i.Status == InvoiceStatusPaid && i.PaidAt == nil {
		paidAt := now
		i.PaidAt = &paidAt
	}
	i.IncrementVersion()
	return nil
}

// Cancel administratively voids a pending invoice. Invoices that have
// received payments cannot be cancelled.
func (i *Invoice) Cancel() error {
	if i.Status != InvoiceStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending invoices can be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.IncrementVersion()
	return nil
}

// IsOverdue reports whether the invoice is unpaid past its due date.
// Overdue is derived at read time; the persisted status stays pending
// or partially_paid.
func (i *Invoice) IsOverdue(now time.Time) bool {
	switch i.Status {
	case InvoiceStatusPending, InvoiceStatusPartiallyPaid:
		return now.After(i.DueDate)
	}
	return false
}

// DisplayStatus returns the status with overdue derived against now
func (i *Invoice) DisplayStatus(now time.Time) InvoiceStatus {
	if i.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return i.Status
}
