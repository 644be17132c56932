package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractSummary is the financial rollup of a contract's invoices
type ContractSummary struct {
	TotalInvoiced     decimal.Decimal
	TotalPaid         decimal.Decimal
	Outstanding       decimal.Decimal
	InvoicesCount     int
	LatestInvoiceDate *time.Time
}

// InvoiceWithPaid pairs an invoice with the sum of its recorded payments
type InvoiceWithPaid struct {
	Invoice   *Invoice
	TotalPaid decimal.Decimal
}

// Summarize computes a contract's financial summary from its invoices
// and their paid totals. Every invoice counts toward the rollups
// regardless of status; cancelled invoices keep whatever was invoiced
// and paid on them in the totals.
func Summarize(invoices []InvoiceWithPaid) ContractSummary {
	summary := ContractSummary{
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
		Outstanding:   decimal.Zero,
		InvoicesCount: len(invoices),
	}
	for _, item := range invoices {
		summary.TotalInvoiced = summary.TotalInvoiced.Add(item.Invoice.Total)
		summary.TotalPaid = summary.TotalPaid.Add(item.TotalPaid)
		created := item.Invoice.CreatedAt
		if summary.LatestInvoiceDate == nil || created.After(*summary.LatestInvoiceDate) {
			latest := created
			summary.LatestInvoiceDate = &latest
		}
	}
	summary.Outstanding = summary.TotalInvoiced.Sub(summary.TotalPaid)
	return summary
}

// PaidPercentage returns totalPaid as a percentage of totalInvoiced,
// rounded to two decimal places, 0 when nothing has been invoiced.
// Percentages are display derivations and are never stored.
func (s ContractSummary) PaidPercentage() decimal.Decimal {
	if s.TotalInvoiced.IsZero() {
		return decimal.Zero
	}
	return s.TotalPaid.Div(s.TotalInvoiced).Mul(decimal.NewFromInt(100)).Round(2)
}

// OutstandingPercentage returns the outstanding share as a percentage,
// rounded to two decimal places, 0 when nothing has been invoiced.
func (s ContractSummary) OutstandingPercentage() decimal.Decimal {
	if s.TotalInvoiced.IsZero() {
		return decimal.Zero
	}
	return s.Outstanding.Div(s.TotalInvoiced).Mul(decimal.NewFromInt(100)).Round(2)
}
