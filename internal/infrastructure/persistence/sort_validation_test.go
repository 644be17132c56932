package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase ASC", "ASC", "ASC"},
		{"lowercase asc", "asc", "ASC"},
		{"mixed case", "Asc", "ASC"},
		{"with whitespace", "  asc  ", "ASC"},
		{"uppercase DESC", "DESC", "DESC"},
		{"lowercase desc", "desc", "DESC"},
		{"empty defaults to DESC", "", "DESC"},
		{"garbage defaults to DESC", "sideways", "DESC"},
		{"injection attempt defaults to DESC", "ASC; DROP TABLE invoices", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		fallback string
		expected string
	}{
		{"allowed field", "due_date", InvoiceSortFields, "created_at", "due_date"},
		{"disallowed field", "secret_column", InvoiceSortFields, "created_at", "created_at"},
		{"empty input", "", InvoiceSortFields, "created_at", "created_at"},
		{"whitespace only", "   ", ContractSortFields, "created_at", "created_at"},
		{"contract field", "rent_amount", ContractSortFields, "created_at", "rent_amount"},
		{"payment field", "paid_at", PaymentSortFields, "created_at", "paid_at"},
		{"injection attempt", "total; --", InvoiceSortFields, "created_at", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, tt.fallback))
		})
	}
}
