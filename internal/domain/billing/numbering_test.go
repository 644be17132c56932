package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "202601", MonthKey(time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "202612", MonthKey(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		tenantID int64
		monthKey string
		sequence int
		want     string
	}{
		{"small tenant and sequence", 1, "202601", 1, "INV-001-202601-0001"},
		{"three digit tenant", 123, "202612", 42, "INV-123-202612-0042"},
		{"four digit sequence", 7, "202607", 9999, "INV-007-202607-9999"},
		{"sequence beyond padding", 7, "202607", 10001, "INV-007-202607-10001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInvoiceNumber(tt.tenantID, tt.monthKey, tt.sequence))
		})
	}
}

func TestNumberPrefix(t *testing.T) {
	assert.Equal(t, "INV-001-202601-", NumberPrefix(1, "202601"))
}

func TestSequenceFromNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   int
	}{
		{"normal number", "INV-001-202601-0042", 42},
		{"first in month", "INV-001-202601-0001", 1},
		{"malformed suffix", "INV-001-202601-abcd", 0},
		{"no separator", "garbage", 0},
		{"trailing separator", "INV-001-202601-", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SequenceFromNumber(tt.number))
		})
	}
}
