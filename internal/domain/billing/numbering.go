package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Invoice numbers follow INV-<tenant>-<YYYYMM>-<seq>: tenant zero-padded
// to three digits, month key from the issue date, sequence zero-padded
// to four digits and counted per tenant per month starting at 1.

// MonthKey returns the YYYYMM month key for an instant
func MonthKey(t time.Time) string {
	return t.Format("200601")
}

// FormatInvoiceNumber builds an invoice number from its parts
func FormatInvoiceNumber(tenantID int64, monthKey string, sequence int) string {
	return fmt.Sprintf("INV-%03d-%s-%04d", tenantID, monthKey, sequence)
}

// NumberPrefix returns the shared prefix of all invoice numbers a
// tenant can receive in a month, used to query for the latest sequence.
func NumberPrefix(tenantID int64, monthKey string) string {
	return fmt.Sprintf("INV-%03d-%s-", tenantID, monthKey)
}

// SequenceFromNumber extracts the numeric sequence from an invoice
// number. Returns 0 for a malformed number so that allocation restarts
// the month rather than failing.
func SequenceFromNumber(number string) int {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0
	}
	return seq
}
