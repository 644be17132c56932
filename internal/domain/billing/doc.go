// Package billing contains the rental billing domain: contracts, the
// invoices generated against them, the payments recorded against those
// invoices, and the pure calculation components (tax rules, invoice
// numbering, lifecycle transitions, financial summaries) that the
// application layer composes into billing operations.
package billing
