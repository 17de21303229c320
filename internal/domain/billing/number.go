package billing

import "fmt"

// FormatInvoiceNumber renders the human-readable invoice number for a tenant's
// yearly sequence: INV-2026-007. Sequences are zero-padded to three digits but
// keep growing past 999.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("INV-%d-%03d", year, seq)
}
