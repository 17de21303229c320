package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trimworks/takeoff-api/internal/domain/billing"
)

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-001", billing.FormatInvoiceNumber(2026, 1))
	assert.Equal(t, "INV-2026-042", billing.FormatInvoiceNumber(2026, 42))
	assert.Equal(t, "INV-2027-100", billing.FormatInvoiceNumber(2027, 100))
	// padding widens past 999 instead of truncating
	assert.Equal(t, "INV-2026-1000", billing.FormatInvoiceNumber(2026, 1000))
}
