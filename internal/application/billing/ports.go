package billing

import (
	"context"

	"github.com/trimworks/takeoff-api/internal/domain/billing"
	"github.com/trimworks/takeoff-api/internal/domain/entity"
	"github.com/trimworks/takeoff-api/internal/domain/repository"
)

// BillingTxRunner runs a function inside one transaction spanning the invoice
// and takeoff repositories. Number allocation, invoice insert and the takeoff
// status flips commit or roll back together.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		takeoffRepo repository.TakeoffRepository,
	) error) error
}

// InvoicePDFGenerator renders the five-column invoice form. Takeoffs arrive
// in column order (the invoice's job positions).
type InvoicePDFGenerator interface {
	Render(inv *entity.Invoice, agg *billing.AggregateResult, takeoffs []*entity.Takeoff) ([]byte, error)
}
