package dto

import (
	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest body for POST /api/invoices. One to five completed
// takeoffs billed together on a single form.
type GenerateInvoiceRequest struct {
	TakeoffIDs []string `json:"takeoff_ids"`
}

// InvoiceJobResponse stored per-takeoff summary row.
type InvoiceJobResponse struct {
	TakeoffID string          `json:"takeoff_id"`
	Position  int             `json:"position"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// PackedLineResponse one category row of the printed form. Slots follow the
// fixed 10-slot layout (slot 2k = amount, 2k+1 = quantity for column k);
// null means the form prints a blank there.
type PackedLineResponse struct {
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Slots       [10]*string `json:"slots"`
}

// InvoiceResponse invoice header for POST /api/invoices and list endpoints.
// UnpricedCategories carries per-job pricing gaps found at generation time;
// the totals already reflect the zero amounts.
type InvoiceResponse struct {
	ID                 string               `json:"id"`
	TenantID           string               `json:"tenant_id"`
	Number             string               `json:"number"`
	Status             string               `json:"status"`
	GeneratedBy        string               `json:"generated_by"`
	GeneratedDate      string               `json:"generated_date"`
	Jobs               []InvoiceJobResponse `json:"jobs"`
	Subtotal           decimal.Decimal      `json:"subtotal"`
	Tax                decimal.Decimal      `json:"tax"`
	Total              decimal.Decimal      `json:"total"`
	UnpricedCategories []string             `json:"unpriced_categories,omitempty"`
}

// InvoiceDetailResponse invoice with the recomputed form lines for
// GET /api/invoices/:id.
type InvoiceDetailResponse struct {
	InvoiceResponse
	Lines []PackedLineResponse `json:"lines"`
}

// UpdateInvoiceStatusRequest body for PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"` // issued | paid | cancelled
}
