package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trimworks/takeoff-api/internal/application/billing"
	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/domain"
)

// InvoiceHandler handles invoice generation and retrieval (protected).
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Generate prices 1 to 5 completed takeoffs into one invoice.
// POST /api/invoices
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Generate(c.Context(), GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List fetches all invoices of the tenant, headers only.
// GET /api/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(GetTenantID(c))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(resp)
}

// GetByID fetches one invoice with its recomputed form lines.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetDetail(GetTenantID(c), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(resp)
}

// DownloadPDF renders and streams the printable form.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, name, err := h.uc.RenderPDF(GetTenantID(c), c.Params("id"))
	if err != nil {
		return invoiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(pdf)
}

// UpdateStatus applies one workflow transition.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.UpdateStatus(GetTenantID(c), c.Params("id"), in.Status)
	if err != nil {
		return invoiceError(c, err)
	}
	return c.JSON(resp)
}

func invoiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request"})
	case errors.Is(err, domain.ErrTooManyJobs):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BATCH", Message: "an invoice bills 1 to 5 takeoffs"})
	case errors.Is(err, domain.ErrTakeoffNotBilled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_COMPLETE", Message: "only completed takeoffs can be invoiced"})
	case errors.Is(err, domain.ErrPriceAmbiguous):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PRICE_AMBIGUOUS", Message: "two price entries share the same effective date"})
	case errors.Is(err, domain.ErrBadStatusChange):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BAD_TRANSITION", Message: "illegal status transition"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invoice or takeoff not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
