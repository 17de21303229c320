package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/application/pricing"
	"github.com/trimworks/takeoff-api/internal/domain"
)

// PricingHandler handles the price catalog (protected, admin-only writes).
type PricingHandler struct {
	uc *pricing.UseCase
}

// NewPricingHandler builds the handler.
func NewPricingHandler(uc *pricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// List fetches every price entry of the tenant.
// GET /api/pricing
func (h *PricingHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(GetTenantID(c))
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(resp)
}

// Create appends a new price entry version.
// POST /api/pricing
func (h *PricingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Create(GetTenantID(c), in)
	if err != nil {
		return pricingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Deactivate retires a price entry.
// DELETE /api/pricing/:id
func (h *PricingHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetTenantID(c), c.Params("id")); err != nil {
		return pricingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export streams the active price list as an xlsx workbook.
// GET /api/pricing/export
func (h *PricingHandler) Export(c *fiber.Ctx) error {
	book, err := h.uc.Export(GetTenantID(c))
	if err != nil {
		return pricingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="price-list.xlsx"`)
	return c.Send(book)
}

func pricingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item, valid_from and non-negative costs are required"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "price entry already exists"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "price entry not found"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
