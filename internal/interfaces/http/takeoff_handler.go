package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trimworks/takeoff-api/internal/application/dto"
	"github.com/trimworks/takeoff-api/internal/application/takeoff"
	"github.com/trimworks/takeoff-api/internal/domain"
)

// TakeoffHandler handles takeoff CRUD and workflow (protected).
type TakeoffHandler struct {
	uc *takeoff.UseCase
}

// NewTakeoffHandler builds the handler.
func NewTakeoffHandler(uc *takeoff.UseCase) *TakeoffHandler {
	return &TakeoffHandler{uc: uc}
}

// Create stores a new draft takeoff.
// POST /api/takeoffs
func (h *TakeoffHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTakeoffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Create(GetTenantID(c), GetUserID(c), in)
	if err != nil {
		return takeoffError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update replaces the sections of a draft takeoff.
// PUT /api/takeoffs/:id
func (h *TakeoffHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTakeoffRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	resp, err := h.uc.Update(GetTenantID(c), c.Params("id"), in)
	if err != nil {
		return takeoffError(c, err)
	}
	return c.JSON(resp)
}

// Complete marks a draft takeoff ready for invoicing.
// POST /api/takeoffs/:id/complete
func (h *TakeoffHandler) Complete(c *fiber.Ctx) error {
	resp, err := h.uc.Complete(GetTenantID(c), c.Params("id"))
	if err != nil {
		return takeoffError(c, err)
	}
	return c.JSON(resp)
}

// GetByID fetches one takeoff.
// GET /api/takeoffs/:id
func (h *TakeoffHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(GetTenantID(c), c.Params("id"))
	if err != nil {
		return takeoffError(c, err)
	}
	return c.JSON(resp)
}

// List fetches all takeoffs of the tenant.
// GET /api/takeoffs
func (h *TakeoffHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.List(GetTenantID(c))
	if err != nil {
		return takeoffError(c, err)
	}
	return c.JSON(resp)
}

func takeoffError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid takeoff data"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "takeoff not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "access denied"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_DRAFT", Message: "only draft takeoffs can change"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
