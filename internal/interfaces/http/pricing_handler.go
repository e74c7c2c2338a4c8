package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/pricing"
	"github.com/dcastano/fogon-api/pkg/validate"
)

// PricingHandler maneja políticas de precio y cálculo de precio sugerido (protegido).
type PricingHandler struct {
	uc *pricing.UseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.UseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// GetPolicy godoc
// @Summary      Obtener política de precios
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.PricingPolicyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/pricing-policy [get]
func (h *PricingHandler) GetPolicy(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetPolicy(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpsertPolicy godoc
// @Summary      Crear o reemplazar política de precios
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpsertPricingPolicyRequest  true  "strategy MANUAL | AUTO_MARKUP | AUTO_TARGET_MARGIN"
// @Success      200   {object}  dto.PricingPolicyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/pricing-policy [put]
func (h *PricingHandler) UpsertPolicy(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.UpsertPricingPolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.UpsertPolicy(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calculate godoc
// @Summary      Calcular precio sugerido y rentabilidad
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.PriceCalculationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/pricing/calculate [get]
func (h *PricingHandler) Calculate(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Calculate(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApplySuggested godoc
// @Summary      Aplicar el precio sugerido al producto
// @Tags         pricing
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ApplySuggestedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/pricing/apply-suggested [post]
func (h *PricingHandler) ApplySuggested(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ApplySuggested(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
