package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/procurement"
)

// ProcurementHandler consultas de órdenes de compra y stock en tránsito (protegido).
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// ListOrders godoc
// @Summary      Listar órdenes de compra (solo lectura)
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "estados separados por coma, ej. SENT,CONFIRMED"
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *ProcurementHandler) ListOrders(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var statuses []string
	if s := c.Query("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				statuses = append(statuses, part)
			}
		}
	}
	out, err := h.uc.ListOrders(c.Context(), venueID, statuses)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InTransitReport godoc
// @Summary      Stock actual vs. confirmado en tránsito
// @Description  El stock confirmado (órdenes SENT, CONFIRMED, SHIPPED, PARTIAL)
//
//	se reporta lado a lado; nunca se suma al stock actual.
//
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InTransitReportResponse
// @Router       /api/raw-materials/in-transit [get]
func (h *ProcurementHandler) InTransitReport(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.InTransitReport(c.Context(), venueID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
