package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/products"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/pkg/validate"
)

// ProductHandler maneja productos vendibles y su inventario por unidades (protegido).
type ProductHandler struct {
	uc        *products.UseCase
	inventory *products.InventoryAdapter
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *products.UseCase, inventory *products.InventoryAdapter) *ProductHandler {
	return &ProductHandler{uc: uc, inventory: inventory}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "track_inventory=true exige inventory_method=QUANTITY"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Create(c.Context(), venueID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "default 20, max 100"
// @Param        offset  query  int  false  "default 0"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.List(c.Context(), venueID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateProductRequest  true  "stock y método de inventario no se tocan aquí"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Update(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Falla con 409 si el producto tiene receta.
// @Tags         products
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), venueID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Registrar movimiento de stock del producto
// @Description  Solo productos con inventory_method=QUANTITY. Misma regla de
//
//	ajuste grande que las materias primas (409 CONFIRMATION_REQUIRED).
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "type, quantity, reason, reference, confirm, proposal_id"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/adjust [post]
func (h *ProductHandler) Adjust(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	userID := GetUserID(c)
	if venueID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	movement, err := h.inventory.AdjustStock(c.Context(), venueID, userID, products.AdjustInput{
		ProductID:  c.Params("id"),
		Type:       in.Type,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Reference:  in.Reference,
		Confirm:    in.Confirm,
		ProposalID: in.ProposalID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductMovementResponse(movement))
}

// Movements godoc
// @Summary      Historial de movimientos del producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        limit  query  int     false  "default 50"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	limit := c.QueryInt("limit", 50)
	movements, err := h.inventory.History(c.Context(), venueID, c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toProductMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}

// ConvertToRecipe godoc
// @Summary      Convertir de conteo de unidades a control por receta
// @Description  Conversión explícita y de una sola vía. El body incluye la receta
//
//	inicial para que el producto nunca quede sin método de control.
//
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ConvertToRecipeRequest  true  "receta inicial"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/convert-to-recipe [post]
func (h *ProductHandler) ConvertToRecipe(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.ConvertToRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.inventory.ConvertToRecipeTracking(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func toProductMovementResponse(m *entity.ProductStockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
