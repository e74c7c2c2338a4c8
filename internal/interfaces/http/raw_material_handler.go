package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/catalog"
	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/reports"
	"github.com/dcastano/fogon-api/internal/application/stock"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
	"github.com/dcastano/fogon-api/pkg/validate"
)

// RawMaterialHandler maneja el catálogo de materias primas y su libro de stock (protegido).
type RawMaterialHandler struct {
	catalogUC *catalog.UseCase
	ledgerUC  *stock.LedgerUseCase
	reportsUC *reports.UseCase
}

// NewRawMaterialHandler construye el handler.
func NewRawMaterialHandler(catalogUC *catalog.UseCase, ledgerUC *stock.LedgerUseCase, reportsUC *reports.UseCase) *RawMaterialHandler {
	return &RawMaterialHandler{catalogUC: catalogUC, ledgerUC: ledgerUC, reportsUC: reportsUC}
}

// Create godoc
// @Summary      Crear materia prima
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRawMaterialRequest  true  "sku vacío = generado por el servidor"
// @Success      201   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-materials [post]
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.CreateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.catalogUC.Create(c.Context(), venueID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar materias primas
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "búsqueda por nombre, insensible a tildes"
// @Param        category       query  string  false  "filtrar por categoría"
// @Param        active         query  bool    false  "filtrar por activo/inactivo"
// @Param        below_reorder  query  bool    false  "solo bajo punto de reorden"
// @Param        limit          query  int     false  "default 20, max 100"
// @Param        offset         query  int     false  "default 0"
// @Success      200  {object}  dto.RawMaterialListResponse
// @Router       /api/raw-materials [get]
func (h *RawMaterialHandler) List(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	filter := repository.RawMaterialFilter{
		Search:       c.Query("search"),
		Category:     c.Query("category"),
		BelowReorder: c.QueryBool("below_reorder"),
	}
	if c.Query("active") != "" {
		active := c.QueryBool("active")
		filter.Active = &active
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.catalogUC.List(c.Context(), venueID, filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener materia prima
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.RawMaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [get]
func (h *RawMaterialHandler) GetByID(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.catalogUC.GetByID(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar materia prima (parcial)
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateRawMaterialRequest  true  "campos a modificar; current_stock no es editable"
// @Success      200   {object}  dto.RawMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [patch]
func (h *RawMaterialHandler) Update(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateRawMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.catalogUC.Update(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar materia prima
// @Description  Falla con 409 MATERIAL_IN_USE si alguna receta la referencia.
// @Tags         raw-materials
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id} [delete]
func (h *RawMaterialHandler) Delete(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	if err := h.catalogUC.Delete(c.Context(), venueID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateSku godoc
// @Summary      Generar SKU único para la sede
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GeneratedSkuResponse
// @Router       /api/raw-materials/generate-sku [get]
func (h *RawMaterialHandler) GenerateSku(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	sku, err := h.catalogUC.GenerateUniqueSku(c.Context(), venueID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.GeneratedSkuResponse{SKU: sku})
}

// Adjust godoc
// @Summary      Registrar movimiento de stock
// @Description  Delta con signo. Un ajuste mayor al 50%% del stock actual devuelve
//
//	409 CONFIRMATION_REQUIRED con proposal_id; reenviar con confirm=true.
//
// @Tags         raw-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la materia prima"
// @Param        body  body  dto.AdjustStockRequest  true  "type, quantity, unit_cost (PURCHASE), reason, reference, confirm, proposal_id"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/adjust [post]
func (h *RawMaterialHandler) Adjust(c *fiber.Ctx) error {
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
	movement, err := h.ledgerUC.Adjust(c.Context(), venueID, userID, stock.AdjustInput{
		RawMaterialID: c.Params("id"),
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		Reason:        in.Reason,
		Reference:     in.Reference,
		Confirm:       in.Confirm,
		ProposalID:    in.ProposalID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// Movements godoc
// @Summary      Historial de movimientos
// @Tags         raw-materials
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la materia prima"
// @Param        limit  query  int     false  "default 50"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/movements [get]
func (h *RawMaterialHandler) Movements(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	limit := c.QueryInt("limit", 50)
	movements, err := h.ledgerUC.History(c.Context(), venueID, c.Params("id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Total: len(items)})
}

// MovementsReport godoc
// @Summary      Reporte PDF de movimientos
// @Tags         raw-materials
// @Security     Bearer
// @Produce      application/pdf
// @Param        id     path   string  true   "ID de la materia prima"
// @Param        limit  query  int     false  "default 100"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/raw-materials/{id}/movements/report [get]
func (h *RawMaterialHandler) MovementsReport(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	pdfBytes, filename, err := h.reportsUC.MovementReport(c.Context(), venueID, c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		RawMaterialID: m.RawMaterialID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		UnitCost:      m.UnitCost,
		Reason:        m.Reason,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
