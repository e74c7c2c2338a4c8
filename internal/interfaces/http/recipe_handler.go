package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/application/recipes"
	"github.com/dcastano/fogon-api/pkg/validate"
)

// RecipeHandler maneja las recetas de productos (protegido).
type RecipeHandler struct {
	uc *recipes.UseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipes.UseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear receta del producto
// @Description  Un producto tiene a lo sumo una receta (409 si ya existe o si
//
//	controla inventario por unidades).
//
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CreateRecipeRequest  true  "portion_yield >= 1, al menos una línea"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [post]
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.Create(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener receta con costos derivados
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [get]
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), venueID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cabecera de la receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateRecipeRequest  true  "campos a modificar"
// @Success      200   {object}  dto.RecipeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [patch]
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateRecipeRequest
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
// @Summary      Eliminar receta
// @Description  El producto vuelve a track_inventory=false.
// @Tags         recipes
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), venueID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLine godoc
// @Summary      Agregar línea a la receta
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RecipeLineInput  true  "raw_material_id, quantity > 0"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe/lines [post]
func (h *RecipeHandler) AddLine(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	var in dto.RecipeLineInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	if err := validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	out, err := h.uc.AddLine(c.Context(), venueID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveLine godoc
// @Summary      Quitar línea de la receta
// @Description  Idempotente: quitar una línea inexistente devuelve la receta sin cambios.
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del producto"
// @Param        lineId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.RecipeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/recipe/lines/{lineId} [delete]
func (h *RecipeHandler) RemoveLine(c *fiber.Ctx) error {
	venueID := GetVenueID(c)
	if venueID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.RemoveLine(c.Context(), venueID, c.Params("id"), c.Params("lineId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
