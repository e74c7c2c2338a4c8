package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrNegativeStock          = errors.New("el ajuste dejaría el stock en negativo")
	ErrDuplicateRecipe        = errors.New("el producto ya tiene una receta")
	ErrEmptyRecipe            = errors.New("la receta debe tener al menos un ingrediente")
	ErrNoPolicy               = errors.New("el producto no tiene política de precios")
	ErrInvalidTarget          = errors.New("porcentaje objetivo de costo inválido")
	ErrSkuGenerationExhausted = errors.New("no se pudo generar un SKU único")
)

// MaterialInUseError bloquea la eliminación de una materia prima referenciada por recetas.
type MaterialInUseError struct {
	RecipeCount int
}

func (e *MaterialInUseError) Error() string {
	return fmt.Sprintf("la materia prima está en uso por %d receta(s)", e.RecipeCount)
}

// ConfirmationRequiredError no es un fallo: señala que un ajuste grande quedó
// propuesto y requiere una segunda llamada con el token de confirmación.
type ConfirmationRequiredError struct {
	ProposalID string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("ajuste grande: requiere confirmación (propuesta %s)", e.ProposalID)
}
