package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// defaultReportLimit movimientos incluidos cuando el caller no fija límite.
const defaultReportLimit = 100

// MovementReportPDFGenerator renderiza el reporte de movimientos de un insumo.
// La implementación vive en infrastructure/pdf.
type MovementReportPDFGenerator interface {
	GenerateMovementReport(ctx context.Context, venue *entity.Venue, material *entity.RawMaterial, movements []*entity.StockMovement) ([]byte, error)
}

// UseCase genera reportes PDF del libro de stock.
type UseCase struct {
	materialRepo repository.RawMaterialRepository
	movementRepo repository.StockMovementRepository
	venueRepo    repository.VenueRepository
	generator    MovementReportPDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	materialRepo repository.RawMaterialRepository,
	movementRepo repository.StockMovementRepository,
	venueRepo repository.VenueRepository,
	generator MovementReportPDFGenerator,
) *UseCase {
	return &UseCase{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		venueRepo:    venueRepo,
		generator:    generator,
	}
}

// MovementReport genera el PDF de movimientos de un insumo y devuelve
// bytes + nombre de archivo sugerido.
func (uc *UseCase) MovementReport(ctx context.Context, venueID, materialID string, limit int) ([]byte, string, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}
	material, err := uc.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return nil, "", err
	}
	if material == nil || material.VenueID != venueID {
		return nil, "", domain.ErrNotFound
	}
	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		return nil, "", err
	}
	movements, err := uc.movementRepo.ListByMaterial(ctx, venueID, materialID, limit)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateMovementReport(ctx, venue, material, movements)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("movimientos_%s_%s.pdf", material.SKU, time.Now().Format("20060102"))
	return pdf, filename, nil
}
