package procurement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastano/fogon-api/internal/application/dto"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

// UseCase concilia órdenes de compra en vuelo contra el stock: agrega las
// cantidades pendientes por materia prima como stock "confirmado/en tránsito".
// El valor es informativo: se reporta junto al stock actual, nunca sumado a él
// (la recepción real entra como movimiento PURCHASE cuando ocurre).
type UseCase struct {
	poRepo       repository.PurchaseOrderRepository
	materialRepo repository.RawMaterialRepository
}

// NewUseCase construye el conciliador.
func NewUseCase(poRepo repository.PurchaseOrderRepository, materialRepo repository.RawMaterialRepository) *UseCase {
	return &UseCase{poRepo: poRepo, materialRepo: materialRepo}
}

// Outstanding devuelve la cantidad pendiente de una línea: max(0, pedida - recibida).
func Outstanding(line entity.PurchaseOrderLine) decimal.Decimal {
	pending := line.QuantityOrdered.Sub(line.QuantityReceived)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// ConfirmedStock suma las cantidades pendientes de las líneas de órdenes abiertas
// (SENT, CONFIRMED, SHIPPED, PARTIAL) que referencian la materia prima. Órdenes
// CANCELLED o COMPLETED no cuentan.
func (uc *UseCase) ConfirmedStock(ctx context.Context, venueID, rawMaterialID string) (decimal.Decimal, error) {
	material, err := uc.materialRepo.GetByID(ctx, rawMaterialID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if material == nil {
		return decimal.Decimal{}, domain.ErrNotFound
	}
	if material.VenueID != venueID {
		return decimal.Decimal{}, domain.ErrForbidden
	}

	lines, err := uc.poRepo.OpenLinesByMaterial(ctx, venueID, rawMaterialID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(Outstanding(line))
	}
	return total, nil
}

// InTransitReport devuelve, por materia prima de la sede con pendientes, el stock
// actual y el confirmado/en tránsito lado a lado.
func (uc *UseCase) InTransitReport(ctx context.Context, venueID string) (*dto.InTransitReportResponse, error) {
	lines, err := uc.poRepo.OpenLinesByVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	confirmedByMaterial := make(map[string]decimal.Decimal)
	for _, line := range lines {
		confirmedByMaterial[line.RawMaterialID] = confirmedByMaterial[line.RawMaterialID].Add(Outstanding(line))
	}

	resp := &dto.InTransitReportResponse{Items: make([]dto.InTransitRow, 0, len(confirmedByMaterial))}
	for materialID, confirmed := range confirmedByMaterial {
		if confirmed.IsZero() {
			continue
		}
		material, err := uc.materialRepo.GetByID(ctx, materialID)
		if err != nil {
			return nil, err
		}
		if material == nil || material.VenueID != venueID {
			continue
		}
		resp.Items = append(resp.Items, dto.InTransitRow{
			RawMaterialID:  materialID,
			SKU:            material.SKU,
			Name:           material.Name,
			CurrentStock:   material.CurrentStock,
			ConfirmedStock: confirmed,
		})
	}
	resp.Total = len(resp.Items)
	return resp, nil
}

// ListOrders lista órdenes de compra de la sede filtradas por estado (solo lectura).
func (uc *UseCase) ListOrders(ctx context.Context, venueID string, statuses []string) ([]dto.PurchaseOrderResponse, error) {
	orders, err := uc.poRepo.ListByVenue(ctx, venueID, statuses)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		or := dto.PurchaseOrderResponse{
			ID:           o.ID,
			SupplierName: o.SupplierName,
			Status:       o.Status,
			OrderedAt:    o.OrderedAt,
			ExpectedAt:   o.ExpectedAt,
		}
		for _, l := range o.Lines {
			or.Lines = append(or.Lines, dto.PurchaseOrderLineResponse{
				ID:               l.ID,
				RawMaterialID:    l.RawMaterialID,
				QuantityOrdered:  l.QuantityOrdered,
				QuantityReceived: l.QuantityReceived,
				Outstanding:      Outstanding(l),
				UnitCost:         l.UnitCost,
			})
		}
		resp = append(resp, or)
	}
	return resp, nil
}
