package reports_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/fogon-api/internal/application/reports"
	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
)

const testVenue = "venue-1"

// ── fakes en memoria ─────────────────────────────────────────────────────────

type fakeMaterialRepo struct {
	materials map[string]*entity.RawMaterial
}

func (r *fakeMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *fakeMaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterialRepo) GetByVenueAndSKU(context.Context, string, string) (*entity.RawMaterial, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) List(context.Context, string, repository.RawMaterialFilter, int, int) ([]*entity.RawMaterial, error) {
	return nil, nil
}

func (r *fakeMaterialRepo) Update(context.Context, *entity.RawMaterial) error { return nil }
func (r *fakeMaterialRepo) Delete(context.Context, string) error              { return nil }
func (r *fakeMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	return r.GetByID(ctx, id)
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
	lastLimit int
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(context.Context, string) (*entity.StockMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByMaterial(_ context.Context, venueID, rawMaterialID string, limit int) ([]*entity.StockMovement, error) {
	r.lastLimit = limit
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.VenueID == venueID && m.RawMaterialID == rawMaterialID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeVenueRepo struct {
	venues map[string]*entity.Venue
}

func (r *fakeVenueRepo) Create(_ context.Context, v *entity.Venue) error {
	cp := *v
	r.venues[v.ID] = &cp
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id string) (*entity.Venue, error) {
	v, ok := r.venues[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

// fakeGenerator captura lo que se le pide renderizar.
type fakeGenerator struct {
	venue     *entity.Venue
	material  *entity.RawMaterial
	movements []*entity.StockMovement
}

func (g *fakeGenerator) GenerateMovementReport(_ context.Context, venue *entity.Venue, material *entity.RawMaterial, movements []*entity.StockMovement) ([]byte, error) {
	g.venue = venue
	g.material = material
	g.movements = movements
	return []byte("%PDF-1.7 fake"), nil
}

func setup() (*reports.UseCase, *fakeMovementRepo, *fakeGenerator) {
	materials := &fakeMaterialRepo{materials: map[string]*entity.RawMaterial{
		"mat-harina": {
			ID: "mat-harina", VenueID: testVenue, SKU: "H000001", Name: "Harina de trigo",
			Unit: entity.UnitKilogram, CurrentStock: decimal.NewFromInt(10), Active: true,
		},
	}}
	movements := &fakeMovementRepo{movements: []*entity.StockMovement{
		{ID: "mov-1", VenueID: testVenue, RawMaterialID: "mat-harina", Type: entity.MovementTypePURCHASE, Quantity: decimal.NewFromInt(10)},
		{ID: "mov-2", VenueID: testVenue, RawMaterialID: "mat-harina", Type: entity.MovementTypeUSAGE, Quantity: decimal.NewFromInt(-3)},
	}}
	venues := &fakeVenueRepo{venues: map[string]*entity.Venue{
		testVenue: {ID: testVenue, Name: "El Fogón Centro"},
	}}
	generator := &fakeGenerator{}
	return reports.NewUseCase(materials, movements, venues, generator), movements, generator
}

// ── tests ────────────────────────────────────────────────────────────────────

// TestMovementReport_GeneraPDFConNombre: el nombre incluye SKU y fecha del día,
// y el generador recibe sede, insumo y movimientos.
func TestMovementReport_GeneraPDFConNombre(t *testing.T) {
	uc, _, generator := setup()

	pdf, filename, err := uc.MovementReport(context.Background(), testVenue, "mat-harina", 50)

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	expected := fmt.Sprintf("movimientos_H000001_%s.pdf", time.Now().Format("20060102"))
	assert.Equal(t, expected, filename)

	require.NotNil(t, generator.venue)
	assert.Equal(t, "El Fogón Centro", generator.venue.Name)
	assert.Equal(t, "mat-harina", generator.material.ID)
	assert.Len(t, generator.movements, 2)
}

// TestMovementReport_LimitePorDefecto: sin límite explícito se piden 100.
func TestMovementReport_LimitePorDefecto(t *testing.T) {
	uc, movements, _ := setup()

	_, _, err := uc.MovementReport(context.Background(), testVenue, "mat-harina", 0)

	require.NoError(t, err)
	assert.Equal(t, 100, movements.lastLimit)
}

// TestMovementReport_SedeAjena: para reportes la pertenencia se trata como
// inexistencia, sin filtrar datos de otra sede.
func TestMovementReport_SedeAjena(t *testing.T) {
	uc, _, _ := setup()

	_, _, err := uc.MovementReport(context.Background(), "venue-ajena", "mat-harina", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementReport_MateriaInexistente(t *testing.T) {
	uc, _, _ := setup()

	_, _, err := uc.MovementReport(context.Background(), testVenue, "mat-fantasma", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
