package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/fogon-api/internal/domain"
	"github.com/dcastano/fogon-api/internal/domain/entity"
	"github.com/dcastano/fogon-api/internal/domain/repository"
	"github.com/dcastano/fogon-api/pkg/textutil"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

const rawMaterialColumns = `id, venue_id, sku, gtin, name, category, unit,
	current_stock, minimum_stock, reorder_point, maximum_stock,
	cost_per_unit, avg_cost_per_unit, perishable, shelf_life_days,
	active, description, created_at, updated_at`

// RawMaterialRepo implementación de RawMaterialRepository sobre PostgreSQL
// (usable con pool o tx).
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

// Create persiste una nueva materia prima. name_folded guarda el nombre sin
// tildes y en minúsculas para búsqueda insensible a acentos.
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		INSERT INTO raw_materials (` + rawMaterialColumns + `, name_folded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.VenueID, m.SKU, m.GTIN, m.Name, m.Category, m.Unit,
		m.CurrentStock, m.MinimumStock, m.ReorderPoint, m.MaximumStock,
		m.CostPerUnit, m.AvgCostPerUnit, m.Perishable, m.ShelfLifeDays,
		m.Active, m.Description, m.CreatedAt, m.UpdatedAt,
		textutil.Fold(m.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por ID.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return m, nil
}

// GetByVenueAndSKU obtiene una materia prima por sede y SKU.
func (r *RawMaterialRepo) GetByVenueAndSKU(ctx context.Context, venueID, sku string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE venue_id = $1 AND sku = $2`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, venueID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material by sku: %w", err)
	}
	return m, nil
}

// List lista materias primas por sede aplicando filtros y paginación.
func (r *RawMaterialRepo) List(ctx context.Context, venueID string, filter repository.RawMaterialFilter, limit, offset int) ([]*entity.RawMaterial, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE venue_id = $1`)
	args := []any{venueID}

	if filter.Search != "" {
		args = append(args, "%"+textutil.Fold(filter.Search)+"%")
		fmt.Fprintf(&sb, " AND name_folded LIKE $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		fmt.Fprintf(&sb, " AND category = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		fmt.Fprintf(&sb, " AND active = $%d", len(args))
	}
	if filter.BelowReorder {
		sb.WriteString(" AND current_stock <= reorder_point")
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, " ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		m, err := scanRawMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza los campos de catálogo y los de stock/costo. El caso de uso
// decide qué mutó; el repo persiste el agregado completo.
func (r *RawMaterialRepo) Update(ctx context.Context, m *entity.RawMaterial) error {
	query := `
		UPDATE raw_materials SET
			gtin = $2, name = $3, name_folded = $4, category = $5, unit = $6,
			current_stock = $7, minimum_stock = $8, reorder_point = $9, maximum_stock = $10,
			cost_per_unit = $11, avg_cost_per_unit = $12, perishable = $13, shelf_life_days = $14,
			active = $15, description = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.GTIN, m.Name, textutil.Fold(m.Name), m.Category, m.Unit,
		m.CurrentStock, m.MinimumStock, m.ReorderPoint, m.MaximumStock,
		m.CostPerUnit, m.AvgCostPerUnit, m.Perishable, m.ShelfLifeDays,
		m.Active, m.Description, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update raw material: %w", err)
	}
	return nil
}

// Delete elimina una materia prima por ID.
func (r *RawMaterialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM raw_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete raw material: %w", err)
	}
	return nil
}

// GetForUpdate obtiene la materia prima y bloquea la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM raw_materials WHERE id = $1 FOR UPDATE`
	m, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get raw material for update: %w", err)
	}
	return m, nil
}

func scanRawMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(
		&m.ID, &m.VenueID, &m.SKU, &m.GTIN, &m.Name, &m.Category, &m.Unit,
		&m.CurrentStock, &m.MinimumStock, &m.ReorderPoint, &m.MaximumStock,
		&m.CostPerUnit, &m.AvgCostPerUnit, &m.Perishable, &m.ShelfLifeDays,
		&m.Active, &m.Description, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
