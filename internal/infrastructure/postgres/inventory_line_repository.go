package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.InventoryLineRepository = (*InventoryLineRepo)(nil)

// lineSelect resuelve los nombres de catálogos; FOR UPDATE debe usar "OF l" por los LEFT JOIN.
const lineSelect = `
	SELECT l.id, l.category_id, l.client_id, l.brand_id, l.variety_id, l.presentation_id, l.supplier_id,
	       l.shipment_type, l.lot_code, l.quantity, l.min_quantity, l.unit, l.active,
	       l.last_updated, l.created_at, l.updated_at,
	       c.name, COALESCE(cl.name, ''), COALESCE(b.name, ''), COALESCE(v.name, ''),
	       COALESCE(p.volume, ''), COALESCE(s.name, '')
	FROM inventory_lines l
	JOIN categories c ON c.id = l.category_id
	LEFT JOIN clients cl ON cl.id = l.client_id
	LEFT JOIN brands b ON b.id = l.brand_id
	LEFT JOIN varieties v ON v.id = l.variety_id
	LEFT JOIN presentations p ON p.id = l.presentation_id
	LEFT JOIN suppliers s ON s.id = l.supplier_id`

func scanLine(row pgx.Row) (*entity.InventoryLine, error) {
	var l entity.InventoryLine
	err := row.Scan(
		&l.ID, &l.CategoryID, &l.ClientID, &l.BrandID, &l.VarietyID, &l.PresentationID, &l.SupplierID,
		&l.ShipmentType, &l.LotCode, &l.Quantity, &l.MinQuantity, &l.Unit, &l.Active,
		&l.LastUpdated, &l.CreatedAt, &l.UpdatedAt,
		&l.CategoryName, &l.ClientName, &l.BrandName, &l.VarietyName,
		&l.PresentationName, &l.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// InventoryLineRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryLineRepo struct {
	q Querier
}

// NewInventoryLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLineRepository(q Querier) *InventoryLineRepo {
	return &InventoryLineRepo{q: q}
}

// Create persiste una línea nueva. Un lot_code repetido devuelve ErrDuplicate.
func (r *InventoryLineRepo) Create(ctx context.Context, l *entity.InventoryLine) error {
	query := `
		INSERT INTO inventory_lines (id, category_id, client_id, brand_id, variety_id, presentation_id, supplier_id,
			shipment_type, lot_code, quantity, min_quantity, unit, active, last_updated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CategoryID, l.ClientID, l.BrandID, l.VarietyID, l.PresentationID, l.SupplierID,
		l.ShipmentType, l.LotCode, l.Quantity, l.MinQuantity, l.Unit, l.Active,
		l.LastUpdated, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, l.LotCode)
		}
		return fmt.Errorf("insert inventory line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea con nombres de catálogos.
func (r *InventoryLineRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.get(ctx, lineSelect+` WHERE l.id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila de la línea.
func (r *InventoryLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.get(ctx, lineSelect+` WHERE l.id = $1 FOR UPDATE OF l`, id)
}

func (r *InventoryLineRepo) get(ctx context.Context, query, id string) (*entity.InventoryLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory line: %w", err)
	}
	return l, nil
}

// Update persiste atributos descriptivos; quantity y last_updated no se tocan.
func (r *InventoryLineRepo) Update(ctx context.Context, l *entity.InventoryLine) error {
	query := `
		UPDATE inventory_lines SET category_id = $2, client_id = $3, brand_id = $4, variety_id = $5,
			presentation_id = $6, supplier_id = $7, shipment_type = $8, lot_code = $9,
			min_quantity = $10, unit = $11, active = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CategoryID, l.ClientID, l.BrandID, l.VarietyID, l.PresentationID, l.SupplierID,
		l.ShipmentType, l.LotCode, l.MinQuantity, l.Unit, l.Active, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lot_code %s", domain.ErrDuplicate, l.LotCode)
		}
		return fmt.Errorf("update inventory line: %w", err)
	}
	return nil
}

// UpdateQuantity única escritura de la cantidad.
func (r *InventoryLineRepo) UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_lines SET quantity = $2, last_updated = $3, updated_at = $3 WHERE id = $1`,
		id, quantity, at)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, id)
	}
	return nil
}

// SetActive activa o desactiva la línea (borrado lógico).
func (r *InventoryLineRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.Exec(ctx, `UPDATE inventory_lines SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set active inventory line: %w", err)
	}
	return nil
}

// List aplica los filtros; Active nil equivale a solo activas.
func (r *InventoryLineRepo) List(ctx context.Context, f entity.InventoryLineFilter) ([]*entity.InventoryLine, error) {
	var w filter
	active := true
	if f.Active != nil {
		active = *f.Active
	}
	w.add("l.active = $%d", active)
	if f.CategoryID != "" {
		w.add("l.category_id = $%d", f.CategoryID)
	}
	if f.ClientID != "" {
		w.add("l.client_id = $%d", f.ClientID)
	}
	if f.BrandID != "" {
		w.add("l.brand_id = $%d", f.BrandID)
	}
	if f.VarietyID != "" {
		w.add("l.variety_id = $%d", f.VarietyID)
	}
	if f.PresentationID != "" {
		w.add("l.presentation_id = $%d", f.PresentationID)
	}
	if f.ShipmentType != "" {
		w.add("l.shipment_type = $%d", f.ShipmentType)
	}
	if f.Search != "" {
		w.add(`l.lot_code ILIKE $%d ESCAPE '\'`, containsPattern(f.Search))
	}
	rows, err := r.q.Query(ctx, lineSelect+w.where()+` ORDER BY l.lot_code`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// listByIDs carga varias líneas de una vez (detalles de documentos).
func (r *InventoryLineRepo) listByIDs(ctx context.Context, ids []string) (map[string]*entity.InventoryLine, error) {
	out := make(map[string]*entity.InventoryLine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, lineSelect+` WHERE l.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list lines by id: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		out[l.ID] = l
	}
	return out, rows.Err()
}
