package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.ProductionLotRepository = (*ProductionLotRepo)(nil)

const lotSelect = `
	SELECT id, client_id, brand_id, variety_id, presentation_id, lot_code, production_date,
	       bottles_produced, bottles_remaining, aging_process, aging_months, alcohol_grade,
	       status, notes, active, created_at, updated_at
	FROM production_lots`

func scanLot(row pgx.Row) (*entity.ProductionLot, error) {
	var l entity.ProductionLot
	if err := row.Scan(&l.ID, &l.ClientID, &l.BrandID, &l.VarietyID, &l.PresentationID, &l.LotCode, &l.ProductionDate,
		&l.BottlesProduced, &l.BottlesRemaining, &l.AgingProcess, &l.AgingMonths, &l.AlcoholGrade,
		&l.Status, &l.Notes, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// ProductionLotRepo lotes de producción sobre PostgreSQL. alcohol_grade es DECIMAL(4,2)
// y viaja como decimal.Decimal gracias al codec registrado en el pool.
type ProductionLotRepo struct {
	q Querier
}

// NewProductionLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionLotRepository(q Querier) *ProductionLotRepo {
	return &ProductionLotRepo{q: q}
}

// Create persiste un lote; lot_code repetido devuelve ErrDuplicate.
func (r *ProductionLotRepo) Create(ctx context.Context, l *entity.ProductionLot) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO production_lots (id, client_id, brand_id, variety_id, presentation_id, lot_code, production_date,
			bottles_produced, bottles_remaining, aging_process, aging_months, alcohol_grade, status, notes, active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		l.ID, l.ClientID, l.BrandID, l.VarietyID, l.PresentationID, l.LotCode, l.ProductionDate,
		l.BottlesProduced, l.BottlesRemaining, l.AgingProcess, l.AgingMonths, l.AlcoholGrade, l.Status, l.Notes, l.Active,
		l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, l.LotCode)
		}
		return fmt.Errorf("insert production lot: %w", err)
	}
	return nil
}

func (r *ProductionLotRepo) GetByID(ctx context.Context, id string) (*entity.ProductionLot, error) {
	return getOne(ctx, r.q, "production lot", lotSelect+` WHERE id = $1`, scanLot, id)
}

// GetForUpdate bloquea el lote mientras una entrega descuenta o devuelve botellas.
func (r *ProductionLotRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionLot, error) {
	return getOne(ctx, r.q, "production lot", lotSelect+` WHERE id = $1 FOR UPDATE`, scanLot, id)
}

func (r *ProductionLotRepo) Update(ctx context.Context, l *entity.ProductionLot) error {
	_, err := r.q.Exec(ctx, `
		UPDATE production_lots SET client_id = $2, brand_id = $3, variety_id = $4, presentation_id = $5,
			lot_code = $6, production_date = $7, bottles_produced = $8, bottles_remaining = $9,
			aging_process = $10, aging_months = $11, alcohol_grade = $12, status = $13, notes = $14,
			active = $15, updated_at = $16
		WHERE id = $1`,
		l.ID, l.ClientID, l.BrandID, l.VarietyID, l.PresentationID, l.LotCode, l.ProductionDate,
		l.BottlesProduced, l.BottlesRemaining, l.AgingProcess, l.AgingMonths, l.AlcoholGrade, l.Status, l.Notes,
		l.Active, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, l.LotCode)
		}
		return fmt.Errorf("update production lot: %w", err)
	}
	return nil
}

func (r *ProductionLotRepo) List(ctx context.Context, f entity.ProductionLotFilter) ([]*entity.ProductionLot, error) {
	var w filter
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	if f.OpenOnly {
		w.add("status = ANY($%d) AND bottles_remaining > 0", []string{entity.LotActive, entity.LotAging})
	}
	if f.ActiveOnly {
		w.add("active = $%d", true)
	}
	return listAll(ctx, r.q, "production lots", lotSelect+w.where()+` ORDER BY lot_code`, scanLot, w.args...)
}

func (r *ProductionLotRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "production_lots", id, active)
}
