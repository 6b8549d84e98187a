package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliverySelect = `
	SELECT id, number, date, production_order, production_lot_id, client_id, delivered_by, received_by,
	       actor_id, status, notes, created_at, updated_at
	FROM deliveries`

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var d entity.Delivery
	if err := row.Scan(&d.ID, &d.Number, &d.Date, &d.ProductionOrder, &d.ProductionLotID, &d.ClientID,
		&d.DeliveredBy, &d.ReceivedBy, &d.ActorID, &d.Status, &d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeliveryRepo entregas y sus renglones sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create inserta la cabecera y sus detalles; debe llamarse dentro de una transacción.
func (r *DeliveryRepo) Create(ctx context.Context, del *entity.Delivery) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO deliveries (id, number, date, production_order, production_lot_id, client_id, delivered_by,
			received_by, actor_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		del.ID, del.Number, del.Date, del.ProductionOrder, del.ProductionLotID, del.ClientID, del.DeliveredBy,
		del.ReceivedBy, del.ActorID, del.Status, del.Notes, del.CreatedAt, del.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entrega %s", domain.ErrDuplicate, del.Number)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return r.insertDetails(ctx, del.ID, del.Details)
}

func (r *DeliveryRepo) insertDetails(ctx context.Context, deliveryID string, details []*entity.DeliveryDetail) error {
	for i, d := range details {
		_, err := r.q.Exec(ctx, `
			INSERT INTO delivery_details (id, delivery_id, inventory_line_id, amount, waste_amount, unit, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, deliveryID, d.InventoryLineID, d.Amount, d.WasteAmount, d.Unit, d.Notes, i)
		if err != nil {
			return fmt.Errorf("insert delivery detail: %w", err)
		}
	}
	return nil
}

// Load carga la entrega con las relaciones pedidas en include.
func (r *DeliveryRepo) Load(ctx context.Context, id string, inc repository.DeliveryInclude) (*entity.Delivery, error) {
	query := deliverySelect + ` WHERE id = $1`
	if inc.ForUpdate {
		query += ` FOR UPDATE`
	}
	del, err := getOne(ctx, r.q, "delivery", query, scanDelivery, id)
	if err != nil || del == nil {
		return del, err
	}
	if err := r.loadRelations(ctx, del, inc); err != nil {
		return nil, err
	}
	return del, nil
}

func (r *DeliveryRepo) loadRelations(ctx context.Context, del *entity.Delivery, inc repository.DeliveryInclude) error {
	var err error
	if inc.Client {
		if del.Client, err = NewClientRepository(r.q).GetByID(ctx, del.ClientID); err != nil {
			return err
		}
	}
	if inc.Lot && del.ProductionLotID != nil {
		if del.Lot, err = NewProductionLotRepository(r.q).GetByID(ctx, *del.ProductionLotID); err != nil {
			return err
		}
	}
	if inc.Actor {
		if del.Actor, err = NewUserRepository(r.q).GetByID(ctx, del.ActorID); err != nil {
			return err
		}
	}
	if inc.Details {
		if del.Details, err = r.details(ctx, del.ID, inc.Lines); err != nil {
			return err
		}
	}
	return nil
}

func (r *DeliveryRepo) details(ctx context.Context, deliveryID string, withLines bool) ([]*entity.DeliveryDetail, error) {
	list, err := listAll(ctx, r.q, "delivery details", `
		SELECT id, delivery_id, inventory_line_id, amount, waste_amount, unit, notes
		FROM delivery_details WHERE delivery_id = $1 ORDER BY position`,
		func(row pgx.Row) (*entity.DeliveryDetail, error) {
			var d entity.DeliveryDetail
			if err := row.Scan(&d.ID, &d.DeliveryID, &d.InventoryLineID, &d.Amount, &d.WasteAmount, &d.Unit, &d.Notes); err != nil {
				return nil, err
			}
			return &d, nil
		}, deliveryID)
	if err != nil || !withLines {
		return list, err
	}
	ids := make([]string, 0, len(list))
	for _, d := range list {
		ids = append(ids, d.InventoryLineID)
	}
	lines, err := NewInventoryLineRepository(r.q).listByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		d.Line = lines[d.InventoryLineID]
	}
	return list, nil
}

// List más recientes primero; devuelve la página y el total filtrado.
func (r *DeliveryRepo) List(ctx context.Context, f entity.DeliveryFilter, inc repository.DeliveryInclude) ([]*entity.Delivery, int, error) {
	var w filter
	if f.From != nil {
		w.add("date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("date <= $%d", *f.To)
	}
	if f.ClientID != "" {
		w.add("client_id = $%d", f.ClientID)
	}
	if f.LotID != "" {
		w.add("production_lot_id = $%d", f.LotID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM deliveries`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count deliveries: %w", err)
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	list, err := listAll(ctx, r.q, "deliveries", deliverySelect+w.where()+` ORDER BY date DESC, number DESC`+pageSQL, scanDelivery, args...)
	if err != nil {
		return nil, 0, err
	}
	for _, del := range list {
		if err := r.loadRelations(ctx, del, inc); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// UpdateHeader persiste estado y notas.
func (r *DeliveryRepo) UpdateHeader(ctx context.Context, del *entity.Delivery) error {
	return exec(ctx, r.q, "update delivery", `UPDATE deliveries SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		del.ID, del.Status, del.Notes, del.UpdatedAt)
}

func (r *DeliveryRepo) ReplaceDetails(ctx context.Context, deliveryID string, details []*entity.DeliveryDetail) error {
	if err := exec(ctx, r.q, "delete delivery details", `DELETE FROM delivery_details WHERE delivery_id = $1`, deliveryID); err != nil {
		return err
	}
	return r.insertDetails(ctx, deliveryID, details)
}

// Delete elimina la cabecera; los detalles caen por ON DELETE CASCADE.
func (r *DeliveryRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, "delete delivery", `DELETE FROM deliveries WHERE id = $1`, id)
}

// WasteByCategory suma cantidad entregada y desperdicio por categoría en entregas completadas.
// Omite las categorías sin desperdicio.
func (r *DeliveryRepo) WasteByCategory(ctx context.Context, f entity.WasteFilter) ([]*entity.WasteRow, error) {
	var w filter
	w.add("d.status = $%d", entity.StatusCompleted)
	if f.From != nil {
		w.add("d.date >= $%d", *f.From)
	}
	if f.To != nil {
		w.add("d.date <= $%d", *f.To)
	}
	if f.ClientID != "" {
		w.add("d.client_id = $%d", f.ClientID)
	}
	query := `
		SELECT c.id, c.name, COALESCE(SUM(dd.amount), 0), COALESCE(SUM(dd.waste_amount), 0)
		FROM delivery_details dd
		JOIN deliveries d ON d.id = dd.delivery_id
		JOIN inventory_lines l ON l.id = dd.inventory_line_id
		JOIN categories c ON c.id = l.category_id` + w.where() + `
		GROUP BY c.id, c.name
		HAVING SUM(dd.waste_amount) > 0
		ORDER BY c.name`
	return listAll(ctx, r.q, "waste by category", query, func(row pgx.Row) (*entity.WasteRow, error) {
		var wr entity.WasteRow
		if err := row.Scan(&wr.CategoryID, &wr.CategoryName, &wr.Delivered, &wr.Waste); err != nil {
			return nil, err
		}
		return &wr, nil
	}, w.args...)
}
