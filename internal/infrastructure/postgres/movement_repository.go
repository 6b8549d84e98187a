package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO inventory_movements (id, inventory_line_id, actor_id, kind, amount, quantity_before, quantity_after,
			reception_id, delivery_id, reason, reference_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.InventoryLineID, m.ActorID, m.Kind, m.Amount, m.QuantityBefore, m.QuantityAfter,
		m.ReceptionID, m.DeliveryID, m.Reason, m.ReferenceCode, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByLine historial de la línea, más reciente primero, con el nombre del actor.
func (r *MovementRepo) ListByLine(ctx context.Context, lineID string, limit, offset int) ([]*entity.Movement, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_movements WHERE inventory_line_id = $1`, lineID).Scan(&total); err != nil {
		if isNotFound(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	query := `
		SELECT m.id, m.inventory_line_id, m.actor_id, m.kind, m.amount, m.quantity_before, m.quantity_after,
		       m.reception_id, m.delivery_id, m.reason, m.reference_code, m.created_at, COALESCE(u.name, '')
		FROM inventory_movements m
		LEFT JOIN users u ON u.id = m.actor_id
		WHERE m.inventory_line_id = $1
		ORDER BY m.seq DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, lineID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.InventoryLineID, &m.ActorID, &m.Kind, &m.Amount, &m.QuantityBefore,
			&m.QuantityAfter, &m.ReceptionID, &m.DeliveryID, &m.Reason, &m.ReferenceCode, &m.CreatedAt, &m.ActorName); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
