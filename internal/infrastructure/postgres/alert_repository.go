package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertSelect = `
	SELECT a.id, a.inventory_line_id, a.kind, a.message, a.raised_at, a.seen, a.resolved,
	       a.resolved_by, a.resolved_at, l.lot_code
	FROM inventory_alerts a
	JOIN inventory_lines l ON l.id = a.inventory_line_id`

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	if err := row.Scan(&a.ID, &a.InventoryLineID, &a.Kind, &a.Message, &a.RaisedAt, &a.Seen, &a.Resolved,
		&a.ResolvedBy, &a.ResolvedAt, &a.LotCode); err != nil {
		return nil, err
	}
	return &a, nil
}

// AlertRepo alertas de stock sobre PostgreSQL. El índice único parcial sobre
// (inventory_line_id) WHERE NOT resolved garantiza una sola alerta abierta por línea.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `
		INSERT INTO inventory_alerts (id, inventory_line_id, kind, message, raised_at, seen, resolved, resolved_by, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, a.ID, a.InventoryLineID, a.Kind, a.Message, a.RaisedAt,
		a.Seen, a.Resolved, a.ResolvedBy, a.ResolvedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: alerta abierta para la línea %s", domain.ErrDuplicate, a.InventoryLineID)
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	return r.get(ctx, alertSelect+` WHERE a.id = $1`, id)
}

func (r *AlertRepo) GetOpenByLine(ctx context.Context, lineID string) (*entity.Alert, error) {
	return r.get(ctx, alertSelect+` WHERE a.inventory_line_id = $1 AND NOT a.resolved`, lineID)
}

func (r *AlertRepo) get(ctx context.Context, query, arg string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) Update(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_alerts SET seen = $2, resolved = $3, resolved_by = $4, resolved_at = $5 WHERE id = $1`,
		a.ID, a.Seen, a.Resolved, a.ResolvedBy, a.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) MarkAllSeen(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE inventory_alerts SET seen = TRUE WHERE NOT seen`)
	if err != nil {
		return 0, fmt.Errorf("mark all seen: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AlertRepo) CountUnseen(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_alerts WHERE NOT seen AND NOT resolved`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unseen alerts: %w", err)
	}
	return n, nil
}

// List más recientes primero.
func (r *AlertRepo) List(ctx context.Context, f entity.AlertFilter, limit, offset int) ([]*entity.Alert, int, error) {
	var w filter
	if f.Seen != nil {
		w.add("a.seen = $%d", *f.Seen)
	}
	if f.Resolved != nil {
		w.add("a.resolved = $%d", *f.Resolved)
	}
	if f.Kind != "" {
		w.add("a.kind = $%d", f.Kind)
	}
	if f.LineID != "" {
		w.add("a.inventory_line_id = $%d", f.LineID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_alerts a`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count alerts: %w", err)
	}
	pageSQL, args := w.page(limit, offset)
	rows, err := r.q.Query(ctx, alertSelect+w.where()+` ORDER BY a.seq DESC`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, total, rows.Err()
}

func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory_alerts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}
