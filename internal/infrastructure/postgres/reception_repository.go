package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

const receptionSelect = `
	SELECT id, number, date, purchase_order, invoice, supplier_id, client_id, delivered_by, received_by,
	       actor_id, status, notes, created_at, updated_at
	FROM receptions`

func scanReception(row pgx.Row) (*entity.Reception, error) {
	var r entity.Reception
	if err := row.Scan(&r.ID, &r.Number, &r.Date, &r.PurchaseOrder, &r.Invoice, &r.SupplierID, &r.ClientID,
		&r.DeliveredBy, &r.ReceivedBy, &r.ActorID, &r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// ReceptionRepo recepciones y sus renglones sobre PostgreSQL.
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

// Create inserta la cabecera y sus detalles; debe llamarse dentro de una transacción.
func (r *ReceptionRepo) Create(ctx context.Context, rec *entity.Reception) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receptions (id, number, date, purchase_order, invoice, supplier_id, client_id, delivered_by,
			received_by, actor_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, rec.Number, rec.Date, rec.PurchaseOrder, rec.Invoice, rec.SupplierID, rec.ClientID, rec.DeliveredBy,
		rec.ReceivedBy, rec.ActorID, rec.Status, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: recepción %s", domain.ErrDuplicate, rec.Number)
		}
		return fmt.Errorf("insert reception: %w", err)
	}
	return r.insertDetails(ctx, rec.ID, rec.Details)
}

func (r *ReceptionRepo) insertDetails(ctx context.Context, receptionID string, details []*entity.ReceptionDetail) error {
	for i, d := range details {
		_, err := r.q.Exec(ctx, `
			INSERT INTO reception_details (id, reception_id, inventory_line_id, amount, unit, notes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, receptionID, d.InventoryLineID, d.Amount, d.Unit, d.Notes, i)
		if err != nil {
			return fmt.Errorf("insert reception detail: %w", err)
		}
	}
	return nil
}

// Load carga la recepción con las relaciones pedidas en include.
func (r *ReceptionRepo) Load(ctx context.Context, id string, inc repository.ReceptionInclude) (*entity.Reception, error) {
	query := receptionSelect + ` WHERE id = $1`
	if inc.ForUpdate {
		query += ` FOR UPDATE`
	}
	rec, err := getOne(ctx, r.q, "reception", query, scanReception, id)
	if err != nil || rec == nil {
		return rec, err
	}
	if err := r.loadRelations(ctx, rec, inc); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *ReceptionRepo) loadRelations(ctx context.Context, rec *entity.Reception, inc repository.ReceptionInclude) error {
	var err error
	if inc.Supplier {
		if rec.Supplier, err = NewSupplierRepository(r.q).GetByID(ctx, rec.SupplierID); err != nil {
			return err
		}
	}
	if inc.Client && rec.ClientID != nil {
		if rec.Client, err = NewClientRepository(r.q).GetByID(ctx, *rec.ClientID); err != nil {
			return err
		}
	}
	if inc.Actor {
		if rec.Actor, err = NewUserRepository(r.q).GetByID(ctx, rec.ActorID); err != nil {
			return err
		}
	}
	if inc.Details {
		if rec.Details, err = r.details(ctx, rec.ID, inc.Lines); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReceptionRepo) details(ctx context.Context, receptionID string, withLines bool) ([]*entity.ReceptionDetail, error) {
	list, err := listAll(ctx, r.q, "reception details", `
		SELECT id, reception_id, inventory_line_id, amount, unit, notes
		FROM reception_details WHERE reception_id = $1 ORDER BY position`,
		func(row pgx.Row) (*entity.ReceptionDetail, error) {
			var d entity.ReceptionDetail
			if err := row.Scan(&d.ID, &d.ReceptionID, &d.InventoryLineID, &d.Amount, &d.Unit, &d.Notes); err != nil {
				return nil, err
			}
			return &d, nil
		}, receptionID)
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
func (r *ReceptionRepo) List(ctx context.Context, f entity.ReceptionFilter, inc repository.ReceptionInclude) ([]*entity.Reception, int, error) {
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
	if f.SupplierID != "" {
		w.add("supplier_id = $%d", f.SupplierID)
	}
	if f.Status != "" {
		w.add("status = $%d", f.Status)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM receptions`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count receptions: %w", err)
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	list, err := listAll(ctx, r.q, "receptions", receptionSelect+w.where()+` ORDER BY date DESC, number DESC`+pageSQL, scanReception, args...)
	if err != nil {
		return nil, 0, err
	}
	for _, rec := range list {
		if err := r.loadRelations(ctx, rec, inc); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// UpdateHeader persiste estado y notas.
func (r *ReceptionRepo) UpdateHeader(ctx context.Context, rec *entity.Reception) error {
	return exec(ctx, r.q, "update reception", `UPDATE receptions SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		rec.ID, rec.Status, rec.Notes, rec.UpdatedAt)
}

func (r *ReceptionRepo) ReplaceDetails(ctx context.Context, receptionID string, details []*entity.ReceptionDetail) error {
	if err := exec(ctx, r.q, "delete reception details", `DELETE FROM reception_details WHERE reception_id = $1`, receptionID); err != nil {
		return err
	}
	return r.insertDetails(ctx, receptionID, details)
}

// Delete elimina la cabecera; los detalles caen por ON DELETE CASCADE.
func (r *ReceptionRepo) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.q, "delete reception", `DELETE FROM receptions WHERE id = $1`, id)
}
