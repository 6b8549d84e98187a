package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var _ repository.ClientConfigRepository = (*ClientConfigRepo)(nil)

// ClientConfigRepo asignaciones por cliente sobre PostgreSQL.
type ClientConfigRepo struct{ q Querier }

// NewClientConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientConfigRepository(q Querier) *ClientConfigRepo { return &ClientConfigRepo{q: q} }

func scanRef(row pgx.Row) (*entity.CatalogRef, error) {
	var r entity.CatalogRef
	if err := row.Scan(&r.ID, &r.Name); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanText(row pgx.Row) (*string, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func derefAll[T any](list []*T) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		out = append(out, *v)
	}
	return out
}

func (r *ClientConfigRepo) Get(ctx context.Context, clientID string) (*entity.ClientConfig, error) {
	cfg := &entity.ClientConfig{ClientID: clientID}
	if err := r.q.QueryRow(ctx, `SELECT name FROM clients WHERE id = $1`, clientID).Scan(&cfg.ClientName); err != nil && !isNotFound(err) {
		return nil, err
	}

	varieties, err := listAll(ctx, r.q, "client varieties", `
		SELECT v.id, v.name
		FROM client_varieties cv JOIN varieties v ON v.id = cv.variety_id
		WHERE cv.client_id = $1 AND cv.active
		ORDER BY v.name`, scanRef, clientID)
	if err != nil {
		return nil, err
	}
	presentations, err := listAll(ctx, r.q, "client presentations", `
		SELECT p.id, p.volume
		FROM client_presentations cp JOIN presentations p ON p.id = cp.presentation_id
		WHERE cp.client_id = $1 AND cp.active
		ORDER BY p.volume`, scanRef, clientID)
	if err != nil {
		return nil, err
	}
	types, err := listAll(ctx, r.q, "client shipment types", `
		SELECT shipment_type FROM client_shipment_types
		WHERE client_id = $1 AND active
		ORDER BY shipment_type DESC`, scanText, clientID)
	if err != nil {
		return nil, err
	}

	cfg.Varieties = derefAll(varieties)
	cfg.Presentations = derefAll(presentations)
	cfg.ShipmentTypes = derefAll(types)
	return cfg, nil
}

// replace desactiva todas las filas del cliente y reactiva o inserta las de values.
// El array vacío deja al cliente sin asignaciones de ese tipo.
func (r *ClientConfigRepo) replace(ctx context.Context, table, column, elemType, clientID string, values []string) error {
	if err := exec(ctx, r.q, "reset "+table,
		`UPDATE `+table+` SET active = FALSE WHERE client_id = $1`, clientID); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	return exec(ctx, r.q, "upsert "+table, `
		INSERT INTO `+table+` (client_id, `+column+`, active)
		SELECT $1, v, TRUE FROM unnest($2::`+elemType+`[]) AS v
		ON CONFLICT (client_id, `+column+`) DO UPDATE SET active = TRUE`,
		clientID, values)
}

func (r *ClientConfigRepo) ReplaceVarieties(ctx context.Context, clientID string, varietyIDs []string) error {
	return r.replace(ctx, "client_varieties", "variety_id", "uuid", clientID, varietyIDs)
}

func (r *ClientConfigRepo) ReplacePresentations(ctx context.Context, clientID string, presentationIDs []string) error {
	return r.replace(ctx, "client_presentations", "presentation_id", "uuid", clientID, presentationIDs)
}

func (r *ClientConfigRepo) ReplaceShipmentTypes(ctx context.Context, clientID string, types []string) error {
	return r.replace(ctx, "client_shipment_types", "shipment_type", "varchar", clientID, types)
}
