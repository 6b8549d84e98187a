package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var (
	_ repository.ClientRepository       = (*ClientRepo)(nil)
	_ repository.BrandRepository        = (*BrandRepo)(nil)
	_ repository.SupplierRepository     = (*SupplierRepo)(nil)
	_ repository.VarietyRepository      = (*VarietyRepo)(nil)
	_ repository.PresentationRepository = (*PresentationRepo)(nil)
	_ repository.CategoryRepository     = (*CategoryRepo)(nil)
)

// getOne ejecuta un SELECT de una fila; fila inexistente o ID inválido devuelven (nil, nil).
func getOne[T any](ctx context.Context, q Querier, what, query string, scan func(pgx.Row) (*T, error), args ...any) (*T, error) {
	v, err := scan(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return v, nil
}

func listAll[T any](ctx context.Context, q Querier, what, query string, scan func(pgx.Row) (*T, error), args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	defer rows.Close()
	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func setActive(ctx context.Context, q Querier, table, id string, active bool) error {
	_, err := q.Exec(ctx, `UPDATE `+table+` SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set active %s: %w", table, err)
	}
	return nil
}

func exec(ctx context.Context, q Querier, what, query string, args ...any) error {
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

const clientSelect = `SELECT id, name, contact_name, address, phone, email, active, created_at, updated_at FROM clients`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Name, &c.ContactName, &c.Address, &c.Phone, &c.Email, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// ClientRepo clientes sobre PostgreSQL.
type ClientRepo struct{ q Querier }

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo { return &ClientRepo{q: q} }

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return exec(ctx, r.q, "insert client", `
		INSERT INTO clients (id, name, contact_name, address, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.ContactName, c.Address, c.Phone, c.Email, c.Active, c.CreatedAt, c.UpdatedAt)
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	return getOne(ctx, r.q, "client", clientSelect+` WHERE id = $1`, scanClient, id)
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return exec(ctx, r.q, "update client", `
		UPDATE clients SET name = $2, contact_name = $3, address = $4, phone = $5, email = $6, active = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, c.ContactName, c.Address, c.Phone, c.Email, c.Active, c.UpdatedAt)
}

func (r *ClientRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Client, error) {
	return listAll(ctx, r.q, "clients", clientSelect+` WHERE ($1 = FALSE OR active) ORDER BY name`, scanClient, activeOnly)
}

func (r *ClientRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "clients", id, active)
}

// ── Marcas ────────────────────────────────────────────────────────────────────

const brandSelect = `
	SELECT b.id, b.name, b.description, b.client_id, b.active, b.created_at, b.updated_at, COALESCE(c.name, '')
	FROM brands b LEFT JOIN clients c ON c.id = b.client_id`

func scanBrand(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.Description, &b.ClientID, &b.Active, &b.CreatedAt, &b.UpdatedAt, &b.ClientName); err != nil {
		return nil, err
	}
	return &b, nil
}

// BrandRepo marcas sobre PostgreSQL; los listados resuelven el nombre del cliente.
type BrandRepo struct{ q Querier }

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo { return &BrandRepo{q: q} }

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	return exec(ctx, r.q, "insert brand", `
		INSERT INTO brands (id, name, description, client_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Name, b.Description, b.ClientID, b.Active, b.CreatedAt, b.UpdatedAt)
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	return getOne(ctx, r.q, "brand", brandSelect+` WHERE b.id = $1`, scanBrand, id)
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	return exec(ctx, r.q, "update brand", `
		UPDATE brands SET name = $2, description = $3, client_id = $4, active = $5, updated_at = $6 WHERE id = $1`,
		b.ID, b.Name, b.Description, b.ClientID, b.Active, b.UpdatedAt)
}

func (r *BrandRepo) List(ctx context.Context, clientID string, activeOnly bool) ([]*entity.Brand, error) {
	var w filter
	if activeOnly {
		w.add("b.active = $%d", true)
	}
	if clientID != "" {
		w.add("b.client_id = $%d", clientID)
	}
	return listAll(ctx, r.q, "brands", brandSelect+w.where()+` ORDER BY b.name`, scanBrand, w.args...)
}

func (r *BrandRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "brands", id, active)
}

// ── Proveedores ───────────────────────────────────────────────────────────────

const supplierSelect = `SELECT id, name, contact, phone, email, address, supply_types, active, created_at, updated_at FROM suppliers`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.SupplyTypes, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct{ q Querier }

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo { return &SupplierRepo{q: q} }

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return exec(ctx, r.q, "insert supplier", `
		INSERT INTO suppliers (id, name, contact, phone, email, address, supply_types, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Address, s.SupplyTypes, s.Active, s.CreatedAt, s.UpdatedAt)
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return getOne(ctx, r.q, "supplier", supplierSelect+` WHERE id = $1`, scanSupplier, id)
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return exec(ctx, r.q, "update supplier", `
		UPDATE suppliers SET name = $2, contact = $3, phone = $4, email = $5, address = $6, supply_types = $7,
			active = $8, updated_at = $9
		WHERE id = $1`,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Address, s.SupplyTypes, s.Active, s.UpdatedAt)
}

func (r *SupplierRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error) {
	return listAll(ctx, r.q, "suppliers", supplierSelect+` WHERE ($1 = FALSE OR active) ORDER BY name`, scanSupplier, activeOnly)
}

func (r *SupplierRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "suppliers", id, active)
}

// ── Variedades ────────────────────────────────────────────────────────────────

const varietySelect = `SELECT id, name, region, description, active, created_at, updated_at FROM varieties`

func scanVariety(row pgx.Row) (*entity.Variety, error) {
	var v entity.Variety
	if err := row.Scan(&v.ID, &v.Name, &v.Region, &v.Description, &v.Active, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// VarietyRepo variedades de agave sobre PostgreSQL.
type VarietyRepo struct{ q Querier }

// NewVarietyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVarietyRepository(q Querier) *VarietyRepo { return &VarietyRepo{q: q} }

func (r *VarietyRepo) Create(ctx context.Context, v *entity.Variety) error {
	return exec(ctx, r.q, "insert variety", `
		INSERT INTO varieties (id, name, region, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.Name, v.Region, v.Description, v.Active, v.CreatedAt, v.UpdatedAt)
}

func (r *VarietyRepo) GetByID(ctx context.Context, id string) (*entity.Variety, error) {
	return getOne(ctx, r.q, "variety", varietySelect+` WHERE id = $1`, scanVariety, id)
}

func (r *VarietyRepo) Update(ctx context.Context, v *entity.Variety) error {
	return exec(ctx, r.q, "update variety", `
		UPDATE varieties SET name = $2, region = $3, description = $4, active = $5, updated_at = $6 WHERE id = $1`,
		v.ID, v.Name, v.Region, v.Description, v.Active, v.UpdatedAt)
}

func (r *VarietyRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Variety, error) {
	return listAll(ctx, r.q, "varieties", varietySelect+` WHERE ($1 = FALSE OR active) ORDER BY name`, scanVariety, activeOnly)
}

func (r *VarietyRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "varieties", id, active)
}

// ── Presentaciones ────────────────────────────────────────────────────────────

const presentationSelect = `SELECT id, volume, description, active, created_at, updated_at FROM presentations`

func scanPresentation(row pgx.Row) (*entity.Presentation, error) {
	var p entity.Presentation
	if err := row.Scan(&p.ID, &p.Volume, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// PresentationRepo presentaciones sobre PostgreSQL.
type PresentationRepo struct{ q Querier }

// NewPresentationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPresentationRepository(q Querier) *PresentationRepo { return &PresentationRepo{q: q} }

func (r *PresentationRepo) Create(ctx context.Context, p *entity.Presentation) error {
	return exec(ctx, r.q, "insert presentation", `
		INSERT INTO presentations (id, volume, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Volume, p.Description, p.Active, p.CreatedAt, p.UpdatedAt)
}

func (r *PresentationRepo) GetByID(ctx context.Context, id string) (*entity.Presentation, error) {
	return getOne(ctx, r.q, "presentation", presentationSelect+` WHERE id = $1`, scanPresentation, id)
}

func (r *PresentationRepo) Update(ctx context.Context, p *entity.Presentation) error {
	return exec(ctx, r.q, "update presentation", `
		UPDATE presentations SET volume = $2, description = $3, active = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Volume, p.Description, p.Active, p.UpdatedAt)
}

func (r *PresentationRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Presentation, error) {
	return listAll(ctx, r.q, "presentations", presentationSelect+` WHERE ($1 = FALSE OR active) ORDER BY volume`, scanPresentation, activeOnly)
}

func (r *PresentationRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "presentations", id, active)
}

// ── Categorías ────────────────────────────────────────────────────────────────

const categorySelect = `SELECT id, name, description, unit, active, created_at, updated_at FROM categories`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Unit, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryRepo categorías de insumo sobre PostgreSQL.
type CategoryRepo struct{ q Querier }

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo { return &CategoryRepo{q: q} }

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	return exec(ctx, r.q, "insert category", `
		INSERT INTO categories (id, name, description, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Description, c.Unit, c.Active, c.CreatedAt, c.UpdatedAt)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return getOne(ctx, r.q, "category", categorySelect+` WHERE id = $1`, scanCategory, id)
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	return exec(ctx, r.q, "update category", `
		UPDATE categories SET name = $2, description = $3, unit = $4, active = $5, updated_at = $6 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Unit, c.Active, c.UpdatedAt)
}

func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	return listAll(ctx, r.q, "categories", categorySelect+` WHERE ($1 = FALSE OR active) ORDER BY name`, scanCategory, activeOnly)
}

func (r *CategoryRepo) SetActive(ctx context.Context, id string, active bool) error {
	return setActive(ctx, r.q, "categories", id, active)
}
