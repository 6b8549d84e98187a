package repository

import (
	"context"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// Los catálogos comparten contrato: GetByID devuelve (nil, nil) si no existe,
// List con activeOnly=false incluye los dados de baja y SetActive implementa el borrado lógico.

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Client, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// BrandRepository puerto de persistencia de marcas.
type BrandRepository interface {
	Create(ctx context.Context, b *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	Update(ctx context.Context, b *entity.Brand) error
	// List filtra por cliente si clientID no está vacío.
	List(ctx context.Context, clientID string, activeOnly bool) ([]*entity.Brand, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Supplier, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// VarietyRepository puerto de persistencia de variedades de agave.
type VarietyRepository interface {
	Create(ctx context.Context, v *entity.Variety) error
	GetByID(ctx context.Context, id string) (*entity.Variety, error)
	Update(ctx context.Context, v *entity.Variety) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Variety, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// PresentationRepository puerto de persistencia de presentaciones.
type PresentationRepository interface {
	Create(ctx context.Context, p *entity.Presentation) error
	GetByID(ctx context.Context, id string) (*entity.Presentation, error)
	Update(ctx context.Context, p *entity.Presentation) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Presentation, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// CategoryRepository puerto de persistencia de categorías de insumo.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ProductionLotRepository puerto de persistencia de lotes de producción.
type ProductionLotRepository interface {
	Create(ctx context.Context, l *entity.ProductionLot) error
	GetByID(ctx context.Context, id string) (*entity.ProductionLot, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionLot, error)
	Update(ctx context.Context, l *entity.ProductionLot) error
	List(ctx context.Context, filter entity.ProductionLotFilter) ([]*entity.ProductionLot, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ClientConfigRepository asignaciones de catálogo por cliente. Los Replace* sustituyen
// el conjunto activo: desactivan lo que no viene y reactivan o insertan lo que sí.
type ClientConfigRepository interface {
	// Get devuelve solo las asignaciones activas; un cliente sin ninguna da listas vacías.
	Get(ctx context.Context, clientID string) (*entity.ClientConfig, error)
	ReplaceVarieties(ctx context.Context, clientID string, varietyIDs []string) error
	ReplacePresentations(ctx context.Context, clientID string, presentationIDs []string) error
	ReplaceShipmentTypes(ctx context.Context, clientID string, types []string) error
}
