package repository

import (
	"context"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// ReceptionInclude lista explícita de relaciones a cargar junto con la recepción.
type ReceptionInclude struct {
	Details   bool
	Lines     bool // línea de inventario de cada detalle (requiere Details)
	Supplier  bool
	Client    bool
	Actor     bool
	ForUpdate bool // bloquea la cabecera (solo dentro de una transacción)
}

// ReceptionAll carga el agregado completo.
var ReceptionAll = ReceptionInclude{Details: true, Lines: true, Supplier: true, Client: true, Actor: true}

// ReceptionRepository puerto de persistencia de recepciones.
type ReceptionRepository interface {
	// Create inserta la cabecera y sus detalles.
	Create(ctx context.Context, r *entity.Reception) error
	Load(ctx context.Context, id string, include ReceptionInclude) (*entity.Reception, error)
	List(ctx context.Context, filter entity.ReceptionFilter, include ReceptionInclude) ([]*entity.Reception, int, error)
	// UpdateHeader persiste estado y notas.
	UpdateHeader(ctx context.Context, r *entity.Reception) error
	ReplaceDetails(ctx context.Context, receptionID string, details []*entity.ReceptionDetail) error
	// Delete elimina detalles y cabecera.
	Delete(ctx context.Context, id string) error
}

// DeliveryInclude lista explícita de relaciones a cargar junto con la entrega.
type DeliveryInclude struct {
	Details   bool
	Lines     bool
	Client    bool
	Lot       bool
	Actor     bool
	ForUpdate bool
}

// DeliveryAll carga el agregado completo.
var DeliveryAll = DeliveryInclude{Details: true, Lines: true, Client: true, Lot: true, Actor: true}

// DeliveryRepository puerto de persistencia de entregas.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	Load(ctx context.Context, id string, include DeliveryInclude) (*entity.Delivery, error)
	List(ctx context.Context, filter entity.DeliveryFilter, include DeliveryInclude) ([]*entity.Delivery, int, error)
	UpdateHeader(ctx context.Context, d *entity.Delivery) error
	ReplaceDetails(ctx context.Context, deliveryID string, details []*entity.DeliveryDetail) error
	Delete(ctx context.Context, id string) error
	// WasteByCategory agrega cantidades entregadas y desperdicio de entregas completadas.
	WasteByCategory(ctx context.Context, filter entity.WasteFilter) ([]*entity.WasteRow, error)
}
