package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// InventoryLineRepository puerto de persistencia de líneas de inventario.
// GetByID y GetForUpdate devuelven (nil, nil) si la línea no existe.
type InventoryLineRepository interface {
	Create(ctx context.Context, line *entity.InventoryLine) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLine, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error)
	// Update persiste atributos descriptivos; nunca la cantidad.
	Update(ctx context.Context, line *entity.InventoryLine) error
	// UpdateQuantity es la única escritura de la cantidad; la usa el libro de movimientos.
	UpdateQuantity(ctx context.Context, id string, quantity int, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter entity.InventoryLineFilter) ([]*entity.InventoryLine, error)
}

// MovementRepository libro de movimientos: solo inserción y lectura.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	// ListByLine devuelve la página (más reciente primero) y el total de movimientos de la línea.
	ListByLine(ctx context.Context, lineID string, limit, offset int) ([]*entity.Movement, int, error)
}

// AlertRepository puerto de persistencia de alertas de stock.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	// GetOpenByLine devuelve la alerta sin resolver de la línea, o nil.
	GetOpenByLine(ctx context.Context, lineID string) (*entity.Alert, error)
	// Update persiste seen, resolved, resolved_by y resolved_at.
	Update(ctx context.Context, a *entity.Alert) error
	MarkAllSeen(ctx context.Context) (int64, error)
	CountUnseen(ctx context.Context) (int, error)
	List(ctx context.Context, filter entity.AlertFilter, limit, offset int) ([]*entity.Alert, int, error)
	Delete(ctx context.Context, id string) error
}

// SequenceRepository contador por prefijo para la numeración de documentos.
type SequenceRepository interface {
	// Next incrementa y devuelve el contador del prefijo; serializa escritores concurrentes
	// por el bloqueo de la fila dentro de la transacción en curso.
	Next(ctx context.Context, prefix string) (int64, error)
}
