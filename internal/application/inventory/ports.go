package inventory

import (
	"context"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio es visible para lecturas posteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error
}

// InventoryExporter genera la hoja de cálculo del listado de inventario.
type InventoryExporter interface {
	ExportInventory(ctx context.Context, lines []dto.InventoryLineResponse) ([]byte, error)
}
