package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// AlertEngine abre y cierra alertas de stock según el nivel de la línea.
// No escala una alerta baja a crítica: mientras haya una abierta no se crea otra.
type AlertEngine struct{}

// NewAlertEngine construye el motor de alertas.
func NewAlertEngine() *AlertEngine { return &AlertEngine{} }

// Reevaluate compara la cantidad de la línea con su mínimo y devuelve la alerta creada o
// resuelta (nil si no hubo cambios). Debe llamarse con los repos de la transacción que
// modificó el stock.
func (e *AlertEngine) Reevaluate(ctx context.Context, alerts repository.AlertRepository, line *entity.InventoryLine) (*entity.Alert, error) {
	level := inventory.Classify(line.Quantity, line.MinQuantity)
	if level == inventory.LevelUnset {
		return nil, nil
	}
	open, err := alerts.GetOpenByLine(ctx, line.ID)
	if err != nil {
		return nil, fmt.Errorf("buscar alerta abierta: %w", err)
	}

	now := time.Now()
	if level == inventory.LevelAdequate {
		if open == nil {
			return nil, nil
		}
		open.Resolved = true
		open.ResolvedAt = &now
		if err := alerts.Update(ctx, open); err != nil {
			return nil, fmt.Errorf("resolver alerta: %w", err)
		}
		return open, nil
	}

	if open != nil {
		return nil, nil
	}
	alert := &entity.Alert{
		ID:              uuid.New().String(),
		InventoryLineID: line.ID,
		Kind:            level.AlertKind(),
		Message:         AlertMessage(line, level),
		RaisedAt:        now,
		LotCode:         line.LotCode,
	}
	if err := alerts.Create(ctx, alert); err != nil {
		return nil, fmt.Errorf("crear alerta: %w", err)
	}
	return alert, nil
}

// AlertMessage texto de la alerta con cantidad, unidad y umbral.
func AlertMessage(line *entity.InventoryLine, level inventory.StockLevel) string {
	label := "bajo"
	if level == inventory.LevelCritical {
		label = "crítico"
	}
	return fmt.Sprintf("Stock %s en %s: %d %s (mínimo %d %s)",
		label, line.LotCode, line.Quantity, line.Unit, *line.MinQuantity, line.Unit)
}
