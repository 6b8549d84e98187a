package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

// Ledger es el único camino de escritura de la cantidad de una línea: bloquea la fila,
// calcula la nueva cantidad, registra el movimiento y reevalúa alertas.
// Siempre opera sobre repos de una transacción abierta por el llamador.
type Ledger struct {
	alerts *AlertEngine
	log    *logger.Logger
}

// NewLedger construye el libro de movimientos.
func NewLedger(alerts *AlertEngine, log *logger.Logger) *Ledger {
	if log == nil {
		log = logger.Nop()
	}
	return &Ledger{alerts: alerts, log: log.Component("ledger")}
}

// MovementInput datos de un movimiento. ReceptionID/DeliveryID enlazan el movimiento
// con el documento que lo originó. Reversal marca el movimiento compensatorio de una
// cancelación, que se acepta aunque la línea ya esté inactiva.
type MovementInput struct {
	LineID      string
	Kind        string
	Amount      int
	ActorID     string
	ReceptionID *string
	DeliveryID  *string
	Reason      string
	Reference   string
	Reversal    bool
}

// MovementResult línea actualizada, movimiento registrado y alerta afectada (si hubo).
type MovementResult struct {
	Line     *entity.InventoryLine
	Movement *entity.Movement
	Alert    *entity.Alert
}

// ApplyInTx aplica un movimiento con los repos de la transacción en curso.
func (l *Ledger) ApplyInTx(ctx context.Context, repos repository.Repos, in MovementInput) (*MovementResult, error) {
	if in.LineID == "" || in.ActorID == "" {
		return nil, fmt.Errorf("%w: línea y actor son requeridos", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementKind(in.Kind) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}

	// Bloquea la fila (SELECT FOR UPDATE) para evitar condiciones de carrera
	line, err := repos.Lines.GetForUpdate(ctx, in.LineID)
	if err != nil {
		return nil, err
	}
	if !in.Reversal {
		if err := ActiveLine(line, in.LineID); err != nil {
			return nil, err
		}
	} else if line == nil {
		return nil, fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, in.LineID)
	}

	before := line.Quantity
	after, err := inventory.NextQuantity(before, in.Kind, in.Amount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", line.LotCode, err)
	}

	now := time.Now()
	if err := repos.Lines.UpdateQuantity(ctx, line.ID, after, now); err != nil {
		return nil, err
	}
	line.Quantity = after
	line.LastUpdated = now

	mov := &entity.Movement{
		ID:              uuid.New().String(),
		InventoryLineID: line.ID,
		ActorID:         in.ActorID,
		Kind:            in.Kind,
		Amount:          in.Amount,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReceptionID:     in.ReceptionID,
		DeliveryID:      in.DeliveryID,
		Reason:          in.Reason,
		ReferenceCode:   in.Reference,
		CreatedAt:       now,
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}

	alert, err := l.alerts.Reevaluate(ctx, repos.Alerts, line)
	if err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("line_id", line.ID).
		Str("kind", in.Kind).
		Int("before", before).
		Int("after", after).
		Str("reference", in.Reference).
		Msg("movimiento aplicado")

	return &MovementResult{Line: line, Movement: mov, Alert: alert}, nil
}
