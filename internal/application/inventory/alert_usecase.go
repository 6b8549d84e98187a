package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// AlertUseCase operaciones de consulta y gestión manual de alertas.
type AlertUseCase struct {
	repos    repository.Repos
	txRunner TxRunner
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repos repository.Repos, txRunner TxRunner) *AlertUseCase {
	return &AlertUseCase{repos: repos, txRunner: txRunner}
}

// List lista alertas filtradas por seen/resolved/kind, más recientes primero.
func (uc *AlertUseCase) List(ctx context.Context, q dto.AlertListQuery, page dto.PageRequest) (*dto.AlertListResponse, error) {
	page.DefaultPage()
	if q.Kind != "" && q.Kind != entity.AlertLow && q.Kind != entity.AlertCritical {
		return nil, fmt.Errorf("%w: kind debe ser low o critical", domain.ErrInvalidInput)
	}
	list, total, err := uc.repos.Alerts.List(ctx, entity.AlertFilter{Seen: q.Seen, Resolved: q.Resolved, Kind: q.Kind}, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, toAlertResponse(a))
	}
	return &dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CountUnseen cuenta alertas no vistas y sin resolver.
func (uc *AlertUseCase) CountUnseen(ctx context.Context) (*dto.UnseenCountResponse, error) {
	n, err := uc.repos.Alerts.CountUnseen(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.UnseenCountResponse{Count: n}, nil
}

// MarkSeen marca una alerta como vista.
func (uc *AlertUseCase) MarkSeen(ctx context.Context, id string) (*dto.AlertResponse, error) {
	alert, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !alert.Seen {
		alert.Seen = true
		if err := uc.repos.Alerts.Update(ctx, alert); err != nil {
			return nil, err
		}
	}
	out := toAlertResponse(alert)
	return &out, nil
}

// MarkAllSeen marca como vistas todas las alertas pendientes de ver.
func (uc *AlertUseCase) MarkAllSeen(ctx context.Context) (*dto.MessageResponse, error) {
	n, err := uc.repos.Alerts.MarkAllSeen(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("%d alertas marcadas como vistas", n)}, nil
}

// Resolve resuelve manualmente una alerta registrando quién y cuándo; también la marca vista.
// Resolver una alerta ya resuelta no la modifica.
func (uc *AlertUseCase) Resolve(ctx context.Context, id, actorID string) (*dto.AlertResponse, error) {
	alert, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !alert.Resolved {
		now := time.Now()
		alert.Resolved = true
		alert.Seen = true
		alert.ResolvedAt = &now
		if actorID != "" {
			alert.ResolvedBy = &actorID
		}
		if err := uc.repos.Alerts.Update(ctx, alert); err != nil {
			return nil, err
		}
	}
	out := toAlertResponse(alert)
	return &out, nil
}

// Create registra una alerta manual. La línea se bloquea para respetar la regla de una
// sola alerta abierta por línea; si ya existe una se devuelve ErrConflict.
func (uc *AlertUseCase) Create(ctx context.Context, in dto.CreateAlertRequest) (*dto.AlertResponse, error) {
	if in.Kind != entity.AlertLow && in.Kind != entity.AlertCritical {
		return nil, fmt.Errorf("%w: kind debe ser low o critical", domain.ErrInvalidInput)
	}
	if in.Message == "" {
		return nil, fmt.Errorf("%w: message es requerido", domain.ErrInvalidInput)
	}
	var alert *entity.Alert
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		line, err := repos.Lines.GetForUpdate(ctx, in.InventoryID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, in.InventoryID)
		}
		open, err := repos.Alerts.GetOpenByLine(ctx, line.ID)
		if err != nil {
			return err
		}
		if open != nil {
			return fmt.Errorf("%w: la línea %s ya tiene una alerta abierta", domain.ErrConflict, line.LotCode)
		}
		alert = &entity.Alert{
			ID:              uuid.New().String(),
			InventoryLineID: line.ID,
			Kind:            in.Kind,
			Message:         in.Message,
			RaisedAt:        time.Now(),
			LotCode:         line.LotCode,
		}
		return repos.Alerts.Create(ctx, alert)
	})
	if err != nil {
		return nil, err
	}
	out := toAlertResponse(alert)
	return &out, nil
}

// Delete elimina una alerta.
func (uc *AlertUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repos.Alerts.Delete(ctx, id)
}

func (uc *AlertUseCase) get(ctx context.Context, id string) (*entity.Alert, error) {
	alert, err := uc.repos.Alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
	}
	return alert, nil
}
