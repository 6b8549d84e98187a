package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
	"github.com/jhoicas/Insumos-api/pkg/logger"
)

// UseCase flujo de entregas a producción: salidas y mermas por renglón, descuento de
// botellas del lote de producción y reversión compensatoria al cancelar.
type UseCase struct {
	repos    repository.Repos
	txRunner inventory.TxRunner
	ledger   *inventory.Ledger
	pdf      PDFGenerator
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Repos, txRunner inventory.TxRunner, ledger *inventory.Ledger, pdf PDFGenerator, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repos: repos, txRunner: txRunner, ledger: ledger, pdf: pdf, log: log.Component("deliveries")}
}

// Create registra la entrega. Si queda completada cada renglón genera una salida y, con
// merma, un movimiento de desperdicio; todo en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	date, err := inventory.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	status, err := inventory.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id es requerido", domain.ErrInvalidInput)
	}
	if len(in.Details) == 0 {
		return nil, fmt.Errorf("%w: la entrega requiere al menos un renglón", domain.ErrInvalidInput)
	}
	actorID := in.ActorID
	if actorID == "" {
		actorID = userID
	}

	now := time.Now()
	del := &entity.Delivery{
		ID:              uuid.New().String(),
		Date:            date,
		ProductionOrder: in.ProductionOrder,
		ProductionLotID: in.ProductionLotID,
		ClientID:        in.ClientID,
		DeliveredBy:     in.DeliveredBy,
		ReceivedBy:      in.ReceivedBy,
		ActorID:         actorID,
		Status:          status,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if del.ProductionLotID != nil && *del.ProductionLotID == "" {
		del.ProductionLotID = nil
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		if err := checkHeader(ctx, repos, del); err != nil {
			return err
		}
		details, err := buildDetails(ctx, repos, del.ID, in.Details)
		if err != nil {
			return err
		}
		del.Details = details

		n, err := repos.Sequences.Next(ctx, inventory.PrefixDelivery)
		if err != nil {
			return fmt.Errorf("consecutivo de entrega: %w", err)
		}
		del.Number = inventory.DocumentNumber(inventory.PrefixDelivery, n)

		if err := repos.Deliveries.Create(ctx, del); err != nil {
			return err
		}
		if del.Status == entity.StatusCompleted {
			return uc.applyExits(ctx, repos, del, actorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("number", del.Number).Str("status", del.Status).Int("details", len(del.Details)).Msg("entrega registrada")
	return uc.Get(ctx, del.ID)
}

// Get devuelve la entrega con cliente, lote, actor y renglones.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	del, err := uc.repos.Deliveries.Load(ctx, id, repository.DeliveryAll)
	if err != nil {
		return nil, err
	}
	if del == nil {
		return nil, fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
	}
	out := toResponse(del)
	return &out, nil
}

// List lista entregas filtradas por rango de fechas, cliente, lote y estado.
func (uc *UseCase) List(ctx context.Context, q dto.DocumentListQuery) (*dto.DeliveryListResponse, error) {
	q.DefaultPage()
	from, to, err := inventory.ParseDateRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	if q.Status != "" && !entity.ValidDocumentStatus(q.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
	}
	list, total, err := uc.repos.Deliveries.List(ctx, entity.DeliveryFilter{
		From:     from,
		To:       to,
		ClientID: q.ClientID,
		LotID:    q.LotID,
		Status:   q.Status,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, repository.DeliveryAll)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update cambia notas, renglones (solo pendiente) y estado. Completar aplica salidas y
// consumo del lote; cancelar una completada devuelve stock y botellas.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		del, err := repos.Deliveries.Load(ctx, id, repository.DeliveryInclude{Details: true, ForUpdate: true})
		if err != nil {
			return err
		}
		if del == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		if del.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: la entrega %s está cancelada", domain.ErrInvalidState, del.Number)
		}

		if len(in.Details) > 0 {
			if del.Status != entity.StatusPending {
				return fmt.Errorf("%w: los renglones de %s solo se editan mientras está pendiente", domain.ErrInvalidState, del.Number)
			}
			details, err := buildDetails(ctx, repos, del.ID, in.Details)
			if err != nil {
				return err
			}
			if err := repos.Deliveries.ReplaceDetails(ctx, del.ID, details); err != nil {
				return err
			}
			del.Details = details
		}
		if in.Notes != nil {
			del.Notes = *in.Notes
		}

		if in.Status != nil && *in.Status != del.Status {
			if err := inventory.CheckTransition(del.Status, *in.Status); err != nil {
				return err
			}
			switch {
			case *in.Status == entity.StatusCompleted:
				err = uc.applyExits(ctx, repos, del, userID)
			case *in.Status == entity.StatusCancelled && del.Status == entity.StatusCompleted:
				err = uc.reverseExits(ctx, repos, del, userID)
			}
			if err != nil {
				return err
			}
			uc.log.Info().Str("number", del.Number).Str("from", del.Status).Str("to", *in.Status).Msg("cambio de estado")
			del.Status = *in.Status
		}

		del.UpdatedAt = time.Now()
		return repos.Deliveries.UpdateHeader(ctx, del)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina una entrega pendiente con sus renglones.
func (uc *UseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var number string
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		del, err := repos.Deliveries.Load(ctx, id, repository.DeliveryInclude{ForUpdate: true})
		if err != nil {
			return err
		}
		if del == nil {
			return fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
		}
		if del.Status != entity.StatusPending {
			return fmt.Errorf("%w: solo se eliminan entregas pendientes; %s está %s", domain.ErrInvalidState, del.Number, del.Status)
		}
		number = del.Number
		return repos.Deliveries.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("entrega %s eliminada", number)}, nil
}

// FormData clientes, lotes abiertos y líneas activas para el formulario de entrega.
func (uc *UseCase) FormData(ctx context.Context) (*dto.FormDataResponse, error) {
	clients, err := uc.repos.Clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	lots, err := uc.repos.Lots.List(ctx, entity.ProductionLotFilter{OpenOnly: true, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.Lines.List(ctx, entity.InventoryLineFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.FormDataResponse{
		Clients: make([]dto.OptionResponse, 0, len(clients)),
		Lots:    make([]dto.OptionResponse, 0, len(lots)),
		Lines:   make([]dto.LineOption, 0, len(lines)),
	}
	for _, c := range clients {
		out.Clients = append(out.Clients, dto.OptionResponse{ID: c.ID, Name: c.Name})
	}
	for _, l := range lots {
		out.Lots = append(out.Lots, dto.OptionResponse{ID: l.ID, Name: fmt.Sprintf("%s (%d botellas)", l.LotCode, l.BottlesRemaining)})
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.LineOption{
			ID: l.ID, LotCode: l.LotCode, CategoryName: l.CategoryName, ClientName: l.ClientName,
			Quantity: l.Quantity, Unit: l.Unit,
		})
	}
	inventory.SortOptions(out.Clients)
	return out, nil
}

// PDF genera el comprobante de la entrega; devuelve bytes y nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	del, err := uc.repos.Deliveries.Load(ctx, id, repository.DeliveryAll)
	if err != nil {
		return nil, "", err
	}
	if del == nil {
		return nil, "", fmt.Errorf("%w: entrega %s", domain.ErrNotFound, id)
	}
	b, err := uc.pdf.DeliveryPDF(ctx, del)
	if err != nil {
		return nil, "", fmt.Errorf("pdf entrega %s: %w", del.Number, err)
	}
	return b, del.Number + ".pdf", nil
}

func (uc *UseCase) applyExits(ctx context.Context, repos repository.Repos, del *entity.Delivery, actorID string) error {
	for _, det := range del.Details {
		_, err := uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
			LineID:     det.InventoryLineID,
			Kind:       entity.MovementOut,
			Amount:     det.Amount,
			ActorID:    actorID,
			DeliveryID: &del.ID,
			Reason:     "Entrega de insumos - " + del.Number,
			Reference:  del.Number,
		})
		if err != nil {
			return err
		}
		if det.WasteAmount > 0 {
			_, err = uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
				LineID:     det.InventoryLineID,
				Kind:       entity.MovementWaste,
				Amount:     det.WasteAmount,
				ActorID:    actorID,
				DeliveryID: &del.ID,
				Reason:     "Merma en entrega - " + del.Number,
				Reference:  del.Number,
			})
			if err != nil {
				return err
			}
		}
	}
	if del.ProductionLotID == nil {
		return nil
	}
	lot, err := lockLot(ctx, repos, *del.ProductionLotID)
	if err != nil {
		return err
	}
	if lot.Status == entity.LotClosed {
		return fmt.Errorf("%w: el lote %s está cerrado", domain.ErrInvalidState, lot.LotCode)
	}
	lot.Consume(del.TotalAmount())
	lot.UpdatedAt = time.Now()
	return repos.Lots.Update(ctx, lot)
}

func (uc *UseCase) reverseExits(ctx context.Context, repos repository.Repos, del *entity.Delivery, actorID string) error {
	for _, det := range del.Details {
		_, err := uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
			LineID:     det.InventoryLineID,
			Kind:       entity.MovementIn,
			Amount:     det.Amount + det.WasteAmount,
			ActorID:    actorID,
			DeliveryID: &del.ID,
			Reason:     "Cancelación de entrega - " + del.Number,
			Reference:  del.Number,
			Reversal:   true,
		})
		if err != nil {
			return err
		}
	}
	if del.ProductionLotID == nil {
		return nil
	}
	lot, err := lockLot(ctx, repos, *del.ProductionLotID)
	if err != nil {
		return err
	}
	lot.Restore(del.TotalAmount())
	lot.UpdatedAt = time.Now()
	return repos.Lots.Update(ctx, lot)
}

func lockLot(ctx context.Context, repos repository.Repos, id string) (*entity.ProductionLot, error) {
	lot, err := repos.Lots.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote de producción %s", domain.ErrNotFound, id)
	}
	return lot, nil
}

// checkHeader verifica cliente, lote opcional (del mismo cliente) y actor.
func checkHeader(ctx context.Context, repos repository.Repos, del *entity.Delivery) error {
	client, err := repos.Clients.GetByID(ctx, del.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, del.ClientID)
	}
	if del.ProductionLotID != nil {
		lot, err := repos.Lots.GetByID(ctx, *del.ProductionLotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return fmt.Errorf("%w: lote de producción %s", domain.ErrNotFound, *del.ProductionLotID)
		}
		if lot.ClientID != del.ClientID {
			return fmt.Errorf("%w: el lote %s pertenece a otro cliente", domain.ErrInvalidInput, lot.LotCode)
		}
	}
	actor, err := repos.Users.GetByID(ctx, del.ActorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("%w: actor %s", domain.ErrNotFound, del.ActorID)
	}
	return nil
}

func buildDetails(ctx context.Context, repos repository.Repos, deliveryID string, in []dto.DeliveryDetailRequest) ([]*entity.DeliveryDetail, error) {
	out := make([]*entity.DeliveryDetail, 0, len(in))
	for i, d := range in {
		if d.InventoryID == "" || d.Amount <= 0 {
			return nil, fmt.Errorf("%w: renglón %d requiere inventory_id y amount > 0", domain.ErrInvalidInput, i+1)
		}
		if d.WasteAmount < 0 {
			return nil, fmt.Errorf("%w: renglón %d con merma negativa", domain.ErrInvalidInput, i+1)
		}
		if d.Unit != "" && !entity.ValidUnit(d.Unit) {
			return nil, fmt.Errorf("%w: unit %q", domain.ErrInvalidInput, d.Unit)
		}
		line, err := repos.Lines.GetByID(ctx, d.InventoryID)
		if err != nil {
			return nil, err
		}
		if err := inventory.ActiveLine(line, d.InventoryID); err != nil {
			return nil, err
		}
		unit := d.Unit
		if unit == "" {
			unit = line.Unit
		}
		out = append(out, &entity.DeliveryDetail{
			ID:              uuid.New().String(),
			DeliveryID:      deliveryID,
			InventoryLineID: d.InventoryID,
			Amount:          d.Amount,
			WasteAmount:     d.WasteAmount,
			Unit:            unit,
			Notes:           d.Notes,
		})
	}
	return out, nil
}
