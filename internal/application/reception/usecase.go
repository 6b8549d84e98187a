package reception

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

// UseCase flujo de recepciones: alta con numeración consecutiva, transiciones de estado
// con sus movimientos de entrada (o compensatorios) y comprobante PDF.
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
	return &UseCase{repos: repos, txRunner: txRunner, ledger: ledger, pdf: pdf, log: log.Component("receptions")}
}

// Create registra la recepción y, si queda completada, una entrada por renglón.
// Cabecera, detalles, consecutivo y movimientos van en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateReceptionRequest) (*dto.ReceptionResponse, error) {
	date, err := inventory.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	status, err := inventory.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if in.SupplierID == "" {
		return nil, fmt.Errorf("%w: supplier_id es requerido", domain.ErrInvalidInput)
	}
	if len(in.Details) == 0 {
		return nil, fmt.Errorf("%w: la recepción requiere al menos un renglón", domain.ErrInvalidInput)
	}
	actorID := in.ActorID
	if actorID == "" {
		actorID = userID
	}

	now := time.Now()
	rec := &entity.Reception{
		ID:            uuid.New().String(),
		Date:          date,
		PurchaseOrder: in.PurchaseOrder,
		Invoice:       in.Invoice,
		SupplierID:    in.SupplierID,
		ClientID:      in.ClientID,
		DeliveredBy:   in.DeliveredBy,
		ReceivedBy:    in.ReceivedBy,
		ActorID:       actorID,
		Status:        status,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if rec.ClientID != nil && *rec.ClientID == "" {
		rec.ClientID = nil
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		if err := checkHeader(ctx, repos, rec); err != nil {
			return err
		}
		details, err := buildDetails(ctx, repos, rec.ID, in.Details)
		if err != nil {
			return err
		}
		rec.Details = details

		n, err := repos.Sequences.Next(ctx, inventory.PrefixReception)
		if err != nil {
			return fmt.Errorf("consecutivo de recepción: %w", err)
		}
		rec.Number = inventory.DocumentNumber(inventory.PrefixReception, n)

		if err := repos.Receptions.Create(ctx, rec); err != nil {
			return err
		}
		if rec.Status == entity.StatusCompleted {
			return uc.applyEntries(ctx, repos, rec, actorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("number", rec.Number).Str("status", rec.Status).Int("details", len(rec.Details)).Msg("recepción registrada")
	return uc.Get(ctx, rec.ID)
}

// Get devuelve la recepción con proveedor, cliente, actor y renglones.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ReceptionResponse, error) {
	rec, err := uc.repos.Receptions.Load(ctx, id, repository.ReceptionAll)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
	}
	out := toResponse(rec)
	return &out, nil
}

// List lista recepciones filtradas por rango de fechas, cliente, proveedor y estado.
func (uc *UseCase) List(ctx context.Context, q dto.DocumentListQuery) (*dto.ReceptionListResponse, error) {
	q.DefaultPage()
	from, to, err := inventory.ParseDateRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	if q.Status != "" && !entity.ValidDocumentStatus(q.Status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, q.Status)
	}
	list, total, err := uc.repos.Receptions.List(ctx, entity.ReceptionFilter{
		From:       from,
		To:         to,
		ClientID:   q.ClientID,
		SupplierID: q.SupplierID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}, repository.ReceptionAll)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceptionResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toResponse(r))
	}
	return &dto.ReceptionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Update cambia notas, renglones (solo pendiente) y estado. Completar aplica las entradas;
// cancelar una recepción completada registra salidas compensatorias.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateReceptionRequest) (*dto.ReceptionResponse, error) {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		rec, err := repos.Receptions.Load(ctx, id, repository.ReceptionInclude{Details: true, ForUpdate: true})
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		if rec.Status == entity.StatusCancelled {
			return fmt.Errorf("%w: la recepción %s está cancelada", domain.ErrInvalidState, rec.Number)
		}

		if len(in.Details) > 0 {
			if rec.Status != entity.StatusPending {
				return fmt.Errorf("%w: los renglones de %s solo se editan mientras está pendiente", domain.ErrInvalidState, rec.Number)
			}
			details, err := buildDetails(ctx, repos, rec.ID, in.Details)
			if err != nil {
				return err
			}
			if err := repos.Receptions.ReplaceDetails(ctx, rec.ID, details); err != nil {
				return err
			}
			rec.Details = details
		}
		if in.Notes != nil {
			rec.Notes = *in.Notes
		}

		if in.Status != nil && *in.Status != rec.Status {
			if err := inventory.CheckTransition(rec.Status, *in.Status); err != nil {
				return err
			}
			switch {
			case *in.Status == entity.StatusCompleted:
				err = uc.applyEntries(ctx, repos, rec, userID)
			case *in.Status == entity.StatusCancelled && rec.Status == entity.StatusCompleted:
				err = uc.reverseEntries(ctx, repos, rec, userID)
			}
			if err != nil {
				return err
			}
			uc.log.Info().Str("number", rec.Number).Str("from", rec.Status).Str("to", *in.Status).Msg("cambio de estado")
			rec.Status = *in.Status
		}

		rec.UpdatedAt = time.Now()
		return repos.Receptions.UpdateHeader(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete elimina una recepción pendiente con sus renglones.
func (uc *UseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	var number string
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		rec, err := repos.Receptions.Load(ctx, id, repository.ReceptionInclude{ForUpdate: true})
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
		}
		if rec.Status != entity.StatusPending {
			return fmt.Errorf("%w: solo se eliminan recepciones pendientes; %s está %s", domain.ErrInvalidState, rec.Number, rec.Status)
		}
		number = rec.Number
		return repos.Receptions.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("recepción %s eliminada", number)}, nil
}

// FormData catálogos activos para el formulario de recepción.
func (uc *UseCase) FormData(ctx context.Context) (*dto.FormDataResponse, error) {
	suppliers, err := uc.repos.Suppliers.List(ctx, true)
	if err != nil {
		return nil, err
	}
	clients, err := uc.repos.Clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	lines, err := uc.repos.Lines.List(ctx, entity.InventoryLineFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.FormDataResponse{
		Suppliers: make([]dto.OptionResponse, 0, len(suppliers)),
		Clients:   make([]dto.OptionResponse, 0, len(clients)),
		Lines:     make([]dto.LineOption, 0, len(lines)),
	}
	for _, s := range suppliers {
		out.Suppliers = append(out.Suppliers, dto.OptionResponse{ID: s.ID, Name: s.Name})
	}
	for _, c := range clients {
		out.Clients = append(out.Clients, dto.OptionResponse{ID: c.ID, Name: c.Name})
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.LineOption{
			ID: l.ID, LotCode: l.LotCode, CategoryName: l.CategoryName, ClientName: l.ClientName,
			Quantity: l.Quantity, Unit: l.Unit,
		})
	}
	inventory.SortOptions(out.Suppliers)
	inventory.SortOptions(out.Clients)
	return out, nil
}

// PDF genera el comprobante de la recepción; devuelve bytes y nombre de archivo.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	rec, err := uc.repos.Receptions.Load(ctx, id, repository.ReceptionAll)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", fmt.Errorf("%w: recepción %s", domain.ErrNotFound, id)
	}
	b, err := uc.pdf.ReceptionPDF(ctx, rec)
	if err != nil {
		return nil, "", fmt.Errorf("pdf recepción %s: %w", rec.Number, err)
	}
	return b, rec.Number + ".pdf", nil
}

func (uc *UseCase) applyEntries(ctx context.Context, repos repository.Repos, rec *entity.Reception, actorID string) error {
	for _, det := range rec.Details {
		_, err := uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
			LineID:      det.InventoryLineID,
			Kind:        entity.MovementIn,
			Amount:      det.Amount,
			ActorID:     actorID,
			ReceptionID: &rec.ID,
			Reason:      "Recepción de insumos - " + rec.Number,
			Reference:   rec.Number,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (uc *UseCase) reverseEntries(ctx context.Context, repos repository.Repos, rec *entity.Reception, actorID string) error {
	for _, det := range rec.Details {
		_, err := uc.ledger.ApplyInTx(ctx, repos, inventory.MovementInput{
			LineID:      det.InventoryLineID,
			Kind:        entity.MovementOut,
			Amount:      det.Amount,
			ActorID:     actorID,
			ReceptionID: &rec.ID,
			Reason:      "Cancelación de recepción - " + rec.Number,
			Reference:   rec.Number,
			Reversal:    true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// checkHeader verifica proveedor, cliente opcional y actor.
func checkHeader(ctx context.Context, repos repository.Repos, rec *entity.Reception) error {
	supplier, err := repos.Suppliers.GetByID(ctx, rec.SupplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, rec.SupplierID)
	}
	if rec.ClientID != nil {
		client, err := repos.Clients.GetByID(ctx, *rec.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *rec.ClientID)
		}
	}
	actor, err := repos.Users.GetByID(ctx, rec.ActorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("%w: actor %s", domain.ErrNotFound, rec.ActorID)
	}
	return nil
}

func buildDetails(ctx context.Context, repos repository.Repos, receptionID string, in []dto.ReceptionDetailRequest) ([]*entity.ReceptionDetail, error) {
	out := make([]*entity.ReceptionDetail, 0, len(in))
	for i, d := range in {
		if d.InventoryID == "" || d.Amount <= 0 {
			return nil, fmt.Errorf("%w: renglón %d requiere inventory_id y amount > 0", domain.ErrInvalidInput, i+1)
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
		out = append(out, &entity.ReceptionDetail{
			ID:              uuid.New().String(),
			ReceptionID:     receptionID,
			InventoryLineID: d.InventoryID,
			Amount:          d.Amount,
			Unit:            unit,
			Notes:           d.Notes,
		})
	}
	return out, nil
}
