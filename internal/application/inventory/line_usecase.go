package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

// recentMovements cantidad de movimientos incluidos en el detalle de una línea.
const recentMovements = 10

// LineUseCase casos de uso de líneas de inventario: alta, edición, baja lógica, consultas,
// estadísticas y exportación. La cantidad solo cambia vía Ledger.
type LineUseCase struct {
	repos    repository.Repos
	txRunner TxRunner
	ledger   *Ledger
	alerts   *AlertEngine
	exporter InventoryExporter
}

// NewLineUseCase construye el caso de uso.
func NewLineUseCase(repos repository.Repos, txRunner TxRunner, ledger *Ledger, alerts *AlertEngine, exporter InventoryExporter) *LineUseCase {
	return &LineUseCase{repos: repos, txRunner: txRunner, ledger: ledger, alerts: alerts, exporter: exporter}
}

// Create da de alta una línea. Un stock inicial > 0 se registra como movimiento de entrada
// en la misma transacción; con stock 0 se evalúan las alertas directamente.
func (uc *LineUseCase) Create(ctx context.Context, actorID string, in dto.CreateInventoryLineRequest) (*dto.InventoryLineResponse, error) {
	if in.LotCode == "" || in.CategoryID == "" {
		return nil, fmt.Errorf("%w: category_id y lot_code son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.MinQuantity != nil && *in.MinQuantity < 0 {
		return nil, fmt.Errorf("%w: min_quantity no puede ser negativo", domain.ErrInvalidInput)
	}
	shipment := in.ShipmentType
	if shipment == "" {
		shipment = entity.ShipmentDomestic
	}
	if !entity.ValidShipmentType(shipment) {
		return nil, fmt.Errorf("%w: shipment_type %q", domain.ErrInvalidInput, shipment)
	}
	if in.Unit != "" && !entity.ValidUnit(in.Unit) {
		return nil, fmt.Errorf("%w: unit %q", domain.ErrInvalidInput, in.Unit)
	}

	now := time.Now()
	line := &entity.InventoryLine{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		ClientID:       nonEmptyPtr(in.ClientID),
		BrandID:        nonEmptyPtr(in.BrandID),
		VarietyID:      nonEmptyPtr(in.VarietyID),
		PresentationID: nonEmptyPtr(in.PresentationID),
		SupplierID:     nonEmptyPtr(in.SupplierID),
		ShipmentType:   shipment,
		LotCode:        in.LotCode,
		MinQuantity:    in.MinQuantity,
		Unit:           in.Unit,
		Active:         true,
		LastUpdated:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		category, err := checkReferences(ctx, repos, line)
		if err != nil {
			return err
		}
		if line.Unit == "" {
			line.Unit = category.Unit
		}
		if line.Unit == "" {
			line.Unit = entity.UnitPieces
		}
		if err := repos.Lines.Create(ctx, line); err != nil {
			return err
		}
		if in.Quantity > 0 {
			_, err := uc.ledger.ApplyInTx(ctx, repos, MovementInput{
				LineID:    line.ID,
				Kind:      entity.MovementIn,
				Amount:    in.Quantity,
				ActorID:   actorID,
				Reason:    "Stock inicial",
				Reference: line.LotCode,
			})
			return err
		}
		_, err = uc.alerts.Reevaluate(ctx, repos.Alerts, line)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, line.ID)
}

// GetByID devuelve la línea con sus últimos movimientos.
func (uc *LineUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryLineResponse, error) {
	line, err := uc.getLine(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	movs, _, err := uc.repos.Movements.ListByLine(ctx, id, recentMovements, 0)
	if err != nil {
		return nil, err
	}
	out := ToLineResponse(line)
	out.RecentMovements = make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out.RecentMovements = append(out.RecentMovements, ToMovementResponse(m))
	}
	return &out, nil
}

// Update edita atributos descriptivos. Un cambio de min_quantity reevalúa alertas.
func (uc *LineUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryLineRequest) (*dto.InventoryLineResponse, error) {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.Repos) error {
		line, err := repos.Lines.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, id)
		}
		if in.CategoryID != nil {
			line.CategoryID = *in.CategoryID
		}
		if in.ClientID != nil {
			line.ClientID = nonEmptyPtr(in.ClientID)
		}
		if in.BrandID != nil {
			line.BrandID = nonEmptyPtr(in.BrandID)
		}
		if in.VarietyID != nil {
			line.VarietyID = nonEmptyPtr(in.VarietyID)
		}
		if in.PresentationID != nil {
			line.PresentationID = nonEmptyPtr(in.PresentationID)
		}
		if in.SupplierID != nil {
			line.SupplierID = nonEmptyPtr(in.SupplierID)
		}
		if in.ShipmentType != nil {
			if !entity.ValidShipmentType(*in.ShipmentType) {
				return fmt.Errorf("%w: shipment_type %q", domain.ErrInvalidInput, *in.ShipmentType)
			}
			line.ShipmentType = *in.ShipmentType
		}
		if in.LotCode != nil {
			if *in.LotCode == "" {
				return fmt.Errorf("%w: lot_code no puede quedar vacío", domain.ErrInvalidInput)
			}
			line.LotCode = *in.LotCode
		}
		if in.Unit != nil {
			if !entity.ValidUnit(*in.Unit) {
				return fmt.Errorf("%w: unit %q", domain.ErrInvalidInput, *in.Unit)
			}
			line.Unit = *in.Unit
		}
		minChanged := false
		if in.MinQuantity != nil {
			if *in.MinQuantity < 0 {
				return fmt.Errorf("%w: min_quantity no puede ser negativo", domain.ErrInvalidInput)
			}
			minChanged = line.MinQuantity == nil || *line.MinQuantity != *in.MinQuantity
			line.MinQuantity = in.MinQuantity
		}
		if in.Active != nil {
			line.Active = *in.Active
		}
		if _, err := checkReferences(ctx, repos, line); err != nil {
			return err
		}
		line.UpdatedAt = time.Now()
		if err := repos.Lines.Update(ctx, line); err != nil {
			return err
		}
		if minChanged {
			_, err = uc.alerts.Reevaluate(ctx, repos.Alerts, line)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete da de baja lógica la línea (active=false); el historial se conserva.
func (uc *LineUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	line, err := uc.getLine(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Lines.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("línea %s desactivada", line.LotCode)}, nil
}

// List lista líneas con filtros. stockLevel se aplica después de cargar, con el mismo
// clasificador que usa el motor de alertas.
func (uc *LineUseCase) List(ctx context.Context, q dto.InventoryListQuery) (*dto.InventoryListResponse, error) {
	lines, err := uc.filtered(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, ToLineResponse(l))
	}
	return &dto.InventoryListResponse{Items: items, Total: len(items)}, nil
}

// Movements historial paginado de la línea, más reciente primero.
func (uc *LineUseCase) Movements(ctx context.Context, id string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	if _, err := uc.getLine(ctx, uc.repos, id); err != nil {
		return nil, err
	}
	movs, total, err := uc.repos.Movements.ListByLine(ctx, id, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Stats totales del inventario activo, por categoría y por cliente.
func (uc *LineUseCase) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	lines, err := uc.repos.Lines.List(ctx, entity.InventoryLineFilter{})
	if err != nil {
		return nil, err
	}
	unseen, err := uc.repos.Alerts.CountUnseen(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryStatsResponse{UnseenAlerts: unseen}
	byCategory := newGroupStats()
	byClient := newGroupStats()
	for _, l := range lines {
		level := inventory.Classify(l.Quantity, l.MinQuantity)
		out.TotalLines++
		out.TotalQuantity += l.Quantity
		switch level {
		case inventory.LevelLow:
			out.LowStock++
		case inventory.LevelCritical:
			out.CriticalStock++
		}
		byCategory.add(l.CategoryID, l.CategoryName, l.Quantity, level)
		clientID, clientName := "", "Sin cliente"
		if l.ClientID != nil {
			clientID, clientName = *l.ClientID, l.ClientName
		}
		byClient.add(clientID, clientName, l.Quantity, level)
	}
	out.ByCategory = byCategory.sorted()
	out.ByClient = byClient.sorted()
	return out, nil
}

// FilterOptions catálogos activos para los filtros, ordenados alfabéticamente en español.
func (uc *LineUseCase) FilterOptions(ctx context.Context) (*dto.FilterOptionsResponse, error) {
	categories, err := uc.repos.Categories.List(ctx, true)
	if err != nil {
		return nil, err
	}
	clients, err := uc.repos.Clients.List(ctx, true)
	if err != nil {
		return nil, err
	}
	brands, err := uc.repos.Brands.List(ctx, "", true)
	if err != nil {
		return nil, err
	}
	varieties, err := uc.repos.Varieties.List(ctx, true)
	if err != nil {
		return nil, err
	}
	presentations, err := uc.repos.Presentations.List(ctx, true)
	if err != nil {
		return nil, err
	}

	out := &dto.FilterOptionsResponse{
		ShipmentTypes: []string{entity.ShipmentDomestic, entity.ShipmentExport},
		Units:         []string{entity.UnitPieces, entity.UnitSheets, entity.UnitRolls, entity.UnitUnits},
		StockLevels:   []string{string(inventory.LevelCritical), string(inventory.LevelLow), string(inventory.LevelAdequate)},
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, dto.OptionResponse{ID: c.ID, Name: c.Name})
	}
	for _, c := range clients {
		out.Clients = append(out.Clients, dto.OptionResponse{ID: c.ID, Name: c.Name})
	}
	for _, b := range brands {
		out.Brands = append(out.Brands, dto.OptionResponse{ID: b.ID, Name: b.Name})
	}
	for _, v := range varieties {
		out.Varieties = append(out.Varieties, dto.OptionResponse{ID: v.ID, Name: v.Name})
	}
	for _, p := range presentations {
		out.Presentations = append(out.Presentations, dto.OptionResponse{ID: p.ID, Name: p.Volume})
	}
	for _, opts := range [][]dto.OptionResponse{out.Categories, out.Clients, out.Brands, out.Varieties, out.Presentations} {
		SortOptions(opts)
	}
	return out, nil
}

// Export genera el Excel del listado filtrado.
func (uc *LineUseCase) Export(ctx context.Context, q dto.InventoryListQuery) ([]byte, error) {
	list, err := uc.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportInventory(ctx, list.Items)
}

func (uc *LineUseCase) filtered(ctx context.Context, q dto.InventoryListQuery) ([]*entity.InventoryLine, error) {
	var level inventory.StockLevel
	if q.StockLevel != "" {
		var ok bool
		if level, ok = inventory.ParseStockLevel(q.StockLevel); !ok {
			return nil, fmt.Errorf("%w: stockLevel debe ser critical, low o adequate", domain.ErrInvalidInput)
		}
	}
	lines, err := uc.repos.Lines.List(ctx, entity.InventoryLineFilter{
		CategoryID:     q.CategoryID,
		ClientID:       q.ClientID,
		BrandID:        q.BrandID,
		VarietyID:      q.VarietyID,
		PresentationID: q.PresentationID,
		ShipmentType:   q.ShipmentType,
		Search:         q.Search,
		Active:         q.Active,
	})
	if err != nil {
		return nil, err
	}
	if level == inventory.LevelUnset {
		return lines, nil
	}
	out := lines[:0]
	for _, l := range lines {
		if inventory.Classify(l.Quantity, l.MinQuantity) == level {
			out = append(out, l)
		}
	}
	return out, nil
}

func (uc *LineUseCase) getLine(ctx context.Context, repos repository.Repos, id string) (*entity.InventoryLine, error) {
	line, err := repos.Lines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, fmt.Errorf("%w: línea de inventario %s", domain.ErrNotFound, id)
	}
	return line, nil
}

// checkReferences verifica que los catálogos referenciados existan; devuelve la categoría.
func checkReferences(ctx context.Context, repos repository.Repos, line *entity.InventoryLine) (*entity.Category, error) {
	category, err := repos.Categories.GetByID(ctx, line.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, line.CategoryID)
	}
	if line.ClientID != nil {
		c, err := repos.Clients.GetByID(ctx, *line.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *line.ClientID)
		}
	}
	if line.BrandID != nil {
		b, err := repos.Brands.GetByID(ctx, *line.BrandID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, *line.BrandID)
		}
	}
	if line.VarietyID != nil {
		v, err := repos.Varieties.GetByID(ctx, *line.VarietyID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("%w: variedad %s", domain.ErrNotFound, *line.VarietyID)
		}
	}
	if line.PresentationID != nil {
		p, err := repos.Presentations.GetByID(ctx, *line.PresentationID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: presentación %s", domain.ErrNotFound, *line.PresentationID)
		}
	}
	if line.SupplierID != nil {
		s, err := repos.Suppliers.GetByID(ctx, *line.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, *line.SupplierID)
		}
	}
	return category, nil
}

func nonEmptyPtr(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

// SortOptions ordena opciones por nombre con reglas de ordenamiento del español.
// collate.Collator no admite uso concurrente: se crea uno por llamada.
func SortOptions(opts []dto.OptionResponse) {
	cl := collate.New(language.Spanish)
	sort.SliceStable(opts, func(i, j int) bool {
		return cl.CompareString(opts[i].Name, opts[j].Name) < 0
	})
}

type groupStats struct {
	order []string
	byID  map[string]*dto.GroupStatsResponse
}

func newGroupStats() *groupStats {
	return &groupStats{byID: map[string]*dto.GroupStatsResponse{}}
}

func (g *groupStats) add(id, name string, qty int, level inventory.StockLevel) {
	s, ok := g.byID[id]
	if !ok {
		s = &dto.GroupStatsResponse{ID: id, Name: name}
		g.byID[id] = s
		g.order = append(g.order, id)
	}
	s.Lines++
	s.TotalQuantity += qty
	switch level {
	case inventory.LevelLow:
		s.LowStock++
	case inventory.LevelCritical:
		s.CriticalStock++
	}
}

func (g *groupStats) sorted() []dto.GroupStatsResponse {
	out := make([]dto.GroupStatsResponse, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, *g.byID[id])
	}
	cl := collate.New(language.Spanish)
	sort.SliceStable(out, func(i, j int) bool {
		return cl.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}
