package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/repository"
)

var maxAlcoholGrade = decimal.NewFromInt(100)

// ProductionLotUseCase casos de uso de lotes de producción.
type ProductionLotUseCase struct {
	repos repository.Repos
}

// NewProductionLotUseCase construye el caso de uso.
func NewProductionLotUseCase(repos repository.Repos) *ProductionLotUseCase {
	return &ProductionLotUseCase{repos: repos}
}

// ProductionLotQuery filtros del listado de lotes.
type ProductionLotQuery struct {
	ClientID   string
	Status     string
	OpenOnly   bool
	ActiveOnly bool
}

// Create registra un lote con todas sus botellas disponibles.
func (uc *ProductionLotUseCase) Create(ctx context.Context, in dto.ProductionLotRequest) (*dto.ProductionLotResponse, error) {
	now := time.Now()
	lot := &entity.ProductionLot{
		ID:        uuid.New().String(),
		Status:    entity.LotActive,
		Active:    true,
		CreatedAt: now,
	}
	if err := uc.apply(ctx, lot, in); err != nil {
		return nil, err
	}
	lot.BottlesRemaining = lot.BottlesProduced
	lot.UpdatedAt = now
	if err := uc.repos.Lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	out := ToProductionLotResponse(lot)
	return &out, nil
}

// GetByID obtiene un lote.
func (uc *ProductionLotUseCase) GetByID(ctx context.Context, id string) (*dto.ProductionLotResponse, error) {
	lot, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductionLotResponse(lot)
	return &out, nil
}

// Update reemplaza los datos del lote. Un cambio en botellas producidas ajusta las
// restantes en la misma diferencia, sin bajar de cero.
func (uc *ProductionLotUseCase) Update(ctx context.Context, id string, in dto.ProductionLotRequest) (*dto.ProductionLotResponse, error) {
	lot, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	produced := lot.BottlesProduced
	if err := uc.apply(ctx, lot, in); err != nil {
		return nil, err
	}
	lot.BottlesRemaining += lot.BottlesProduced - produced
	if lot.BottlesRemaining < 0 {
		lot.BottlesRemaining = 0
	}
	lot.UpdatedAt = time.Now()
	if err := uc.repos.Lots.Update(ctx, lot); err != nil {
		return nil, err
	}
	out := ToProductionLotResponse(lot)
	return &out, nil
}

// List lista lotes por cliente y estado; OpenOnly deja solo los que admiten entregas.
func (uc *ProductionLotUseCase) List(ctx context.Context, q ProductionLotQuery) ([]dto.ProductionLotResponse, error) {
	if q.Status != "" && !entity.ValidLotStatus(q.Status) {
		return nil, fmt.Errorf("%w: estado de lote %q", domain.ErrInvalidInput, q.Status)
	}
	list, err := uc.repos.Lots.List(ctx, entity.ProductionLotFilter{
		ClientID:   q.ClientID,
		Status:     q.Status,
		OpenOnly:   q.OpenOnly,
		ActiveOnly: q.ActiveOnly,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionLotResponse, 0, len(list))
	for _, l := range list {
		out = append(out, ToProductionLotResponse(l))
	}
	return out, nil
}

// Delete desactiva el lote.
func (uc *ProductionLotUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	lot, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repos.Lots.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("lote %s desactivado", lot.LotCode)}, nil
}

func (uc *ProductionLotUseCase) get(ctx context.Context, id string) (*entity.ProductionLot, error) {
	lot, err := uc.repos.Lots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lote de producción %s", domain.ErrNotFound, id)
	}
	return lot, nil
}

// apply valida la solicitud y copia sus campos al lote.
func (uc *ProductionLotUseCase) apply(ctx context.Context, lot *entity.ProductionLot, in dto.ProductionLotRequest) error {
	if in.LotCode == "" {
		return fmt.Errorf("%w: lot_code es requerido", domain.ErrInvalidInput)
	}
	if in.BottlesProduced <= 0 {
		return fmt.Errorf("%w: bottles_produced debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.AgingMonths < 0 {
		return fmt.Errorf("%w: aging_months no puede ser negativo", domain.ErrInvalidInput)
	}
	date, err := inventory.ParseDate(in.ProductionDate)
	if err != nil {
		return err
	}
	if in.Status != "" {
		if !entity.ValidLotStatus(in.Status) {
			return fmt.Errorf("%w: estado de lote %q", domain.ErrInvalidInput, in.Status)
		}
		lot.Status = in.Status
	}
	if in.AlcoholGrade != nil {
		if in.AlcoholGrade.IsNegative() || in.AlcoholGrade.GreaterThan(maxAlcoholGrade) {
			return fmt.Errorf("%w: alcohol_grade fuera de rango", domain.ErrInvalidInput)
		}
		lot.AlcoholGrade = in.AlcoholGrade.Round(2)
	}
	if err := uc.checkReferences(ctx, in); err != nil {
		return err
	}
	lot.ClientID = in.ClientID
	lot.BrandID = in.BrandID
	lot.VarietyID = in.VarietyID
	lot.PresentationID = in.PresentationID
	lot.LotCode = in.LotCode
	lot.ProductionDate = date
	lot.BottlesProduced = in.BottlesProduced
	lot.AgingProcess = in.AgingProcess
	lot.AgingMonths = in.AgingMonths
	lot.Notes = in.Notes
	return nil
}

func (uc *ProductionLotUseCase) checkReferences(ctx context.Context, in dto.ProductionLotRequest) error {
	client, err := uc.repos.Clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return err
	}
	if client == nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.ClientID)
	}
	brand, err := uc.repos.Brands.GetByID(ctx, in.BrandID)
	if err != nil {
		return err
	}
	if brand == nil {
		return fmt.Errorf("%w: marca %s", domain.ErrNotFound, in.BrandID)
	}
	variety, err := uc.repos.Varieties.GetByID(ctx, in.VarietyID)
	if err != nil {
		return err
	}
	if variety == nil {
		return fmt.Errorf("%w: variedad %s", domain.ErrNotFound, in.VarietyID)
	}
	presentation, err := uc.repos.Presentations.GetByID(ctx, in.PresentationID)
	if err != nil {
		return err
	}
	if presentation == nil {
		return fmt.Errorf("%w: presentación %s", domain.ErrNotFound, in.PresentationID)
	}
	return nil
}
