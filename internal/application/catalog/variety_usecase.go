package catalog

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

// VarietyUseCase casos de uso CRUD para variedades de agave.
type VarietyUseCase struct {
	repo repository.VarietyRepository
}

// NewVarietyUseCase construye el caso de uso.
func NewVarietyUseCase(repo repository.VarietyRepository) *VarietyUseCase {
	return &VarietyUseCase{repo: repo}
}

// Create crea una variedad activa.
func (uc *VarietyUseCase) Create(ctx context.Context, in dto.VarietyRequest) (*dto.VarietyResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	v := &entity.Variety{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Region:      in.Region,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return toVarietyResponse(v), nil
}

// GetByID obtiene una variedad.
func (uc *VarietyUseCase) GetByID(ctx context.Context, id string) (*dto.VarietyResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVarietyResponse(v), nil
}

// Update modifica los campos informados.
func (uc *VarietyUseCase) Update(ctx context.Context, id string, in dto.VarietyRequest) (*dto.VarietyResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setIf(&v.Name, in.Name)
	setIf(&v.Region, in.Region)
	setIf(&v.Description, in.Description)
	if in.Active != nil {
		v.Active = *in.Active
	}
	v.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return toVarietyResponse(v), nil
}

// List lista variedades ordenadas por nombre.
func (uc *VarietyUseCase) List(ctx context.Context, activeOnly bool) ([]dto.VarietyResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VarietyResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVarietyResponse(v))
	}
	return out, nil
}

// Delete desactiva la variedad.
func (uc *VarietyUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	v, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("variedad %s desactivada", v.Name)}, nil
}

func (uc *VarietyUseCase) get(ctx context.Context, id string) (*entity.Variety, error) {
	v, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: variedad %s", domain.ErrNotFound, id)
	}
	return v, nil
}
