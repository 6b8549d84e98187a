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

// PresentationUseCase casos de uso CRUD para presentaciones de botella.
type PresentationUseCase struct {
	repo repository.PresentationRepository
}

// NewPresentationUseCase construye el caso de uso.
func NewPresentationUseCase(repo repository.PresentationRepository) *PresentationUseCase {
	return &PresentationUseCase{repo: repo}
}

// Create crea una presentación activa.
func (uc *PresentationUseCase) Create(ctx context.Context, in dto.PresentationRequest) (*dto.PresentationResponse, error) {
	if in.Volume == "" {
		return nil, fmt.Errorf("%w: volume es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Presentation{
		ID:          uuid.New().String(),
		Volume:      in.Volume,
		Description: in.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toPresentationResponse(p), nil
}

// GetByID obtiene una presentación.
func (uc *PresentationUseCase) GetByID(ctx context.Context, id string) (*dto.PresentationResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPresentationResponse(p), nil
}

// Update modifica los campos informados.
func (uc *PresentationUseCase) Update(ctx context.Context, id string, in dto.PresentationRequest) (*dto.PresentationResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setIf(&p.Volume, in.Volume)
	setIf(&p.Description, in.Description)
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPresentationResponse(p), nil
}

// List lista presentaciones ordenadas por volumen.
func (uc *PresentationUseCase) List(ctx context.Context, activeOnly bool) ([]dto.PresentationResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PresentationResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPresentationResponse(p))
	}
	return out, nil
}

// Delete desactiva la presentación.
func (uc *PresentationUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("presentación %s desactivada", p.Volume)}, nil
}

func (uc *PresentationUseCase) get(ctx context.Context, id string) (*entity.Presentation, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: presentación %s", domain.ErrNotFound, id)
	}
	return p, nil
}
