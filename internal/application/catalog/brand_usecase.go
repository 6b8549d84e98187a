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

// BrandUseCase casos de uso CRUD para marcas.
type BrandUseCase struct {
	repo    repository.BrandRepository
	clients repository.ClientRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository, clients repository.ClientRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo, clients: clients}
}

// Create crea una marca, opcionalmente ligada a un cliente existente.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	clientID, err := uc.checkClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Brand{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		ClientID:    clientID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, b.ID)
}

// GetByID obtiene una marca con el nombre de su cliente.
func (uc *BrandUseCase) GetByID(ctx context.Context, id string) (*dto.BrandResponse, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// Update modifica los campos informados; client_id "" desliga la marca.
func (uc *BrandUseCase) Update(ctx context.Context, id string, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setIf(&b.Name, in.Name)
	setIf(&b.Description, in.Description)
	if in.ClientID != nil {
		if b.ClientID, err = uc.checkClient(ctx, in.ClientID); err != nil {
			return nil, err
		}
	}
	if in.Active != nil {
		b.Active = *in.Active
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List lista marcas, opcionalmente de un cliente.
func (uc *BrandUseCase) List(ctx context.Context, clientID string, activeOnly bool) ([]dto.BrandResponse, error) {
	list, err := uc.repo.List(ctx, clientID, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// Delete desactiva la marca.
func (uc *BrandUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: fmt.Sprintf("marca %s desactivada", b.Name)}, nil
}

func (uc *BrandUseCase) get(ctx context.Context, id string) (*entity.Brand, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, id)
	}
	return b, nil
}

func (uc *BrandUseCase) checkClient(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	c, err := uc.clients.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, *id)
	}
	v := *id
	return &v, nil
}
