package catalog

import (
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// ToProductionLotResponse mapea un lote a su DTO; también lo usan las entregas.
func ToProductionLotResponse(l *entity.ProductionLot) dto.ProductionLotResponse {
	return dto.ProductionLotResponse{
		ID:               l.ID,
		ClientID:         l.ClientID,
		BrandID:          l.BrandID,
		VarietyID:        l.VarietyID,
		PresentationID:   l.PresentationID,
		LotCode:          l.LotCode,
		ProductionDate:   l.ProductionDate,
		BottlesProduced:  l.BottlesProduced,
		BottlesRemaining: l.BottlesRemaining,
		AgingProcess:     l.AgingProcess,
		AgingMonths:      l.AgingMonths,
		AlcoholGrade:     l.AlcoholGrade,
		Status:           l.Status,
		Notes:            l.Notes,
		Active:           l.Active,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		ClientID:    b.ClientID,
		ClientName:  b.ClientName,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Contact:     s.Contact,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		SupplyTypes: s.SupplyTypes,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toVarietyResponse(v *entity.Variety) *dto.VarietyResponse {
	return &dto.VarietyResponse{
		ID:          v.ID,
		Name:        v.Name,
		Region:      v.Region,
		Description: v.Description,
		Active:      v.Active,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toPresentationResponse(p *entity.Presentation) *dto.PresentationResponse {
	return &dto.PresentationResponse{
		ID:          p.ID,
		Volume:      p.Volume,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Unit:        c.Unit,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
