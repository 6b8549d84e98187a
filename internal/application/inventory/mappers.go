package inventory

import (
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/inventory"
)

// ToLineResponse mapea una línea a su DTO, con el nivel de stock calculado.
func ToLineResponse(l *entity.InventoryLine) dto.InventoryLineResponse {
	level := inventory.Classify(l.Quantity, l.MinQuantity)
	return dto.InventoryLineResponse{
		ID:               l.ID,
		CategoryID:       l.CategoryID,
		CategoryName:     l.CategoryName,
		ClientID:         l.ClientID,
		ClientName:       l.ClientName,
		BrandID:          l.BrandID,
		BrandName:        l.BrandName,
		VarietyID:        l.VarietyID,
		VarietyName:      l.VarietyName,
		PresentationID:   l.PresentationID,
		PresentationName: l.PresentationName,
		SupplierID:       l.SupplierID,
		SupplierName:     l.SupplierName,
		ShipmentType:     l.ShipmentType,
		LotCode:          l.LotCode,
		Quantity:         l.Quantity,
		MinQuantity:      l.MinQuantity,
		Unit:             l.Unit,
		Active:           l.Active,
		StockLevel:       string(level),
		IsLowStock:       level == inventory.LevelLow,
		IsCriticalStock:  level == inventory.LevelCritical,
		LastUpdated:      l.LastUpdated,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a su DTO.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		InventoryID:    m.InventoryLineID,
		ActorID:        m.ActorID,
		ActorName:      m.ActorName,
		Kind:           m.Kind,
		Amount:         m.Amount,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		ReceptionID:    m.ReceptionID,
		DeliveryID:     m.DeliveryID,
		Reason:         m.Reason,
		Reference:      m.ReferenceCode,
		CreatedAt:      m.CreatedAt,
	}
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:          a.ID,
		InventoryID: a.InventoryLineID,
		LotCode:     a.LotCode,
		Kind:        a.Kind,
		Message:     a.Message,
		RaisedAt:    a.RaisedAt,
		Seen:        a.Seen,
		Resolved:    a.Resolved,
		ResolvedBy:  a.ResolvedBy,
		ResolvedAt:  a.ResolvedAt,
	}
}
