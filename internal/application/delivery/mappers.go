package delivery

import (
	"github.com/jhoicas/Insumos-api/internal/application/catalog"
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func toResponse(d *entity.Delivery) dto.DeliveryResponse {
	out := dto.DeliveryResponse{
		ID:              d.ID,
		Number:          d.Number,
		Date:            d.Date,
		ProductionOrder: d.ProductionOrder,
		ProductionLotID: d.ProductionLotID,
		ClientID:        d.ClientID,
		DeliveredBy:     d.DeliveredBy,
		ReceivedBy:      d.ReceivedBy,
		ActorID:         d.ActorID,
		Status:          d.Status,
		Notes:           d.Notes,
		Details:         make([]dto.DeliveryDetailResponse, 0, len(d.Details)),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Client != nil {
		out.Client = &dto.OptionResponse{ID: d.Client.ID, Name: d.Client.Name}
	}
	if d.Actor != nil {
		out.Actor = &dto.OptionResponse{ID: d.Actor.ID, Name: d.Actor.Name}
	}
	if d.Lot != nil {
		lot := catalog.ToProductionLotResponse(d.Lot)
		out.ProductionLot = &lot
	}
	for _, det := range d.Details {
		r := dto.DeliveryDetailResponse{
			ID:          det.ID,
			InventoryID: det.InventoryLineID,
			Amount:      det.Amount,
			WasteAmount: det.WasteAmount,
			Unit:        det.Unit,
			Notes:       det.Notes,
		}
		if det.Line != nil {
			r.LotCode = det.Line.LotCode
			r.CategoryName = det.Line.CategoryName
		}
		out.Details = append(out.Details, r)
	}
	return out
}
