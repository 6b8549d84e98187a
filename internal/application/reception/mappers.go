package reception

import (
	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func toResponse(r *entity.Reception) dto.ReceptionResponse {
	out := dto.ReceptionResponse{
		ID:            r.ID,
		Number:        r.Number,
		Date:          r.Date,
		PurchaseOrder: r.PurchaseOrder,
		Invoice:       r.Invoice,
		SupplierID:    r.SupplierID,
		ClientID:      r.ClientID,
		DeliveredBy:   r.DeliveredBy,
		ReceivedBy:    r.ReceivedBy,
		ActorID:       r.ActorID,
		Status:        r.Status,
		Notes:         r.Notes,
		Details:       make([]dto.ReceptionDetailResponse, 0, len(r.Details)),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Supplier != nil {
		out.Supplier = &dto.OptionResponse{ID: r.Supplier.ID, Name: r.Supplier.Name}
	}
	if r.Client != nil {
		out.Client = &dto.OptionResponse{ID: r.Client.ID, Name: r.Client.Name}
	}
	if r.Actor != nil {
		out.Actor = &dto.OptionResponse{ID: r.Actor.ID, Name: r.Actor.Name}
	}
	for _, d := range r.Details {
		det := dto.ReceptionDetailResponse{
			ID:          d.ID,
			InventoryID: d.InventoryLineID,
			Amount:      d.Amount,
			Unit:        d.Unit,
			Notes:       d.Notes,
		}
		if d.Line != nil {
			det.LotCode = d.Line.LotCode
			det.CategoryName = d.Line.CategoryName
		}
		out.Details = append(out.Details, det)
	}
	return out
}
