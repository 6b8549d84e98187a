package delivery

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// wastePercent merma / entregado * 100, redondeado a dos decimales.
func wastePercent(delivered, waste int) decimal.Decimal {
	if delivered == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(waste)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(delivered))).
		Round(2)
}

// WasteReport totales de entregado y merma por categoría para entregas completadas.
// Solo aparecen las categorías con merma.
func (uc *UseCase) WasteReport(ctx context.Context, q dto.DocumentListQuery) (*dto.WasteReportResponse, error) {
	from, to, err := inventory.ParseDateRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	rows, err := uc.repos.Deliveries.WasteByCategory(ctx, entity.WasteFilter{From: from, To: to, ClientID: q.ClientID})
	if err != nil {
		return nil, err
	}
	out := &dto.WasteReportResponse{From: from, To: to, Rows: make([]dto.WasteReportRow, 0, len(rows))}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.WasteReportRow{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Delivered:    r.Delivered,
			Waste:        r.Waste,
			WastePercent: wastePercent(r.Delivered, r.Waste),
		})
		out.TotalDelivered += r.Delivered
		out.TotalWaste += r.Waste
	}
	out.WastePercent = wastePercent(out.TotalDelivered, out.TotalWaste)
	return out, nil
}
