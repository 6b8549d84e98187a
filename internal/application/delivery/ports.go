package delivery

import (
	"context"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// PDFGenerator genera el comprobante imprimible de una entrega.
type PDFGenerator interface {
	DeliveryPDF(ctx context.Context, d *entity.Delivery) ([]byte, error)
}
