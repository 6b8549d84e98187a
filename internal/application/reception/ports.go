package reception

import (
	"context"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// PDFGenerator genera el comprobante imprimible de una recepción.
type PDFGenerator interface {
	ReceptionPDF(ctx context.Context, r *entity.Reception) ([]byte, error)
}
