// Package xlsx exporta listados a hojas de cálculo con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
	"github.com/jhoicas/Insumos-api/internal/application/inventory"
)

var _ inventory.InventoryExporter = (*InventoryExporter)(nil)

const inventorySheet = "Inventario"

var inventoryHeaders = []string{
	"Lote", "Categoría", "Cliente", "Marca", "Variedad", "Presentación",
	"Proveedor", "Tipo de envío", "Cantidad", "Mínimo", "Unidad", "Nivel", "Última actualización",
}

var inventoryWidths = []float64{18, 16, 22, 18, 14, 14, 22, 14, 11, 11, 10, 11, 20}

var levelLabels = map[string]string{
	"adequate": "Adecuado",
	"low":      "Bajo",
	"critical": "Crítico",
}

// InventoryExporter genera el .xlsx del listado de inventario.
type InventoryExporter struct{}

// NewInventoryExporter construye el exportador.
func NewInventoryExporter() *InventoryExporter { return &InventoryExporter{} }

// ExportInventory escribe una fila por línea con el nivel de stock resaltado.
func (e *InventoryExporter) ExportInventory(_ context.Context, lines []dto.InventoryLineResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#7A3F1E"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	lowStyle, _ := f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFF2CC"}}})
	criticalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#9C0006"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#FFC7CE"}},
	})

	for i, h := range inventoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(inventorySheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado: %w", err)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(inventoryHeaders))
	_ = f.SetCellStyle(inventorySheet, "A1", last+"1", headerStyle)

	for i, l := range lines {
		r := i + 2
		values := []any{
			l.LotCode, l.CategoryName, l.ClientName, l.BrandName, l.VarietyName, l.PresentationName,
			l.SupplierName, l.ShipmentType, l.Quantity, nil, l.Unit, levelLabels[l.StockLevel],
			l.LastUpdated.Format("2006-01-02 15:04"),
		}
		if l.MinQuantity != nil {
			values[9] = *l.MinQuantity
		}
		start, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(inventorySheet, start, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", r, err)
		}
		switch {
		case l.IsCriticalStock:
			_ = f.SetCellStyle(inventorySheet, start, fmt.Sprintf("%s%d", last, r), criticalStyle)
		case l.IsLowStock:
			_ = f.SetCellStyle(inventorySheet, start, fmt.Sprintf("%s%d", last, r), lowStyle)
		}
	}

	for i, w := range inventoryWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(inventorySheet, col, col, w)
	}
	_ = f.SetPanes(inventorySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
