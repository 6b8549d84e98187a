package xlsx

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Insumos-api/internal/application/dto"
)

func TestExportInventory(t *testing.T) {
	minQty := 100
	lines := []dto.InventoryLineResponse{
		{LotCode: "BOT-750-01", CategoryName: "Botellas", ClientName: "Mezcal Oaxaqueño", Quantity: 20, MinQuantity: &minQty, Unit: "piezas", StockLevel: "critical", IsCriticalStock: true, LastUpdated: time.Now()},
		{LotCode: "TAP-01", CategoryName: "Tapones", Quantity: 500, Unit: "piezas", LastUpdated: time.Now()},
	}

	out, err := NewInventoryExporter().ExportInventory(context.Background(), lines)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(inventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado + 2 líneas")
	assert.Equal(t, "Lote", rows[0][0])
	assert.Equal(t, "BOT-750-01", rows[1][0])
	assert.Equal(t, "20", rows[1][8])
	assert.Equal(t, "100", rows[1][9])
	assert.Equal(t, "Crítico", rows[1][11])
	assert.Equal(t, "", rows[2][9], "sin mínimo la celda queda vacía")
}
