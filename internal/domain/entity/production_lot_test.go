package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

func TestProductionLot_ConsumeSeDetieneEnCero(t *testing.T) {
	lot := &entity.ProductionLot{BottlesProduced: 100, BottlesRemaining: 40, Status: entity.LotActive}

	lot.Consume(25)
	assert.Equal(t, 15, lot.BottlesRemaining)
	assert.Equal(t, entity.LotActive, lot.Status)

	lot.Consume(50)
	assert.Equal(t, 0, lot.BottlesRemaining, "nunca negativo")
	assert.Equal(t, entity.LotCompleted, lot.Status)
}

func TestProductionLot_RestoreNoSuperaProducidas(t *testing.T) {
	lot := &entity.ProductionLot{BottlesProduced: 100, BottlesRemaining: 0, Status: entity.LotCompleted}

	lot.Restore(30)
	assert.Equal(t, 30, lot.BottlesRemaining)
	assert.Equal(t, entity.LotActive, lot.Status, "un lote agotado vuelve a activo")

	lot.Restore(500)
	assert.Equal(t, 100, lot.BottlesRemaining)
}

func TestValidadores(t *testing.T) {
	assert.True(t, entity.ValidMovementKind("waste"))
	assert.False(t, entity.ValidMovementKind("transfer"))
	assert.True(t, entity.ValidShipmentType(entity.ShipmentExport))
	assert.False(t, entity.ValidShipmentType("Export"))
	assert.True(t, entity.ValidUnit("rollos"))
	assert.True(t, entity.ValidDocumentStatus("cancelled"))
	assert.True(t, entity.ValidLotStatus("añejando"))
	assert.False(t, entity.ValidRole("bodeguero"))
}
