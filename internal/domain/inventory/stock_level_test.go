package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
	"github.com/jhoicas/Insumos-api/internal/domain/inventory"
)

func ptr(n int) *int { return &n }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		qty  int
		min  *int
		want inventory.StockLevel
	}{
		{"sin mínimo nunca alerta", 0, nil, inventory.LevelUnset},
		{"igual al mínimo es adecuado", 100, ptr(100), inventory.LevelAdequate},
		{"por encima del mínimo", 150, ptr(100), inventory.LevelAdequate},
		{"justo debajo del mínimo es bajo", 99, ptr(100), inventory.LevelLow},
		{"un punto sobre el 30% es bajo", 31, ptr(100), inventory.LevelLow},
		{"exactamente 30% es crítico", 30, ptr(100), inventory.LevelCritical},
		{"cero es crítico", 0, ptr(100), inventory.LevelCritical},
		{"30% con decimales: 3 de 10", 3, ptr(10), inventory.LevelCritical},
		{"4 de 10 es bajo", 4, ptr(10), inventory.LevelLow},
		{"mínimo 0 con stock 0 es adecuado", 0, ptr(0), inventory.LevelAdequate},
		{"umbral fraccionario: 2 de 7 (2.1)", 2, ptr(7), inventory.LevelCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.Classify(tc.qty, tc.min))
		})
	}
}

func TestStockLevel_AlertKind(t *testing.T) {
	assert.Equal(t, entity.AlertLow, inventory.LevelLow.AlertKind())
	assert.Equal(t, entity.AlertCritical, inventory.LevelCritical.AlertKind())
	assert.Empty(t, inventory.LevelAdequate.AlertKind())
	assert.Empty(t, inventory.LevelUnset.AlertKind())
}

func TestParseStockLevel(t *testing.T) {
	lvl, ok := inventory.ParseStockLevel("critical")
	assert.True(t, ok)
	assert.Equal(t, inventory.LevelCritical, lvl)

	_, ok = inventory.ParseStockLevel("medio")
	assert.False(t, ok)
}

func TestNextQuantity(t *testing.T) {
	next, err := inventory.NextQuantity(50, entity.MovementIn, 10)
	require.NoError(t, err)
	assert.Equal(t, 60, next)

	next, err = inventory.NextQuantity(50, entity.MovementOut, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "se permite llegar exactamente a cero")

	next, err = inventory.NextQuantity(50, entity.MovementWaste, 5)
	require.NoError(t, err)
	assert.Equal(t, 45, next)

	next, err = inventory.NextQuantity(50, entity.MovementAdjust, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, next, "ajuste fija el valor absoluto")
}

func TestNextQuantity_Errores(t *testing.T) {
	_, err := inventory.NextQuantity(50, entity.MovementOut, 60)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.NextQuantity(5, entity.MovementWaste, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = inventory.NextQuantity(50, entity.MovementIn, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.NextQuantity(50, entity.MovementIn, -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.NextQuantity(50, "transfer", 3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNextQuantity_IdaYVuelta(t *testing.T) {
	for _, start := range []int{0, 1, 17, 1000} {
		up, err := inventory.NextQuantity(start, entity.MovementIn, 25)
		require.NoError(t, err)
		back, err := inventory.NextQuantity(up, entity.MovementOut, 25)
		require.NoError(t, err)
		assert.Equal(t, start, back)
	}
}
