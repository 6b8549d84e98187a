package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Insumos-api/internal/domain"
	"github.com/jhoicas/Insumos-api/internal/domain/entity"
)

// StockLevel nivel de stock de una línea respecto a su mínimo.
type StockLevel string

const (
	LevelUnset    StockLevel = ""         // sin stock mínimo configurado
	LevelAdequate StockLevel = "adequate" // cantidad >= mínimo
	LevelLow      StockLevel = "low"      // crítico < cantidad < mínimo
	LevelCritical StockLevel = "critical" // cantidad <= 30% del mínimo
)

// CriticalRatio fracción del stock mínimo por debajo (o igual) de la cual el nivel es crítico.
var CriticalRatio = decimal.RequireFromString("0.3")

// ParseStockLevel valida el filtro stockLevel de los listados.
func ParseStockLevel(s string) (StockLevel, bool) {
	switch StockLevel(s) {
	case LevelAdequate, LevelLow, LevelCritical:
		return StockLevel(s), true
	}
	return LevelUnset, false
}

// Classify compara la cantidad con el mínimo. El orden importa: una cantidad igual al
// mínimo es adecuada aunque el mínimo sea 0, y una igual al 30% del mínimo es crítica.
func Classify(quantity int, minQuantity *int) StockLevel {
	if minQuantity == nil {
		return LevelUnset
	}
	if quantity >= *minQuantity {
		return LevelAdequate
	}
	threshold := decimal.NewFromInt(int64(*minQuantity)).Mul(CriticalRatio)
	if decimal.NewFromInt(int64(quantity)).LessThanOrEqual(threshold) {
		return LevelCritical
	}
	return LevelLow
}

// AlertKind devuelve el tipo de alerta que corresponde al nivel ("" si no alerta).
func (l StockLevel) AlertKind() string {
	switch l {
	case LevelLow:
		return entity.AlertLow
	case LevelCritical:
		return entity.AlertCritical
	}
	return ""
}

// NextQuantity calcula la cantidad resultante de aplicar un movimiento.
// in suma, out y waste restan (nunca por debajo de cero), adjust fija el valor absoluto.
func NextQuantity(current int, kind string, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	switch kind {
	case entity.MovementIn:
		return current + amount, nil
	case entity.MovementOut, entity.MovementWaste:
		next := current - amount
		if next < 0 {
			return 0, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, current, amount)
		}
		return next, nil
	case entity.MovementAdjust:
		return amount, nil
	}
	return 0, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, kind)
}
