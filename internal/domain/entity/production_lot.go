package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote de producción.
const (
	LotActive    = "activo"
	LotAging     = "añejando"
	LotCompleted = "completado"
	LotClosed    = "cerrado"
)

// ValidLotStatus indica si s es un estado de lote admitido.
func ValidLotStatus(s string) bool {
	switch s {
	case LotActive, LotAging, LotCompleted, LotClosed:
		return true
	}
	return false
}

// ProductionLot lote de mezcal envasado; las entregas descuentan BottlesRemaining.
type ProductionLot struct {
	ID               string
	ClientID         string
	BrandID          string
	VarietyID        string
	PresentationID   string
	LotCode          string
	ProductionDate   time.Time
	BottlesProduced  int
	BottlesRemaining int
	AgingProcess     string
	AgingMonths      int
	AlcoholGrade     decimal.Decimal // DECIMAL(4,2)
	Status           string
	Notes            string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Consume descuenta n botellas sin bajar de cero; al llegar a cero el lote queda completado.
func (l *ProductionLot) Consume(n int) {
	l.BottlesRemaining -= n
	if l.BottlesRemaining <= 0 {
		l.BottlesRemaining = 0
		l.Status = LotCompleted
	}
}

// Restore devuelve n botellas (cancelación de entrega) sin superar las producidas.
// Un lote completado por consumo vuelve a activo.
func (l *ProductionLot) Restore(n int) {
	l.BottlesRemaining += n
	if l.BottlesRemaining > l.BottlesProduced {
		l.BottlesRemaining = l.BottlesProduced
	}
	if l.Status == LotCompleted && l.BottlesRemaining > 0 {
		l.Status = LotActive
	}
}

// ProductionLotFilter filtros del listado de lotes.
type ProductionLotFilter struct {
	ClientID   string
	Status     string
	OpenOnly   bool // activo/añejando con botellas restantes
	ActiveOnly bool
}

// IsOpen indica si el lote aún admite entregas.
func (l *ProductionLot) IsOpen() bool {
	return (l.Status == LotActive || l.Status == LotAging) && l.BottlesRemaining > 0
}
