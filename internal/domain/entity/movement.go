package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	MovementIn     = "in"     // entrada: suma
	MovementOut    = "out"    // salida: resta
	MovementAdjust = "adjust" // ajuste: fija la cantidad absoluta
	MovementWaste  = "waste"  // desperdicio: resta
)

// ValidMovementKind indica si k es un tipo de movimiento admitido.
func ValidMovementKind(k string) bool {
	switch k {
	case MovementIn, MovementOut, MovementAdjust, MovementWaste:
		return true
	}
	return false
}

// Movement registro inmutable de un cambio de stock. QuantityAfter coincide con la
// cantidad de la línea en el instante del commit.
type Movement struct {
	ID              string
	InventoryLineID string
	ActorID         string
	Kind            string
	Amount          int
	QuantityBefore  int
	QuantityAfter   int
	ReceptionID     *string
	DeliveryID      *string
	Reason          string
	ReferenceCode   string
	CreatedAt       time.Time

	ActorName string // resuelto por JOIN en el historial
}
