package entity

import "time"

// Delivery salida de insumos hacia un cliente (numeración ENT-NNNNNN).
type Delivery struct {
	ID              string
	Number          string
	Date            time.Time
	ProductionOrder string
	ProductionLotID *string
	ClientID        string
	DeliveredBy     string
	ReceivedBy      string
	ActorID         string
	Status          string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Client  *Client
	Lot     *ProductionLot
	Actor   *User
	Details []*DeliveryDetail
}

// DeliveryDetail renglón de una entrega: Amount sale como "out" y WasteAmount como "waste".
type DeliveryDetail struct {
	ID              string
	DeliveryID      string
	InventoryLineID string
	Amount          int
	WasteAmount     int
	Unit            string
	Notes           string

	Line *InventoryLine
}

// DeliveryFilter filtros del listado de entregas.
type DeliveryFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
	LotID    string
	Status   string
	Limit    int
	Offset   int
}

// TotalAmount suma de cantidades entregadas (sin desperdicio).
func (d *Delivery) TotalAmount() int {
	total := 0
	for _, det := range d.Details {
		total += det.Amount
	}
	return total
}
