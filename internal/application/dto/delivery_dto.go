package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryDetailRequest renglón de entrega; WasteAmount genera un movimiento de desperdicio.
type DeliveryDetailRequest struct {
	InventoryID string `json:"inventory_id" validate:"required,uuid"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	WasteAmount int    `json:"waste_amount" validate:"min=0"`
	Unit        string `json:"unit,omitempty" validate:"omitempty,oneof=piezas hojas rollos unidades"`
	Notes       string `json:"notes,omitempty" validate:"max=500"`
}

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	Date            string                  `json:"date" validate:"required"`
	ProductionOrder string                  `json:"production_order,omitempty" validate:"max=100"`
	ProductionLotID *string                 `json:"production_lot_id,omitempty" validate:"omitempty,uuid"`
	ClientID        string                  `json:"client_id" validate:"required,uuid"`
	DeliveredBy     string                  `json:"delivered_by,omitempty" validate:"max=200"`
	ReceivedBy      string                  `json:"received_by,omitempty" validate:"max=200"`
	ActorID         string                  `json:"actor_id,omitempty" validate:"omitempty,uuid"`
	Status          string                  `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	Notes           string                  `json:"notes,omitempty"`
	Details         []DeliveryDetailRequest `json:"details" validate:"required,min=1,dive"`
}

// UpdateDeliveryRequest body para PUT /api/deliveries/:id.
type UpdateDeliveryRequest struct {
	Status  *string                 `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Notes   *string                 `json:"notes,omitempty"`
	Details []DeliveryDetailRequest `json:"details,omitempty" validate:"omitempty,dive"`
}

// DeliveryDetailResponse renglón de entrega en la respuesta.
type DeliveryDetailResponse struct {
	ID           string `json:"id"`
	InventoryID  string `json:"inventory_id"`
	LotCode      string `json:"lot_code,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Amount       int    `json:"amount"`
	WasteAmount  int    `json:"waste_amount"`
	Unit         string `json:"unit"`
	Notes        string `json:"notes,omitempty"`
}

// DeliveryResponse entrega con relaciones cargadas.
type DeliveryResponse struct {
	ID              string                   `json:"id"`
	Number          string                   `json:"number"`
	Date            time.Time                `json:"date"`
	ProductionOrder string                   `json:"production_order,omitempty"`
	ProductionLotID *string                  `json:"production_lot_id,omitempty"`
	ProductionLot   *ProductionLotResponse   `json:"production_lot,omitempty"`
	ClientID        string                   `json:"client_id"`
	Client          *OptionResponse          `json:"client,omitempty"`
	DeliveredBy     string                   `json:"delivered_by,omitempty"`
	ReceivedBy      string                   `json:"received_by,omitempty"`
	ActorID         string                   `json:"actor_id"`
	Actor           *OptionResponse          `json:"actor,omitempty"`
	Status          string                   `json:"status"`
	Notes           string                   `json:"notes,omitempty"`
	Details         []DeliveryDetailResponse `json:"details"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// DeliveryListResponse listado paginado de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// WasteReportRow totales de una categoría en el reporte de desperdicio.
type WasteReportRow struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Delivered    int             `json:"delivered"`
	Waste        int             `json:"waste"`
	WastePercent decimal.Decimal `json:"waste_percent"`
}

// WasteReportResponse respuesta de GET /api/deliveries/waste-report.
type WasteReportResponse struct {
	From           *time.Time       `json:"from,omitempty"`
	To             *time.Time       `json:"to,omitempty"`
	Rows           []WasteReportRow `json:"rows"`
	TotalDelivered int              `json:"total_delivered"`
	TotalWaste     int              `json:"total_waste"`
	WastePercent   decimal.Decimal  `json:"waste_percent"`
}
