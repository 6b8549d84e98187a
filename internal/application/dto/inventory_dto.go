package dto

import "time"

// CreateInventoryLineRequest body para POST /api/inventory.
// Quantity es el stock inicial y se registra como movimiento de entrada.
type CreateInventoryLineRequest struct {
	CategoryID     string  `json:"category_id" validate:"required,uuid"`
	ClientID       *string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	BrandID        *string `json:"brand_id,omitempty" validate:"omitempty,uuid"`
	VarietyID      *string `json:"variety_id,omitempty" validate:"omitempty,uuid"`
	PresentationID *string `json:"presentation_id,omitempty" validate:"omitempty,uuid"`
	SupplierID     *string `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	ShipmentType   string  `json:"shipment_type" validate:"omitempty,oneof=Nacional Exportación"`
	LotCode        string  `json:"lot_code" validate:"required,max=100"`
	Quantity       int     `json:"quantity" validate:"min=0"`
	MinQuantity    *int    `json:"min_quantity,omitempty" validate:"omitempty,min=0"`
	Unit           string  `json:"unit" validate:"omitempty,oneof=piezas hojas rollos unidades"`
}

// UpdateInventoryLineRequest body para PUT /api/inventory/:id. La cantidad no se edita aquí.
type UpdateInventoryLineRequest struct {
	CategoryID     *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
	ClientID       *string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	BrandID        *string `json:"brand_id,omitempty" validate:"omitempty,uuid"`
	VarietyID      *string `json:"variety_id,omitempty" validate:"omitempty,uuid"`
	PresentationID *string `json:"presentation_id,omitempty" validate:"omitempty,uuid"`
	SupplierID     *string `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	ShipmentType   *string `json:"shipment_type,omitempty" validate:"omitempty,oneof=Nacional Exportación"`
	LotCode        *string `json:"lot_code,omitempty" validate:"omitempty,max=100"`
	MinQuantity    *int    `json:"min_quantity,omitempty" validate:"omitempty,min=0"`
	Unit           *string `json:"unit,omitempty" validate:"omitempty,oneof=piezas hojas rollos unidades"`
	Active         *bool   `json:"active,omitempty"`
}

// InventoryListQuery filtros de GET /api/inventory.
type InventoryListQuery struct {
	CategoryID     string `query:"category_id"`
	ClientID       string `query:"client_id"`
	BrandID        string `query:"brand_id"`
	VarietyID      string `query:"variety_id"`
	PresentationID string `query:"presentation_id"`
	ShipmentType   string `query:"shipment_type"`
	Search         string `query:"search"`
	StockLevel     string `query:"stockLevel"`
	Active         *bool  `query:"active"`
}

// InventoryLineResponse salida de una línea de inventario con su nivel de stock.
type InventoryLineResponse struct {
	ID               string             `json:"id"`
	CategoryID       string             `json:"category_id"`
	CategoryName     string             `json:"category_name,omitempty"`
	ClientID         *string            `json:"client_id,omitempty"`
	ClientName       string             `json:"client_name,omitempty"`
	BrandID          *string            `json:"brand_id,omitempty"`
	BrandName        string             `json:"brand_name,omitempty"`
	VarietyID        *string            `json:"variety_id,omitempty"`
	VarietyName      string             `json:"variety_name,omitempty"`
	PresentationID   *string            `json:"presentation_id,omitempty"`
	PresentationName string             `json:"presentation_name,omitempty"`
	SupplierID       *string            `json:"supplier_id,omitempty"`
	SupplierName     string             `json:"supplier_name,omitempty"`
	ShipmentType     string             `json:"shipment_type"`
	LotCode          string             `json:"lot_code"`
	Quantity         int                `json:"quantity"`
	MinQuantity      *int               `json:"min_quantity"`
	Unit             string             `json:"unit"`
	Active           bool               `json:"active"`
	StockLevel       string             `json:"stock_level,omitempty"`
	IsLowStock       bool               `json:"is_low_stock"`
	IsCriticalStock  bool               `json:"is_critical_stock"`
	LastUpdated      time.Time          `json:"last_updated"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	RecentMovements  []MovementResponse `json:"recent_movements,omitempty"`
}

// InventoryListResponse listado filtrado de inventario.
type InventoryListResponse struct {
	Items []InventoryLineResponse `json:"items"`
	Total int                     `json:"total"`
}

// ApplyMovementRequest body para POST /api/inventory/movement.
// ActorID es opcional: por defecto se usa el usuario autenticado.
type ApplyMovementRequest struct {
	InventoryID string `json:"inventory_id" validate:"required,uuid"`
	Kind        string `json:"kind" validate:"required,oneof=in out adjust waste"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	ActorID     string `json:"actor_id,omitempty" validate:"omitempty,uuid"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
	Reference   string `json:"reference,omitempty" validate:"max=100"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	InventoryID    string    `json:"inventory_id"`
	ActorID        string    `json:"actor_id"`
	ActorName      string    `json:"actor_name,omitempty"`
	Kind           string    `json:"kind"`
	Amount         int       `json:"amount"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	ReceptionID    *string   `json:"reception_id,omitempty"`
	DeliveryID     *string   `json:"delivery_id,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Reference      string    `json:"reference,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementResultResponse respuesta de POST /api/inventory/movement.
type MovementResultResponse struct {
	Movement MovementResponse `json:"movement"`
	Before   int              `json:"before"`
	After    int              `json:"after"`
}

// MovementListResponse historial paginado de una línea.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// GroupStatsResponse agregados de inventario por categoría o cliente.
type GroupStatsResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Lines         int    `json:"lines"`
	TotalQuantity int    `json:"total_quantity"`
	LowStock      int    `json:"low_stock"`
	CriticalStock int    `json:"critical_stock"`
}

// InventoryStatsResponse respuesta de GET /api/inventory/stats.
type InventoryStatsResponse struct {
	TotalLines    int                  `json:"total_lines"`
	TotalQuantity int                  `json:"total_quantity"`
	LowStock      int                  `json:"low_stock"`
	CriticalStock int                  `json:"critical_stock"`
	UnseenAlerts  int                  `json:"unseen_alerts"`
	ByCategory    []GroupStatsResponse `json:"by_category"`
	ByClient      []GroupStatsResponse `json:"by_client"`
}

// FilterOptionsResponse opciones para los filtros del listado de inventario.
type FilterOptionsResponse struct {
	Categories    []OptionResponse `json:"categories"`
	Clients       []OptionResponse `json:"clients"`
	Brands        []OptionResponse `json:"brands"`
	Varieties     []OptionResponse `json:"varieties"`
	Presentations []OptionResponse `json:"presentations"`
	ShipmentTypes []string         `json:"shipment_types"`
	Units         []string         `json:"units"`
	StockLevels   []string         `json:"stock_levels"`
}
