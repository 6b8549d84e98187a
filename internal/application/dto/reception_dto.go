package dto

import "time"

// ReceptionDetailRequest renglón de recepción.
type ReceptionDetailRequest struct {
	InventoryID string `json:"inventory_id" validate:"required,uuid"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Unit        string `json:"unit,omitempty" validate:"omitempty,oneof=piezas hojas rollos unidades"`
	Notes       string `json:"notes,omitempty" validate:"max=500"`
}

// CreateReceptionRequest body para POST /api/receptions.
// Date acepta "2006-01-02" o RFC3339. Status por defecto: completed.
type CreateReceptionRequest struct {
	Date          string                   `json:"date" validate:"required"`
	PurchaseOrder string                   `json:"purchase_order,omitempty" validate:"max=100"`
	Invoice       string                   `json:"invoice,omitempty" validate:"max=100"`
	SupplierID    string                   `json:"supplier_id" validate:"required,uuid"`
	ClientID      *string                  `json:"client_id,omitempty" validate:"omitempty,uuid"`
	DeliveredBy   string                   `json:"delivered_by,omitempty" validate:"max=200"`
	ReceivedBy    string                   `json:"received_by,omitempty" validate:"max=200"`
	ActorID       string                   `json:"actor_id,omitempty" validate:"omitempty,uuid"`
	Status        string                   `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
	Notes         string                   `json:"notes,omitempty"`
	Details       []ReceptionDetailRequest `json:"details" validate:"required,min=1,dive"`
}

// UpdateReceptionRequest body para PUT /api/receptions/:id.
// Details solo se acepta mientras la recepción está pendiente.
type UpdateReceptionRequest struct {
	Status  *string                  `json:"status,omitempty" validate:"omitempty,oneof=pending completed cancelled"`
	Notes   *string                  `json:"notes,omitempty"`
	Details []ReceptionDetailRequest `json:"details,omitempty" validate:"omitempty,dive"`
}

// DocumentListQuery filtros comunes de listados de recepciones y entregas.
type DocumentListQuery struct {
	From       string
	To         string
	ClientID   string
	SupplierID string
	LotID      string
	Status     string
	PageRequest
}

// ReceptionDetailResponse renglón de recepción en la respuesta.
type ReceptionDetailResponse struct {
	ID           string `json:"id"`
	InventoryID  string `json:"inventory_id"`
	LotCode      string `json:"lot_code,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	Amount       int    `json:"amount"`
	Unit         string `json:"unit"`
	Notes        string `json:"notes,omitempty"`
}

// ReceptionResponse recepción con relaciones cargadas.
type ReceptionResponse struct {
	ID            string                    `json:"id"`
	Number        string                    `json:"number"`
	Date          time.Time                 `json:"date"`
	PurchaseOrder string                    `json:"purchase_order,omitempty"`
	Invoice       string                    `json:"invoice,omitempty"`
	SupplierID    string                    `json:"supplier_id"`
	Supplier      *OptionResponse           `json:"supplier,omitempty"`
	ClientID      *string                   `json:"client_id,omitempty"`
	Client        *OptionResponse           `json:"client,omitempty"`
	DeliveredBy   string                    `json:"delivered_by,omitempty"`
	ReceivedBy    string                    `json:"received_by,omitempty"`
	ActorID       string                    `json:"actor_id"`
	Actor         *OptionResponse           `json:"actor,omitempty"`
	Status        string                    `json:"status"`
	Notes         string                    `json:"notes,omitempty"`
	Details       []ReceptionDetailResponse `json:"details"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// ReceptionListResponse listado paginado de recepciones.
type ReceptionListResponse struct {
	Items []ReceptionResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// LineOption línea de inventario resumida para formularios.
type LineOption struct {
	ID           string `json:"id"`
	LotCode      string `json:"lot_code"`
	CategoryName string `json:"category_name,omitempty"`
	ClientName   string `json:"client_name,omitempty"`
	Quantity     int    `json:"quantity"`
	Unit         string `json:"unit"`
}

// FormDataResponse catálogos activos para los formularios de recepción y entrega.
type FormDataResponse struct {
	Suppliers []OptionResponse `json:"suppliers,omitempty"`
	Clients   []OptionResponse `json:"clients"`
	Lots      []OptionResponse `json:"production_lots,omitempty"`
	Lines     []LineOption     `json:"inventory"`
}
