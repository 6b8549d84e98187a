package dto

import "time"

// AlertResponse salida de una alerta de stock.
type AlertResponse struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	LotCode     string     `json:"lot_code,omitempty"`
	Kind        string     `json:"kind"`
	Message     string     `json:"message"`
	RaisedAt    time.Time  `json:"raised_at"`
	Seen        bool       `json:"seen"`
	Resolved    bool       `json:"resolved"`
	ResolvedBy  *string    `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// AlertListQuery filtros de GET /api/inventory/alerts.
type AlertListQuery struct {
	Seen     *bool  `query:"seen"`
	Resolved *bool  `query:"resolved"`
	Kind     string `query:"kind"`
}

// AlertListResponse listado de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateAlertRequest alta manual de una alerta.
type CreateAlertRequest struct {
	InventoryID string `json:"inventory_id" validate:"required,uuid"`
	Kind        string `json:"kind" validate:"required,oneof=low critical"`
	Message     string `json:"message" validate:"required,max=1000"`
}

// UnseenCountResponse respuesta de GET /api/inventory/alerts/unseen-count.
type UnseenCountResponse struct {
	Count int `json:"count"`
}
