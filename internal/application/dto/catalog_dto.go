package dto

import "time"

// ClientRequest alta/edición de cliente. En PUT los campos vacíos no se modifican.
type ClientRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactName string `json:"contact_name,omitempty" validate:"max=200"`
	Address     string `json:"address,omitempty"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Active      *bool  `json:"active,omitempty"`
}

// ClientResponse salida de cliente.
type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BrandRequest alta/edición de marca.
type BrandRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description,omitempty"`
	ClientID    *string `json:"client_id,omitempty" validate:"omitempty,uuid"`
	Active      *bool   `json:"active,omitempty"`
}

// BrandResponse salida de marca.
type BrandResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClientID    *string   `json:"client_id,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierRequest alta/edición de proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Contact     string `json:"contact,omitempty" validate:"max=200"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Address     string `json:"address,omitempty"`
	SupplyTypes string `json:"supply_types,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// SupplierResponse salida de proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	SupplyTypes string    `json:"supply_types,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VarietyRequest alta/edición de variedad de agave.
type VarietyRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Region      string `json:"region,omitempty" validate:"max=100"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// VarietyResponse salida de variedad.
type VarietyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Region      string    `json:"region,omitempty"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PresentationRequest alta/edición de presentación.
type PresentationRequest struct {
	Volume      string `json:"volume" validate:"required,max=50"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// PresentationResponse salida de presentación.
type PresentationResponse struct {
	ID          string    `json:"id"`
	Volume      string    `json:"volume"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryRequest alta/edición de categoría de insumo.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty" validate:"omitempty,oneof=piezas hojas rollos unidades"`
	Active      *bool  `json:"active,omitempty"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientConfigRequest reemplaza la configuración de un cliente. Una lista ausente no se
// modifica; una lista vacía elimina todas las asignaciones de ese tipo.
type ClientConfigRequest struct {
	Varieties     []string `json:"varieties,omitempty" validate:"omitempty,dive,uuid"`
	Presentations []string `json:"presentations,omitempty" validate:"omitempty,dive,uuid"`
	ShipmentTypes []string `json:"shipment_types,omitempty"`
}

// ClientVarietiesRequest PUT /api/clients/:id/varieties.
type ClientVarietiesRequest struct {
	Varieties []string `json:"varieties" validate:"required,dive,uuid"`
}

// ClientPresentationsRequest PUT /api/clients/:id/presentations.
type ClientPresentationsRequest struct {
	Presentations []string `json:"presentations" validate:"required,dive,uuid"`
}

// ClientShipmentTypesRequest PUT /api/clients/:id/types.
type ClientShipmentTypesRequest struct {
	ShipmentTypes []string `json:"shipment_types" validate:"required"`
}

// ClientConfigResponse configuración vigente de un cliente. En presentaciones Name es el volumen.
type ClientConfigResponse struct {
	ClientID      string           `json:"client_id"`
	ClientName    string           `json:"client_name"`
	Varieties     []OptionResponse `json:"varieties"`
	Presentations []OptionResponse `json:"presentations"`
	ShipmentTypes []string         `json:"shipment_types"`
}
