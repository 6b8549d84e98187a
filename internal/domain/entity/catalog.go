package entity

import "time"

// Client cliente (marca propietaria) para quien se envasa.
type Client struct {
	ID          string
	Name        string
	ContactName string
	Address     string
	Phone       string
	Email       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Brand marca comercial de un cliente.
type Brand struct {
	ID          string
	Name        string
	Description string
	ClientID    *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	ClientName string
}

// Supplier proveedor de insumos.
type Supplier struct {
	ID          string
	Name        string
	Contact     string
	Phone       string
	Email       string
	Address     string
	SupplyTypes string // texto libre: botellas, tapones...
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variety variedad de agave (Espadín, Tobalá, Cuishe...).
type Variety struct {
	ID          string
	Name        string
	Region      string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Presentation presentación de botella (50ml, 750ml...).
type Presentation struct {
	ID          string
	Volume      string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category categoría de insumo (Botellas, Tapones, Etiquetas...).
type Category struct {
	ID          string
	Name        string
	Description string
	Unit        string // unidad de medida sugerida para sus líneas
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogRef referencia a un registro de catálogo con su nombre visible.
type CatalogRef struct {
	ID   string
	Name string
}

// ClientConfig variedades, presentaciones y tipos de envío asignados a un cliente.
// Acota las opciones de los formularios de inventario, recepción y entrega.
type ClientConfig struct {
	ClientID      string
	ClientName    string
	Varieties     []CatalogRef
	Presentations []CatalogRef // Name lleva el volumen
	ShipmentTypes []string
}
