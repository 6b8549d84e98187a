package entity

import "time"

// Tipos de envío de una línea de inventario.
const (
	ShipmentDomestic = "Nacional"
	ShipmentExport   = "Exportación"
)

// Unidades de medida admitidas para insumos.
const (
	UnitPieces = "piezas"
	UnitSheets = "hojas"
	UnitRolls  = "rollos"
	UnitUnits  = "unidades"
)

// ValidShipmentType indica si s es un tipo de envío admitido.
func ValidShipmentType(s string) bool {
	return s == ShipmentDomestic || s == ShipmentExport
}

// ValidUnit indica si s es una unidad admitida.
func ValidUnit(s string) bool {
	switch s {
	case UnitPieces, UnitSheets, UnitRolls, UnitUnits:
		return true
	}
	return false
}

// InventoryLine es un insumo con stock propio identificado por su código de lote.
// Quantity solo cambia a través del libro de movimientos.
type InventoryLine struct {
	ID             string
	CategoryID     string
	ClientID       *string
	BrandID        *string
	VarietyID      *string
	PresentationID *string
	SupplierID     *string
	ShipmentType   string
	LotCode        string
	Quantity       int
	MinQuantity    *int // nil = sin umbral, nunca alerta
	Unit           string
	Active         bool
	LastUpdated    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Nombres de catálogos resueltos por JOIN en los listados.
	CategoryName     string
	ClientName       string
	BrandName        string
	VarietyName      string
	PresentationName string
	SupplierName     string
}

// InventoryLineFilter filtros del listado de inventario; cadenas vacías no filtran.
// Active nil equivale a solo activas.
type InventoryLineFilter struct {
	CategoryID     string
	ClientID       string
	BrandID        string
	VarietyID      string
	PresentationID string
	ShipmentType   string
	Search         string
	Active         *bool
}
