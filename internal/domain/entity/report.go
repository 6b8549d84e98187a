package entity

import "time"

// WasteFilter rango y cliente del reporte de desperdicio.
type WasteFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
}

// WasteRow totales por categoría de insumo en entregas completadas.
type WasteRow struct {
	CategoryID   string
	CategoryName string
	Delivered    int
	Waste        int
}
