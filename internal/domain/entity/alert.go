package entity

import "time"

// Tipos de alerta de stock.
const (
	AlertLow      = "low"
	AlertCritical = "critical"
)

// Alert aviso derivado de la comparación cantidad vs. stock mínimo.
// Una línea tiene como máximo una alerta sin resolver.
type Alert struct {
	ID              string
	InventoryLineID string
	Kind            string
	Message         string
	RaisedAt        time.Time
	Seen            bool
	Resolved        bool
	ResolvedBy      *string
	ResolvedAt      *time.Time

	LotCode string // resuelto por JOIN en los listados
}

// AlertFilter filtros del listado de alertas (nil = sin filtrar).
type AlertFilter struct {
	Seen     *bool
	Resolved *bool
	Kind     string
	LineID   string
}
