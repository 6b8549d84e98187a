package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionLotRequest alta/edición de lote de producción.
type ProductionLotRequest struct {
	ClientID        string           `json:"client_id" validate:"required,uuid"`
	BrandID         string           `json:"brand_id" validate:"required,uuid"`
	VarietyID       string           `json:"variety_id" validate:"required,uuid"`
	PresentationID  string           `json:"presentation_id" validate:"required,uuid"`
	LotCode         string           `json:"lot_code" validate:"required,max=100"`
	ProductionDate  string           `json:"production_date" validate:"required"`
	BottlesProduced int              `json:"bottles_produced" validate:"gt=0"`
	AgingProcess    string           `json:"aging_process,omitempty" validate:"max=100"`
	AgingMonths     int              `json:"aging_months" validate:"min=0"`
	AlcoholGrade    *decimal.Decimal `json:"alcohol_grade,omitempty"`
	Status          string           `json:"status,omitempty" validate:"omitempty,oneof=activo añejando completado cerrado"`
	Notes           string           `json:"notes,omitempty"`
}

// ProductionLotResponse salida de lote de producción.
type ProductionLotResponse struct {
	ID               string          `json:"id"`
	ClientID         string          `json:"client_id"`
	BrandID          string          `json:"brand_id"`
	VarietyID        string          `json:"variety_id"`
	PresentationID   string          `json:"presentation_id"`
	LotCode          string          `json:"lot_code"`
	ProductionDate   time.Time       `json:"production_date"`
	BottlesProduced  int             `json:"bottles_produced"`
	BottlesRemaining int             `json:"bottles_remaining"`
	AgingProcess     string          `json:"aging_process,omitempty"`
	AgingMonths      int             `json:"aging_months"`
	AlcoholGrade     decimal.Decimal `json:"alcohol_grade"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
