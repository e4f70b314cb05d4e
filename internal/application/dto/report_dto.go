package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntervalDTO un intervalo facturable dentro del reporte.
type IntervalDTO struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	LocationID string          `json:"location_id,omitempty"`
	Days       decimal.Decimal `json:"days"`
}

// TierChargeDTO días y subtotal consumidos por un tramo del tarifario.
type TierChargeDTO struct {
	Position   int             `json:"position"`
	Days       decimal.Decimal `json:"days"`
	RatePerDay decimal.Decimal `json:"rate_per_day"`
	Amount     decimal.Decimal `json:"amount"`
}

// CostReportResponse reporte de costo de almacenamiento de un equipo para una
// ventana [start, end). Derivado, nunca persistido.
type CostReportResponse struct {
	DeviceID     string          `json:"device_id"`
	DeviceName   string          `json:"device_name"`
	CompanyID    string          `json:"company_id"`
	Currency     string          `json:"currency"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	BillableDays decimal.Decimal `json:"billable_days"`
	Intervals    []IntervalDTO   `json:"intervals"`
	Tiers        []TierChargeDTO `json:"tiers"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	IVAPercent   decimal.Decimal `json:"iva_percent"`
	IVAAmount    decimal.Decimal `json:"iva_amount"`
	Total        decimal.Decimal `json:"total"`
}

// CompanyCostReportResponse agregado de reportes por equipo de una empresa.
type CompanyCostReportResponse struct {
	CompanyID    string               `json:"company_id"`
	CompanyName  string               `json:"company_name"`
	Currency     string               `json:"currency"`
	Start        time.Time            `json:"start"`
	End          time.Time            `json:"end"`
	TotalDevices int                  `json:"total_devices"`
	Devices      []CostReportResponse `json:"devices"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
	IVAAmount    decimal.Decimal      `json:"iva_amount"`
	Total        decimal.Decimal      `json:"total"`
	GeneratedAt  time.Time            `json:"generated_at"`
}
