package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una empresa cliente (tenant del sistema). Todos los
// equipos, ubicaciones y usuarios client_user viven dentro de su alcance.
type Company struct {
	ID          string
	Name        string
	RUT         string // identificador fiscal, único
	ContactName string
	Email       string
	Phone       string
	Address     string
	Currency    string          // ej. UYU, USD
	IVAPercent  decimal.Decimal // porcentaje de IVA aplicado a reportes de costo
	ApplyIVA    bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RateTier un tramo del tarifario progresivo de la empresa. Los tramos se
// consumen en orden: ThresholdDays días al precio RatePerDay, el remanente
// pasa al siguiente tramo. ThresholdDays <= 0 marca el tramo final abierto.
type RateTier struct {
	ID            string
	CompanyID     string
	Position      int
	ThresholdDays decimal.Decimal
	RatePerDay    decimal.Decimal
}
