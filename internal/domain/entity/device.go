package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un equipo.
const (
	StatusIngresado        = "INGRESADO"
	StatusEsperandoRecibir = "ESPERANDO_RECIBIR"
	StatusAlmacenado       = "ALMACENADO"
	StatusEnviado          = "ENVIADO"
	StatusRetirado         = "RETIRADO" // terminal
)

// Condición física del equipo.
const (
	ConditionExcelente   = "excelente"
	ConditionBueno       = "bueno"
	ConditionRegular     = "regular"
	ConditionMalo        = "malo"
	ConditionParaReparar = "para_reparar"
)

// Device representa un equipo almacenado. Pertenece a exactamente una empresa
// durante toda su vida; Status y LocationID son proyección materializada del
// último movimiento del libro (ver entity.Movement), nunca fuente de verdad
// independiente.
type Device struct {
	ID           string
	CompanyID    string
	Name         string
	Description  string
	SerialNumber string
	Brand        string
	Model        string
	Status       string          // ver constantes Status*
	Condition    string          // ver constantes Condition*
	Value        decimal.Decimal // valor monetario declarado
	LocationID   *string         // nil hasta el primer almacenamiento
	EntryDate    time.Time       // fecha de ingreso; el costo nunca se factura antes
	ExitDate     *time.Time      // fecha del movimiento a RETIRADO
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidCondition indica si condition es una de las condiciones enumeradas.
func ValidCondition(condition string) bool {
	switch condition {
	case ConditionExcelente, ConditionBueno, ConditionRegular, ConditionMalo, ConditionParaReparar:
		return true
	}
	return false
}
