package entity

import "time"

// Movement registro inmutable del libro de movimientos de un equipo. Nunca se
// actualiza ni se borra, solo se agrega. El orden total por equipo es
// (CreatedAt, Seq): Seq desempata timestamps idénticos por orden de inserción.
type Movement struct {
	ID             string
	DeviceID       string
	FromStatus     string  // vacío solo para el primer movimiento
	ToStatus       string
	FromLocationID *string
	ToLocationID   *string
	Notes          string
	CreatedBy      string // UserID del actor
	CreatedAt      time.Time
	Seq            int64 // asignado por la base (BIGSERIAL), no por el caller
}
