package entity

import "time"

// Tipos de ubicación.
const (
	LocationKindWarehouse        = "warehouse"
	LocationKindOffice           = "office"
	LocationKindTemporaryDeposit = "temporary_deposit"
	LocationKindOther            = "other"
)

// Location representa un lugar físico de una empresa donde se almacenan
// equipos. ParentID permite jerarquía (depósito > estantería > estante > caja).
type Location struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Kind        string  // ver constantes LocationKind*
	ParentID    *string // nil = ubicación raíz
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidLocationKind indica si kind es uno de los tipos enumerados.
func ValidLocationKind(kind string) bool {
	switch kind {
	case LocationKindWarehouse, LocationKindOffice, LocationKindTemporaryDeposit, LocationKindOther:
		return true
	}
	return false
}
