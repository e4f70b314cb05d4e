package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperadmin = "superadmin"
	RoleStaff      = "staff"
	RoleClientUser = "client_user"
)

// User representa un usuario del sistema. CompanyID es obligatorio para
// client_user (e inmutable una vez asignado), opcional para staff (staff
// global no tiene empresa) y siempre vacío para superadmin.
type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // superadmin, staff, client_user
	Active       bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles enumerados.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleStaff, RoleClientUser:
		return true
	}
	return false
}
