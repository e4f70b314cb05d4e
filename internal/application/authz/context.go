package authz

import "github.com/rodrantho/storatrack/internal/domain/entity"

// TenantContext principal autenticado: identidad, rol y alcance de empresa.
// Lo produce la capa de autenticación (JWT); el resto del sistema lo consume
// tal cual, nunca lo fabrica.
type TenantContext struct {
	UserID    string
	Role      string // entity.RoleSuperadmin | RoleStaff | RoleClientUser
	CompanyID string // vacío para superadmin y staff global
}

// IsSuperadmin indica si el principal es superadmin.
func (t TenantContext) IsSuperadmin() bool {
	return t.Role == entity.RoleSuperadmin
}

// IsClientUser indica si el principal está limitado a su propia empresa.
func (t TenantContext) IsClientUser() bool {
	return t.Role == entity.RoleClientUser
}
