package entity

import "time"

// Acciones registradas en el audit log.
const (
	AuditActionTransition = "TRANSITION"
	AuditActionForbidden  = "FORBIDDEN"
	AuditActionLogin      = "LOGIN"
)

// AuditLog registro de auditoría: transiciones confirmadas y decisiones
// Forbidden del gateway (principal + empresa intentada).
type AuditLog struct {
	ID        string
	UserID    string
	Action    string // ver constantes AuditAction*
	Entity    string // tabla/entidad afectada: devices, companies, ...
	EntityID  string
	CompanyID *string // empresa objetivo de la operación
	Detail    string
	CreatedAt time.Time
}
