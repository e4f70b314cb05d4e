package authz

import (
	"time"

	"github.com/google/uuid"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
	"github.com/rodrantho/storatrack/pkg/logger"
)

// Gateway punto único de decisión de aislamiento multi-tenant. Todas las
// lecturas y escrituras sobre empresas, ubicaciones, equipos y movimientos
// pasan por acá antes de tocar los repositorios, de modo que la máquina de
// estados y el motor de costos operan sobre datos ya filtrados por empresa.
// Cada decisión Forbidden se registra (log estructurado + audit_logs).
type Gateway struct {
	log       *logger.Logger
	auditRepo repository.AuditLogRepository
}

// NewGateway construye el gateway.
func NewGateway(log *logger.Logger, auditRepo repository.AuditLogRepository) *Gateway {
	return &Gateway{log: log, auditRepo: auditRepo}
}

// AuthorizeCompany decide si el principal puede operar sobre companyID.
// client_user: solo su propia empresa, sin excepciones ni override admin.
// staff y superadmin: cualquier empresa.
func (g *Gateway) AuthorizeCompany(t TenantContext, companyID string) error {
	switch t.Role {
	case entity.RoleSuperadmin, entity.RoleStaff:
		return nil
	case entity.RoleClientUser:
		if t.CompanyID != "" && t.CompanyID == companyID {
			return nil
		}
	}
	g.auditForbidden(t, companyID, "authorize_company")
	return domain.ErrForbidden
}

// RequireSuperadmin restringe operaciones al rol superadmin (borrar empresa,
// promover usuarios a superadmin).
func (g *Gateway) RequireSuperadmin(t TenantContext, companyID string) error {
	if t.Role == entity.RoleSuperadmin {
		return nil
	}
	g.auditForbidden(t, companyID, "require_superadmin")
	return domain.ErrForbidden
}

// RequireStaff restringe operaciones a staff o superadmin.
func (g *Gateway) RequireStaff(t TenantContext, companyID string) error {
	if t.Role == entity.RoleSuperadmin || t.Role == entity.RoleStaff {
		return nil
	}
	g.auditForbidden(t, companyID, "require_staff")
	return domain.ErrForbidden
}

// ScopeCompany resuelve la empresa efectiva de un listado: client_user queda
// forzado a la suya; staff/superadmin usan la solicitada (obligatoria).
func (g *Gateway) ScopeCompany(t TenantContext, requested string) (string, error) {
	if t.IsClientUser() {
		if requested != "" && requested != t.CompanyID {
			g.auditForbidden(t, requested, "scope_company")
			return "", domain.ErrForbidden
		}
		return t.CompanyID, nil
	}
	if requested == "" {
		return "", domain.ErrInvalidInput
	}
	return requested, nil
}

func (g *Gateway) auditForbidden(t TenantContext, companyID, operation string) {
	g.log.Warn().
		Str("user_id", t.UserID).
		Str("role", t.Role).
		Str("company_id", companyID).
		Str("operation", operation).
		Msg("acceso denegado por gateway")

	var target *string
	if companyID != "" {
		target = &companyID
	}
	err := g.auditRepo.Create(&entity.AuditLog{
		ID:        uuid.New().String(),
		UserID:    t.UserID,
		Action:    entity.AuditActionForbidden,
		Entity:    "gateway",
		EntityID:  operation,
		CompanyID: target,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// La auditoría no debe tumbar la decisión; el evento ya quedó en el log.
		g.log.Error().Err(err).Msg("no se pudo persistir auditoría de acceso denegado")
	}
}
