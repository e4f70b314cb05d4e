package repository

import "github.com/rodrantho/storatrack/internal/domain/entity"

// AuditLogRepository puerto de persistencia para el registro de auditoría.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error)
}
