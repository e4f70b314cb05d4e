package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity, entity_id, company_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Action, log.Entity, log.EntityID, log.CompanyID,
		log.Detail, log.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert audit log", err)
	}
	return nil
}

// ListByCompany lista registros de auditoría de una empresa, más reciente primero.
func (r *AuditLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, entity, entity_id, company_id, detail, created_at
		FROM audit_logs WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, wrapErr("list audit logs", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Entity, &l.EntityID,
			&l.CompanyID, &l.Detail, &l.CreatedAt); err != nil {
			return nil, wrapErr("scan audit log", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
