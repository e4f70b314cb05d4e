package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodrantho/storatrack/internal/application/lifecycle"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

var _ lifecycle.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la unidad atómica de la máquina de estados: append al
// libro + proyección del equipo + auditoría, todo o nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	deviceRepo repository.DeviceRepository,
	movementRepo repository.MovementRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deviceRepo := NewDeviceRepository(tx)
	movementRepo := NewMovementRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(deviceRepo, movementRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
