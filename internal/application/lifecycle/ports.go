package lifecycle

import (
	"context"

	"github.com/rodrantho/storatrack/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append al libro y la
// actualización de la proyección del equipo sean atómicos: ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		deviceRepo repository.DeviceRepository,
		movementRepo repository.MovementRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}
