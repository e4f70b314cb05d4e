package repository

import (
	"time"

	"github.com/rodrantho/storatrack/internal/domain/entity"
)

// MovementRepository puerto de persistencia para el libro de movimientos.
// Append-only: no existe Update ni Delete.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	// LastByDevice devuelve el movimiento más reciente por (created_at, seq),
	// o nil si el libro del equipo está vacío.
	LastByDevice(deviceID string) (*entity.Movement, error)
	// ListByDeviceUntil devuelve todos los movimientos con created_at < until,
	// ordenados por (created_at, seq) ascendente. Es la entrada del motor de costos.
	ListByDeviceUntil(deviceID string, until time.Time) ([]*entity.Movement, error)
	// ListByDevice historial paginado, más reciente primero.
	ListByDevice(deviceID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
}
