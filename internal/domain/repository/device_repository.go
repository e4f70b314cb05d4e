package repository

import (
	"time"

	"github.com/rodrantho/storatrack/internal/domain/entity"
)

// DeviceRepository puerto de persistencia para equipos.
type DeviceRepository interface {
	Create(device *entity.Device) error
	GetByID(id string) (*entity.Device, error)
	// GetForUpdate obtiene el equipo bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Device, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Device, error)
	CountByCompany(companyID string) (int, error)
	Update(device *entity.Device) error
	// UpdateProjection actualiza la proyección de estado/ubicación cacheada.
	UpdateProjection(id, status string, locationID *string, exitDate *time.Time, updatedAt time.Time) error
}
