package repository

import "github.com/rodrantho/storatrack/internal/domain/entity"

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error)
	Update(location *entity.Location) error
	Deactivate(id string) error
}
