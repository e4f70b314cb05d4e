package repository

import "github.com/rodrantho/storatrack/internal/domain/entity"

// CompanyRepository puerto de persistencia para empresas y su tarifario.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByRUT(rut string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error

	// Tarifario progresivo, ordenado por Position.
	ListRateTiers(companyID string) ([]entity.RateTier, error)
	ReplaceRateTiers(companyID string, tiers []entity.RateTier) error
}
