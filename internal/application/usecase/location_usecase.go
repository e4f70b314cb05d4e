package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones, siempre dentro del
// alcance de una empresa.
type LocationUseCase struct {
	gateway *authz.Gateway
	repo    repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(gateway *authz.Gateway, repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{gateway: gateway, repo: repo}
}

// Create crea una ubicación en la empresa indicada. La jerarquía (ParentID)
// debe quedar dentro de la misma empresa.
func (uc *LocationUseCase) Create(t authz.TenantContext, companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := uc.gateway.AuthorizeCompany(t, companyID); err != nil {
		return nil, err
	}
	if in.Name == "" || !entity.ValidLocationKind(in.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != nil {
		parent, err := uc.repo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.CompanyID != companyID {
			return nil, domain.ErrLocationMismatch
		}
	}
	now := time.Now()
	location := &entity.Location{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Description: in.Description,
		Kind:        in.Kind,
		ParentID:    in.ParentID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación, verificando el alcance de empresa.
func (uc *LocationUseCase) GetByID(t authz.TenantContext, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, location.CompanyID); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones de una empresa con paginación.
func (uc *LocationUseCase) List(t authz.TenantContext, companyID string, page dto.PageRequest) (*dto.LocationListResponse, error) {
	scoped, err := uc.gateway.ScopeCompany(t, companyID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(scoped, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica una ubicación existente.
func (uc *LocationUseCase) Update(t authz.TenantContext, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, location.CompanyID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	if in.Kind != nil {
		if !entity.ValidLocationKind(*in.Kind) {
			return nil, domain.ErrInvalidInput
		}
		location.Kind = *in.Kind
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Deactivate marca la ubicación como inactiva (no se borra: los movimientos
// históricos la referencian).
func (uc *LocationUseCase) Deactivate(t authz.TenantContext, id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, location.CompanyID); err != nil {
		return err
	}
	return uc.repo.Deactivate(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		CompanyID:   l.CompanyID,
		Name:        l.Name,
		Description: l.Description,
		Kind:        l.Kind,
		ParentID:    l.ParentID,
		Active:      l.Active,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
