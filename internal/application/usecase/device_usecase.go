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

// DeviceUseCase registro y consulta de equipos. El estado y la ubicación solo
// cambian a través del caso de uso de transición; acá solo metadatos.
type DeviceUseCase struct {
	gateway      *authz.Gateway
	repo         repository.DeviceRepository
	companyRepo  repository.CompanyRepository
	locationRepo repository.LocationRepository
}

// NewDeviceUseCase construye el caso de uso.
func NewDeviceUseCase(
	gateway *authz.Gateway,
	repo repository.DeviceRepository,
	companyRepo repository.CompanyRepository,
	locationRepo repository.LocationRepository,
) *DeviceUseCase {
	return &DeviceUseCase{gateway: gateway, repo: repo, companyRepo: companyRepo, locationRepo: locationRepo}
}

// Register da de alta un equipo en estado INGRESADO, sin ubicación, con fecha
// de ingreso ahora. La empresa dueña es definitiva: no hay transferencias.
func (uc *DeviceUseCase) Register(t authz.TenantContext, in dto.RegisterDeviceRequest) (*dto.DeviceResponse, error) {
	companyID, err := uc.gateway.ScopeCompany(t, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	condition := in.Condition
	if condition == "" {
		condition = entity.ConditionBueno
	}
	if !entity.ValidCondition(condition) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	device := &entity.Device{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Description:  in.Description,
		SerialNumber: in.SerialNumber,
		Brand:        in.Brand,
		Model:        in.Model,
		Status:       entity.StatusIngresado,
		Condition:    condition,
		Value:        in.Value,
		EntryDate:    now,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// GetByID obtiene un equipo, verificando el alcance de empresa.
func (uc *DeviceUseCase) GetByID(t authz.TenantContext, id string) (*dto.DeviceResponse, error) {
	device, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, device.CompanyID); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// List lista equipos de una empresa.
func (uc *DeviceUseCase) List(t authz.TenantContext, companyID string, page dto.PageRequest) (*dto.DeviceListResponse, error) {
	scoped, err := uc.gateway.ScopeCompany(t, companyID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(scoped, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeviceResponse(d))
	}
	return &dto.DeviceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica metadatos del equipo (nunca estado ni ubicación).
func (uc *DeviceUseCase) Update(t authz.TenantContext, id string, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, device.CompanyID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		device.Name = *in.Name
	}
	if in.Description != nil {
		device.Description = *in.Description
	}
	if in.SerialNumber != nil {
		device.SerialNumber = *in.SerialNumber
	}
	if in.Brand != nil {
		device.Brand = *in.Brand
	}
	if in.Model != nil {
		device.Model = *in.Model
	}
	if in.Condition != nil {
		if !entity.ValidCondition(*in.Condition) {
			return nil, domain.ErrInvalidInput
		}
		device.Condition = *in.Condition
	}
	if in.Value != nil {
		device.Value = *in.Value
	}
	device.UpdatedAt = time.Now()
	if err := uc.repo.Update(device); err != nil {
		return nil, err
	}
	return toDeviceResponse(device), nil
}

// LabelData identificadores de equipo y ubicación para la capa de
// etiquetas/impresión. Solo lectura.
func (uc *DeviceUseCase) LabelData(t authz.TenantContext, id string) (*dto.DeviceLabelResponse, error) {
	device, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, device.CompanyID); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(device.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.DeviceLabelResponse{
		DeviceID:     device.ID,
		DeviceName:   device.Name,
		SerialNumber: device.SerialNumber,
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		LocationID:   device.LocationID,
		Status:       device.Status,
	}
	if device.LocationID != nil {
		location, err := uc.locationRepo.GetByID(*device.LocationID)
		if err != nil {
			return nil, err
		}
		if location != nil {
			out.LocationName = location.Name
		}
	}
	return out, nil
}

func toDeviceResponse(d *entity.Device) *dto.DeviceResponse {
	return &dto.DeviceResponse{
		ID:           d.ID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		Description:  d.Description,
		SerialNumber: d.SerialNumber,
		Brand:        d.Brand,
		Model:        d.Model,
		Status:       d.Status,
		Condition:    d.Condition,
		Value:        d.Value,
		LocationID:   d.LocationID,
		EntryDate:    d.EntryDate,
		ExitDate:     d.ExitDate,
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
