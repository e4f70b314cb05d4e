package lifecycle

import (
	"time"

	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

// HistoryUseCase lectura del libro de movimientos de un equipo.
type HistoryUseCase struct {
	gateway      *authz.Gateway
	deviceRepo   repository.DeviceRepository
	movementRepo repository.MovementRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(gateway *authz.Gateway, deviceRepo repository.DeviceRepository, movementRepo repository.MovementRepository) *HistoryUseCase {
	return &HistoryUseCase{gateway: gateway, deviceRepo: deviceRepo, movementRepo: movementRepo}
}

// ListByDevice historial paginado (más reciente primero), filtrado por empresa vía gateway.
func (uc *HistoryUseCase) ListByDevice(t authz.TenantContext, deviceID string, from, to *time.Time, page dto.PageRequest) (*dto.MovementListResponse, error) {
	device, err := uc.deviceRepo.GetByID(deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.gateway.AuthorizeCompany(t, device.CompanyID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.movementRepo.ListByDevice(deviceID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
