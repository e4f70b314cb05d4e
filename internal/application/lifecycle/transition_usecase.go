package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/lifecycle"
	"github.com/rodrantho/storatrack/internal/domain/repository"
	"github.com/rodrantho/storatrack/pkg/logger"
)

// TransitionUseCase valida y registra transiciones del ciclo de vida.
// El append al libro de movimientos y la proyección de estado del equipo se
// escriben en una sola transacción; la serialización por equipo se logra con
// SELECT FOR UPDATE más una verificación optimista del snapshot leído antes
// de abrir la tx: el perdedor de una carrera recibe ErrConflict (reintentable),
// nunca una sobreescritura silenciosa.
type TransitionUseCase struct {
	txRunner     TxRunner
	gateway      *authz.Gateway
	deviceRepo   repository.DeviceRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewTransitionUseCase construye el caso de uso.
func NewTransitionUseCase(
	txRunner TxRunner,
	gateway *authz.Gateway,
	deviceRepo repository.DeviceRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *TransitionUseCase {
	return &TransitionUseCase{
		txRunner:     txRunner,
		gateway:      gateway,
		deviceRepo:   deviceRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// Transition mueve un equipo a un nuevo estado, validando la tabla de
// transiciones, el alcance de empresa del actor y la ubicación cuando el
// destino es ALMACENADO. Devuelve el movimiento registrado.
func (uc *TransitionUseCase) Transition(ctx context.Context, t authz.TenantContext, deviceID string, in dto.TransitionRequest) (*dto.MovementResponse, error) {
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

	// Validación rápida fuera de la tx; se repite contra el snapshot adentro.
	if err := lifecycle.CanTransition(device.Status, in.ToStatus); err != nil {
		return nil, err
	}

	var toLocation *string
	if lifecycle.RequiresLocation(in.ToStatus) {
		if in.LocationID == nil || *in.LocationID == "" {
			return nil, domain.ErrLocationRequired
		}
		location, err := uc.locationRepo.GetByID(*in.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrNotFound
		}
		if location.CompanyID != device.CompanyID {
			return nil, domain.ErrLocationMismatch
		}
		toLocation = in.LocationID
	}

	snapshotStatus := device.Status
	snapshotLocation := device.LocationID

	var recorded *entity.Movement
	err = uc.txRunner.Run(ctx, func(
		deviceRepo repository.DeviceRepository,
		movementRepo repository.MovementRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// Bloquea la fila del equipo; serializa transiciones concurrentes.
		locked, err := deviceRepo.GetForUpdate(deviceID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// Chequeo optimista: si otro escritor ganó la carrera, el snapshot
		// con el que se validó esta transición ya no es el estado actual.
		if locked.Status != snapshotStatus || !equalPtr(locked.LocationID, snapshotLocation) {
			return domain.ErrConflict
		}

		now := time.Now().UTC()
		last, err := movementRepo.LastByDevice(deviceID)
		if err != nil {
			return err
		}
		// Timestamp monótono no decreciente respecto al libro del equipo;
		// el empate lo desempata seq.
		if last != nil && now.Before(last.CreatedAt) {
			now = last.CreatedAt
		}

		movement := &entity.Movement{
			ID:             uuid.New().String(),
			DeviceID:       deviceID,
			FromStatus:     locked.Status,
			ToStatus:       in.ToStatus,
			FromLocationID: locked.LocationID,
			ToLocationID:   toLocation,
			Notes:          in.Notes,
			CreatedBy:      t.UserID,
			CreatedAt:      now,
		}
		if err := movementRepo.Append(movement); err != nil {
			return err
		}

		var exitDate *time.Time
		if in.ToStatus == entity.StatusRetirado {
			exitDate = &now
		}
		if err := deviceRepo.UpdateProjection(deviceID, in.ToStatus, toLocation, exitDate, now); err != nil {
			return err
		}

		var companyID = device.CompanyID
		if err := auditRepo.Create(&entity.AuditLog{
			ID:        uuid.New().String(),
			UserID:    t.UserID,
			Action:    entity.AuditActionTransition,
			Entity:    "devices",
			EntityID:  deviceID,
			CompanyID: &companyID,
			Detail:    locked.Status + " -> " + in.ToStatus,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		recorded = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("device_id", deviceID).
		Str("company_id", device.CompanyID).
		Str("from_status", recorded.FromStatus).
		Str("to_status", recorded.ToStatus).
		Str("actor", t.UserID).
		Msg("transición confirmada")

	return toMovementResponse(recorded), nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:             m.ID,
		DeviceID:       m.DeviceID,
		FromStatus:     m.FromStatus,
		ToStatus:       m.ToStatus,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
