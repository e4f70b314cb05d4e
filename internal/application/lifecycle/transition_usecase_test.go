package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	applifecycle "github.com/rodrantho/storatrack/internal/application/lifecycle"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
	"github.com/rodrantho/storatrack/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeDeviceRepo struct {
	devices map[string]*entity.Device
	// lockedOverride simula a otro escritor que ganó la carrera: si no es nil,
	// GetForUpdate lo devuelve en lugar del equipo guardado.
	lockedOverride *entity.Device
}

func newFakeDeviceRepo(devices ...*entity.Device) *fakeDeviceRepo {
	m := make(map[string]*entity.Device)
	for _, d := range devices {
		m[d.ID] = d
	}
	return &fakeDeviceRepo{devices: m}
}

func (f *fakeDeviceRepo) Create(d *entity.Device) error { f.devices[d.ID] = d; return nil }

func (f *fakeDeviceRepo) GetByID(id string) (*entity.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return nil, nil
	}
	copy := *d
	return &copy, nil
}

func (f *fakeDeviceRepo) GetForUpdate(id string) (*entity.Device, error) {
	if f.lockedOverride != nil {
		copy := *f.lockedOverride
		return &copy, nil
	}
	return f.GetByID(id)
}

func (f *fakeDeviceRepo) ListByCompany(string, int, int) ([]*entity.Device, error) { return nil, nil }
func (f *fakeDeviceRepo) CountByCompany(string) (int, error)                       { return 0, nil }
func (f *fakeDeviceRepo) Update(d *entity.Device) error                            { f.devices[d.ID] = d; return nil }

func (f *fakeDeviceRepo) UpdateProjection(id, status string, locationID *string, exitDate *time.Time, updatedAt time.Time) error {
	d, ok := f.devices[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	d.LocationID = locationID
	if exitDate != nil {
		d.ExitDate = exitDate
	}
	d.UpdatedAt = updatedAt
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
	seq       int64
}

func (f *fakeMovementRepo) Append(m *entity.Movement) error {
	f.seq++
	m.Seq = f.seq
	f.movements = append(f.movements, m)
	return nil
}

func (f *fakeMovementRepo) LastByDevice(deviceID string) (*entity.Movement, error) {
	var last *entity.Movement
	for _, m := range f.movements {
		if m.DeviceID == deviceID {
			last = m
		}
	}
	return last, nil
}

func (f *fakeMovementRepo) ListByDeviceUntil(deviceID string, until time.Time) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.movements {
		if m.DeviceID == deviceID && m.CreatedAt.Before(until) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByDevice(deviceID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range f.movements {
		if m.DeviceID == deviceID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo(locations ...*entity.Location) *fakeLocationRepo {
	m := make(map[string]*entity.Location)
	for _, l := range locations {
		m[l.ID] = l
	}
	return &fakeLocationRepo{locations: m}
}

func (f *fakeLocationRepo) Create(l *entity.Location) error { f.locations[l.ID] = l; return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}
func (f *fakeLocationRepo) ListByCompany(string, int, int) ([]*entity.Location, error) {
	return nil, nil
}
func (f *fakeLocationRepo) Update(l *entity.Location) error { f.locations[l.ID] = l; return nil }
func (f *fakeLocationRepo) Deactivate(string) error         { return nil }

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(log *entity.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}
func (f *fakeAuditRepo) ListByCompany(string, int, int) ([]*entity.AuditLog, error) {
	return f.logs, nil
}

// fakeTxRunner ejecuta la función directamente contra los fakes, sin tx real.
// Las rutas de fallo que se prueban acá fallan antes de cualquier escritura,
// así que el libro queda intacto igual que con un rollback.
type fakeTxRunner struct {
	deviceRepo   *fakeDeviceRepo
	movementRepo *fakeMovementRepo
	auditRepo    *fakeAuditRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	deviceRepo repository.DeviceRepository,
	movementRepo repository.MovementRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(f.deviceRepo, f.movementRepo, f.auditRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc           *applifecycle.TransitionUseCase
	deviceRepo   *fakeDeviceRepo
	movementRepo *fakeMovementRepo
	locationRepo *fakeLocationRepo
	auditRepo    *fakeAuditRepo
}

func newFixture(devices []*entity.Device, locations []*entity.Location) *fixture {
	deviceRepo := newFakeDeviceRepo(devices...)
	movementRepo := &fakeMovementRepo{}
	locationRepo := newFakeLocationRepo(locations...)
	auditRepo := &fakeAuditRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	gateway := authz.NewGateway(log, auditRepo)
	tx := &fakeTxRunner{deviceRepo: deviceRepo, movementRepo: movementRepo, auditRepo: auditRepo}
	return &fixture{
		uc:           applifecycle.NewTransitionUseCase(tx, gateway, deviceRepo, locationRepo, log),
		deviceRepo:   deviceRepo,
		movementRepo: movementRepo,
		locationRepo: locationRepo,
		auditRepo:    auditRepo,
	}
}

func staffCtx() authz.TenantContext {
	return authz.TenantContext{UserID: "u-staff", Role: entity.RoleStaff}
}

func device(id, companyID, status string, locationID *string) *entity.Device {
	return &entity.Device{
		ID:         id,
		CompanyID:  companyID,
		Name:       "Notebook",
		Status:     status,
		Condition:  entity.ConditionBueno,
		LocationID: locationID,
		EntryDate:  time.Now().UTC().AddDate(0, 0, -30),
		Active:     true,
	}
}

func location(id, companyID string) *entity.Location {
	return &entity.Location{
		ID:        id,
		CompanyID: companyID,
		Name:      "Depósito A",
		Kind:      entity.LocationKindWarehouse,
		Active:    true,
	}
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_IngresadoAAlmacenado(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		[]*entity.Location{location("loc-1", "c-1")},
	)

	out, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-1"),
		Notes:      "recepción verificada",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusIngresado, out.FromStatus)
	assert.Equal(t, entity.StatusAlmacenado, out.ToStatus)
	require.NotNil(t, out.ToLocationID)
	assert.Equal(t, "loc-1", *out.ToLocationID)
	assert.Equal(t, "u-staff", out.CreatedBy)

	// La proyección del equipo refleja el último movimiento.
	stored, _ := f.deviceRepo.GetByID("d-1")
	assert.Equal(t, entity.StatusAlmacenado, stored.Status)
	require.NotNil(t, stored.LocationID)
	assert.Equal(t, "loc-1", *stored.LocationID)

	require.Len(t, f.movementRepo.movements, 1, "exactamente un registro en el libro")
	require.Len(t, f.auditRepo.logs, 1, "la transición queda auditada")
	assert.Equal(t, entity.AuditActionTransition, f.auditRepo.logs[0].Action)
}

func TestTransition_EquipoInexistente(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "no-existe", dto.TransitionRequest{
		ToStatus: entity.StatusRetirado,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_ClientUserOtraEmpresa_Forbidden(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		nil,
	)
	actor := authz.TenantContext{UserID: "u-cli", Role: entity.RoleClientUser, CompanyID: "c-2"}

	_, err := f.uc.Transition(context.Background(), actor, "d-1", dto.TransitionRequest{
		ToStatus: entity.StatusRetirado,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.movementRepo.movements, "el libro no cambia ante un rechazo")
}

func TestTransition_SaltoInvalido(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		nil,
	)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus: entity.StatusEnviado,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"INGRESADO -> ENVIADO no está en la tabla")
	assert.Empty(t, f.movementRepo.movements)
}

func TestTransition_EquipoRetiradoEsTerminal(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusRetirado, nil)},
		[]*entity.Location{location("loc-1", "c-1")},
	)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-1"),
	})
	assert.ErrorIs(t, err, domain.ErrDeviceRetired)
	assert.Empty(t, f.movementRepo.movements)
}

func TestTransition_AlmacenadoSinUbicacion(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		nil,
	)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus: entity.StatusAlmacenado,
	})
	assert.ErrorIs(t, err, domain.ErrLocationRequired)
}

func TestTransition_UbicacionInexistente(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		nil,
	)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-x"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransition_UbicacionDeOtraEmpresa(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		[]*entity.Location{location("loc-ajena", "c-2")},
	)

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-ajena"),
	})
	assert.ErrorIs(t, err, domain.ErrLocationMismatch,
		"un equipo solo se almacena en ubicaciones de su propia empresa")
	assert.Empty(t, f.movementRepo.movements)
}

// Carrera perdida: otro escritor cambió el estado entre el snapshot y el lock.
func TestTransition_ConflictoDeConcurrencia(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		[]*entity.Location{location("loc-1", "c-1")},
	)
	// El equipo ya fue retirado por otra transacción.
	raced := device("d-1", "c-1", entity.StatusRetirado, nil)
	f.deviceRepo.lockedOverride = raced

	_, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-1"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "el perdedor de la carrera recibe Conflict")
	assert.Empty(t, f.movementRepo.movements, "nada se escribe al perder la carrera")
}

func TestTransition_RetiradoFijaFechaDeSalida(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusIngresado, nil)},
		nil,
	)

	out, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus: entity.StatusRetirado,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRetirado, out.ToStatus)

	stored, _ := f.deviceRepo.GetByID("d-1")
	require.NotNil(t, stored.ExitDate, "RETIRADO fija la fecha de salida")
	assert.Equal(t, out.CreatedAt, *stored.ExitDate)
}

// Timestamp monótono: si el último movimiento quedó adelantado en el tiempo,
// el nuevo registro no retrocede, se iguala.
func TestTransition_TimestampNoDecreciente(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusAlmacenado, strPtr("loc-1"))},
		[]*entity.Location{location("loc-1", "c-1")},
	)
	future := time.Now().UTC().Add(1 * time.Hour)
	f.movementRepo.movements = append(f.movementRepo.movements, &entity.Movement{
		ID:           "m-0",
		DeviceID:     "d-1",
		FromStatus:   entity.StatusIngresado,
		ToStatus:     entity.StatusAlmacenado,
		ToLocationID: strPtr("loc-1"),
		CreatedAt:    future,
		Seq:          1,
	})
	f.movementRepo.seq = 1

	out, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus: entity.StatusEnviado,
	})
	require.NoError(t, err)
	assert.Equal(t, future, out.CreatedAt,
		"el nuevo movimiento se iguala al timestamp del último, nunca retrocede")

	last, _ := f.movementRepo.LastByDevice("d-1")
	assert.Greater(t, last.Seq, int64(1), "seq desempata timestamps idénticos")
}

// La reubicación ALMACENADO -> ALMACENADO exige la nueva ubicación.
func TestTransition_Reubicacion(t *testing.T) {
	f := newFixture(
		[]*entity.Device{device("d-1", "c-1", entity.StatusAlmacenado, strPtr("loc-1"))},
		[]*entity.Location{location("loc-1", "c-1"), location("loc-2", "c-1")},
	)

	out, err := f.uc.Transition(context.Background(), staffCtx(), "d-1", dto.TransitionRequest{
		ToStatus:   entity.StatusAlmacenado,
		LocationID: strPtr("loc-2"),
	})
	require.NoError(t, err)
	require.NotNil(t, out.FromLocationID)
	assert.Equal(t, "loc-1", *out.FromLocationID)
	require.NotNil(t, out.ToLocationID)
	assert.Equal(t, "loc-2", *out.ToLocationID)
}
