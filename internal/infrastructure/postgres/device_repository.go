package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo implementación del puerto DeviceRepository sobre PostgreSQL.
type DeviceRepo struct {
	q Querier
}

// NewDeviceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeviceRepository(q Querier) *DeviceRepo {
	return &DeviceRepo{q: q}
}

const deviceColumns = `id, company_id, name, description, serial_number, brand, model, status, condition, value, location_id, entry_date, exit_date, active, created_at, updated_at`

// Create persiste un nuevo equipo.
func (r *DeviceRepo) Create(device *entity.Device) error {
	query := `
		INSERT INTO devices (` + deviceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		device.ID, device.CompanyID, device.Name, device.Description, device.SerialNumber,
		device.Brand, device.Model, device.Status, device.Condition, device.Value,
		device.LocationID, device.EntryDate, device.ExitDate, device.Active,
		device.CreatedAt, device.UpdatedAt,
	)
	if err != nil {
		return wrapErr("insert device", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *DeviceRepo) GetByID(id string) (*entity.Device, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el equipo bloqueando la fila (SELECT FOR UPDATE).
// Serializa transiciones concurrentes sobre el mismo equipo; solo tiene
// sentido dentro de una transacción.
func (r *DeviceRepo) GetForUpdate(id string) (*entity.Device, error) {
	return r.get(id, true)
}

func (r *DeviceRepo) get(id string, forUpdate bool) (*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var d entity.Device
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Description, &d.SerialNumber, &d.Brand, &d.Model,
		&d.Status, &d.Condition, &d.Value, &d.LocationID, &d.EntryDate, &d.ExitDate,
		&d.Active, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get device", err)
	}
	return &d, nil
}

// ListByCompany lista equipos por empresa con paginación.
func (r *DeviceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Device, error) {
	query := `
		SELECT ` + deviceColumns + `
		FROM devices WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, wrapErr("list devices", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Description, &d.SerialNumber,
			&d.Brand, &d.Model, &d.Status, &d.Condition, &d.Value, &d.LocationID,
			&d.EntryDate, &d.ExitDate, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, wrapErr("scan device", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountByCompany cuenta los equipos de una empresa (para el invariante de
// borrado: una empresa solo se elimina con cero equipos).
func (r *DeviceRepo) CountByCompany(companyID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM devices WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		return 0, wrapErr("count devices", err)
	}
	return count, nil
}

// Update actualiza los metadatos de un equipo (no el estado ni la ubicación).
func (r *DeviceRepo) Update(device *entity.Device) error {
	query := `
		UPDATE devices
		SET name = $2, description = $3, serial_number = $4, brand = $5, model = $6,
		    condition = $7, value = $8, active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		device.ID, device.Name, device.Description, device.SerialNumber, device.Brand,
		device.Model, device.Condition, device.Value, device.Active, device.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update device", err)
	}
	return nil
}

// UpdateProjection actualiza la proyección de estado/ubicación cacheada.
// Siempre dentro de la misma tx que el append al libro de movimientos.
func (r *DeviceRepo) UpdateProjection(id, status string, locationID *string, exitDate *time.Time, updatedAt time.Time) error {
	query := `
		UPDATE devices
		SET status = $2, location_id = $3, exit_date = COALESCE($4, exit_date), updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, locationID, exitDate, updatedAt)
	if err != nil {
		return wrapErr("update device projection", err)
	}
	return nil
}
