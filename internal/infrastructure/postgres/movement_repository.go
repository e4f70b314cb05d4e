package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del libro de movimientos sobre
// PostgreSQL. seq es BIGSERIAL: la base asigna el desempate de orden total.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, device_id, from_status, to_status, from_location_id, to_location_id, notes, created_by, created_at, seq`

// Append agrega un registro al libro. No existe update ni delete.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, device_id, from_status, to_status, from_location_id, to_location_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.DeviceID, movement.FromStatus, movement.ToStatus,
		movement.FromLocationID, movement.ToLocationID, movement.Notes,
		movement.CreatedBy, movement.CreatedAt,
	).Scan(&movement.Seq)
	if err != nil {
		return wrapErr("append movement", err)
	}
	return nil
}

// LastByDevice devuelve el movimiento más reciente por (created_at, seq), o nil.
func (r *MovementRepo) LastByDevice(deviceID string) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE device_id = $1 ORDER BY created_at DESC, seq DESC LIMIT 1`
	m, err := r.scanOne(r.q.QueryRow(context.Background(), query, deviceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("last movement", err)
	}
	return m, nil
}

// ListByDeviceUntil todos los movimientos con created_at < until, ordenados
// por (created_at, seq) ascendente. Entrada del motor de costos.
func (r *MovementRepo) ListByDeviceUntil(deviceID string, until time.Time) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE device_id = $1 AND created_at < $2
		ORDER BY created_at ASC, seq ASC`
	rows, err := r.q.Query(context.Background(), query, deviceID, until)
	if err != nil {
		return nil, wrapErr("list movements until", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByDevice historial paginado, más reciente primero, con rango opcional.
func (r *MovementRepo) ListByDevice(deviceID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE device_id = $1`
	args := []any{deviceID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at < $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, wrapErr("list movements", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(&m.ID, &m.DeviceID, &m.FromStatus, &m.ToStatus,
		&m.FromLocationID, &m.ToLocationID, &m.Notes, &m.CreatedBy, &m.CreatedAt, &m.Seq)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovementRepo) scanAll(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		m, err := r.scanOne(rows)
		if err != nil {
			return nil, wrapErr("scan movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
