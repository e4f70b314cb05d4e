package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, rut, contact_name, email, phone, address, currency, iva_percent, apply_iva, active, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.RUT, company.ContactName, company.Email,
		company.Phone, company.Address, company.Currency, company.IVAPercent,
		company.ApplyIVA, company.Active, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert company", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.getBy("id", id)
}

// GetByRUT obtiene una empresa por su identificador fiscal.
func (r *CompanyRepo) GetByRUT(rut string) (*entity.Company, error) {
	return r.getBy("rut", rut)
}

func (r *CompanyRepo) getBy(column, value string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ` + column + ` = $1`
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&c.ID, &c.Name, &c.RUT, &c.ContactName, &c.Email, &c.Phone, &c.Address,
		&c.Currency, &c.IVAPercent, &c.ApplyIVA, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get company", err)
	}
	return &c, nil
}

// List lista empresas con paginación.
func (r *CompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, wrapErr("list companies", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.RUT, &c.ContactName, &c.Email, &c.Phone,
			&c.Address, &c.Currency, &c.IVAPercent, &c.ApplyIVA, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, wrapErr("scan company", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, contact_name = $3, email = $4, phone = $5, address = $6,
		    currency = $7, iva_percent = $8, apply_iva = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.ContactName, company.Email, company.Phone,
		company.Address, company.Currency, company.IVAPercent, company.ApplyIVA,
		company.Active, company.UpdatedAt,
	)
	if err != nil {
		return wrapErr("update company", err)
	}
	return nil
}

// Delete elimina una empresa por ID. El caso de uso garantiza que no tenga equipos.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return wrapErr("delete company", err)
	}
	return nil
}

// ListRateTiers devuelve el tarifario ordenado por posición.
func (r *CompanyRepo) ListRateTiers(companyID string) ([]entity.RateTier, error) {
	query := `
		SELECT id, company_id, position, threshold_days, rate_per_day
		FROM company_rate_tiers WHERE company_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, wrapErr("list rate tiers", err)
	}
	defer rows.Close()
	var tiers []entity.RateTier
	for rows.Next() {
		var t entity.RateTier
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Position, &t.ThresholdDays, &t.RatePerDay); err != nil {
			return nil, wrapErr("scan rate tier", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

// ReplaceRateTiers reemplaza el tarifario completo de la empresa.
func (r *CompanyRepo) ReplaceRateTiers(companyID string, tiers []entity.RateTier) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM company_rate_tiers WHERE company_id = $1`, companyID); err != nil {
		return wrapErr("delete rate tiers", err)
	}
	query := `
		INSERT INTO company_rate_tiers (id, company_id, position, threshold_days, rate_per_day)
		VALUES ($1, $2, $3, $4, $5)`
	for _, t := range tiers {
		if _, err := r.q.Exec(ctx, query, t.ID, companyID, t.Position, t.ThresholdDays, t.RatePerDay); err != nil {
			return wrapErr("insert rate tier", err)
		}
	}
	return nil
}
