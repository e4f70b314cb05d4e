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

// CompanyUseCase casos de uso CRUD para empresas (tenants) y su tarifario.
type CompanyUseCase struct {
	gateway    *authz.Gateway
	repo       repository.CompanyRepository
	deviceRepo repository.DeviceRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(gateway *authz.Gateway, repo repository.CompanyRepository, deviceRepo repository.DeviceRepository) *CompanyUseCase {
	return &CompanyUseCase{gateway: gateway, repo: repo, deviceRepo: deviceRepo}
}

// Create crea una empresa con su tarifario inicial. Solo superadmin.
func (uc *CompanyUseCase) Create(t authz.TenantContext, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.gateway.RequireSuperadmin(t, ""); err != nil {
		return nil, err
	}
	if in.Name == "" || in.RUT == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByRUT(in.RUT)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	currency := in.Currency
	if currency == "" {
		currency = "UYU"
	}
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        in.Name,
		RUT:         in.RUT,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		Currency:    currency,
		IVAPercent:  in.IVAPercent,
		ApplyIVA:    in.ApplyIVA,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	tiers := toRateTiers(company.ID, in.RateTiers)
	if len(tiers) > 0 {
		if err := uc.repo.ReplaceRateTiers(company.ID, tiers); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(company, tiers), nil
}

// GetByID obtiene una empresa; client_user solo la suya.
func (uc *CompanyUseCase) GetByID(t authz.TenantContext, id string) (*dto.CompanyResponse, error) {
	if err := uc.gateway.AuthorizeCompany(t, id); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	tiers, err := uc.repo.ListRateTiers(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(company, tiers), nil
}

// List lista todas las empresas. Solo staff y superadmin.
func (uc *CompanyUseCase) List(t authz.TenantContext, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := uc.gateway.RequireStaff(t, ""); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *uc.toResponse(c, nil))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update modifica una empresa y, si viene, reemplaza el tarifario. Staff o superadmin.
func (uc *CompanyUseCase) Update(t authz.TenantContext, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := uc.gateway.RequireStaff(t, id); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.ContactName != nil {
		company.ContactName = *in.ContactName
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Currency != nil {
		company.Currency = *in.Currency
	}
	if in.IVAPercent != nil {
		company.IVAPercent = *in.IVAPercent
	}
	if in.ApplyIVA != nil {
		company.ApplyIVA = *in.ApplyIVA
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	if in.RateTiers != nil {
		if err := uc.repo.ReplaceRateTiers(id, toRateTiers(id, in.RateTiers)); err != nil {
			return nil, err
		}
	}
	tiers, err := uc.repo.ListRateTiers(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(company, tiers), nil
}

// Delete elimina una empresa. Solo superadmin, y solo sin equipos registrados.
func (uc *CompanyUseCase) Delete(t authz.TenantContext, id string) error {
	if err := uc.gateway.RequireSuperadmin(t, id); err != nil {
		return err
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	count, err := uc.deviceRepo.CountByCompany(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCompanyHasDevices
	}
	return uc.repo.Delete(id)
}

func toRateTiers(companyID string, in []dto.RateTierDTO) []entity.RateTier {
	tiers := make([]entity.RateTier, 0, len(in))
	for i, tier := range in {
		tiers = append(tiers, entity.RateTier{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			Position:      i + 1,
			ThresholdDays: tier.ThresholdDays,
			RatePerDay:    tier.RatePerDay,
		})
	}
	return tiers
}

func (uc *CompanyUseCase) toResponse(c *entity.Company, tiers []entity.RateTier) *dto.CompanyResponse {
	out := &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		RUT:         c.RUT,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Currency:    c.Currency,
		IVAPercent:  c.IVAPercent,
		ApplyIVA:    c.ApplyIVA,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, tier := range tiers {
		out.RateTiers = append(out.RateTiers, dto.RateTierDTO{
			ThresholdDays: tier.ThresholdDays,
			RatePerDay:    tier.RatePerDay,
		})
	}
	return out
}
