package usecase_test

import (
	"time"

	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/pkg/logger"
)

// Fakes en memoria compartidos por los tests del paquete.

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
	tiers     map[string][]entity.RateTier
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{
		companies: make(map[string]*entity.Company),
		tiers:     make(map[string][]entity.RateTier),
	}
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (f *fakeCompanyRepo) GetByRUT(rut string) (*entity.Company, error) {
	for _, c := range f.companies {
		if c.RUT == rut {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCompanyRepo) Update(c *entity.Company) error { f.companies[c.ID] = c; return nil }
func (f *fakeCompanyRepo) Delete(id string) error         { delete(f.companies, id); return nil }
func (f *fakeCompanyRepo) ListRateTiers(companyID string) ([]entity.RateTier, error) {
	return f.tiers[companyID], nil
}
func (f *fakeCompanyRepo) ReplaceRateTiers(companyID string, tiers []entity.RateTier) error {
	f.tiers[companyID] = tiers
	return nil
}

type fakeDeviceRepo struct {
	devices map[string]*entity.Device
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*entity.Device)}
}

func (f *fakeDeviceRepo) Create(d *entity.Device) error { f.devices[d.ID] = d; return nil }
func (f *fakeDeviceRepo) GetByID(id string) (*entity.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}
func (f *fakeDeviceRepo) GetForUpdate(id string) (*entity.Device, error) { return f.GetByID(id) }
func (f *fakeDeviceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Device, error) {
	var out []*entity.Device
	for _, d := range f.devices {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeDeviceRepo) CountByCompany(companyID string) (int, error) {
	n := 0
	for _, d := range f.devices {
		if d.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}
func (f *fakeDeviceRepo) Update(d *entity.Device) error { f.devices[d.ID] = d; return nil }
func (f *fakeDeviceRepo) UpdateProjection(string, string, *string, *time.Time, time.Time) error {
	return nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]*entity.Location)}
}

func (f *fakeLocationRepo) Create(l *entity.Location) error { f.locations[l.ID] = l; return nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, nil
	}
	return l, nil
}
func (f *fakeLocationRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.locations {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (f *fakeLocationRepo) Update(l *entity.Location) error { f.locations[l.ID] = l; return nil }
func (f *fakeLocationRepo) Deactivate(id string) error {
	if l, ok := f.locations[id]; ok {
		l.Active = false
	}
	return nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(*entity.AuditLog) error { return nil }
func (fakeAuditRepo) ListByCompany(string, int, int) ([]*entity.AuditLog, error) {
	return nil, nil
}

func newTestGateway() *authz.Gateway {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return authz.NewGateway(log, fakeAuditRepo{})
}

func superadminCtx() authz.TenantContext {
	return authz.TenantContext{UserID: "u-admin", Role: entity.RoleSuperadmin}
}

func staffCtx() authz.TenantContext {
	return authz.TenantContext{UserID: "u-staff", Role: entity.RoleStaff}
}

func clientCtx(companyID string) authz.TenantContext {
	return authz.TenantContext{UserID: "u-cli", Role: entity.RoleClientUser, CompanyID: companyID}
}

func strPtr(s string) *string { return &s }
