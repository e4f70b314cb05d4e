package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/application/usecase"
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
)

func newCompanyUC() (*usecase.CompanyUseCase, *fakeCompanyRepo, *fakeDeviceRepo) {
	companyRepo := newFakeCompanyRepo()
	deviceRepo := newFakeDeviceRepo()
	uc := usecase.NewCompanyUseCase(newTestGateway(), companyRepo, deviceRepo)
	return uc, companyRepo, deviceRepo
}

func TestCompanyCreate_ConTarifario(t *testing.T) {
	uc, repo, _ := newCompanyUC()

	out, err := uc.Create(superadminCtx(), dto.CreateCompanyRequest{
		Name:       "TechFix SRL",
		RUT:        "211234560018",
		IVAPercent: decimal.NewFromInt(22),
		ApplyIVA:   true,
		RateTiers: []dto.RateTierDTO{
			{ThresholdDays: decimal.NewFromInt(10), RatePerDay: decimal.NewFromInt(15)},
			{ThresholdDays: decimal.Zero, RatePerDay: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "TechFix SRL", out.Name)
	assert.Equal(t, "UYU", out.Currency, "moneda por defecto")
	assert.True(t, out.Active)
	require.Len(t, out.RateTiers, 2)

	tiers, _ := repo.ListRateTiers(out.ID)
	require.Len(t, tiers, 2)
	assert.Equal(t, 1, tiers[0].Position, "los tramos se numeran en orden de llegada")
	assert.Equal(t, 2, tiers[1].Position)
}

func TestCompanyCreate_SoloSuperadmin(t *testing.T) {
	uc, _, _ := newCompanyUC()
	in := dto.CreateCompanyRequest{Name: "X", RUT: "1"}

	_, err := uc.Create(staffCtx(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden, "staff no crea empresas")

	_, err = uc.Create(clientCtx("c-1"), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyCreate_RUTDuplicado(t *testing.T) {
	uc, _, _ := newCompanyUC()

	_, err := uc.Create(superadminCtx(), dto.CreateCompanyRequest{Name: "A", RUT: "211234560018"})
	require.NoError(t, err)

	_, err = uc.Create(superadminCtx(), dto.CreateCompanyRequest{Name: "B", RUT: "211234560018"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyCreate_EntradaInvalida(t *testing.T) {
	uc, _, _ := newCompanyUC()

	_, err := uc.Create(superadminCtx(), dto.CreateCompanyRequest{RUT: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre obligatorio")

	_, err = uc.Create(superadminCtx(), dto.CreateCompanyRequest{Name: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "RUT obligatorio")
}

func TestCompanyGetByID_ClientUserSoloLaSuya(t *testing.T) {
	uc, repo, _ := newCompanyUC()
	repo.companies["c-1"] = &entity.Company{ID: "c-1", Name: "A", Currency: "UYU", Active: true}
	repo.companies["c-2"] = &entity.Company{ID: "c-2", Name: "B", Currency: "UYU", Active: true}

	out, err := uc.GetByID(clientCtx("c-1"), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "c-1", out.ID)

	_, err = uc.GetByID(clientCtx("c-1"), "c-2")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCompanyList_SoloStaff(t *testing.T) {
	uc, _, _ := newCompanyUC()

	_, err := uc.List(clientCtx("c-1"), dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(staffCtx(), dto.PageRequest{})
	assert.NoError(t, err)
}

func TestCompanyUpdate_ReemplazaTarifario(t *testing.T) {
	uc, repo, _ := newCompanyUC()
	repo.companies["c-1"] = &entity.Company{ID: "c-1", Name: "A", Currency: "UYU", Active: true}
	repo.tiers["c-1"] = []entity.RateTier{{CompanyID: "c-1", Position: 1, RatePerDay: decimal.NewFromInt(10)}}

	newRate := decimal.NewFromInt(8)
	out, err := uc.Update(staffCtx(), "c-1", dto.UpdateCompanyRequest{
		RateTiers: []dto.RateTierDTO{{ThresholdDays: decimal.Zero, RatePerDay: newRate}},
	})
	require.NoError(t, err)
	require.Len(t, out.RateTiers, 1)
	assert.True(t, out.RateTiers[0].RatePerDay.Equal(newRate),
		"el tarifario anterior se reemplaza completo")
}

func TestCompanyDelete_ConEquiposFalla(t *testing.T) {
	uc, repo, deviceRepo := newCompanyUC()
	repo.companies["c-1"] = &entity.Company{ID: "c-1", Name: "A", Active: true}
	deviceRepo.devices["d-1"] = &entity.Device{ID: "d-1", CompanyID: "c-1"}

	err := uc.Delete(superadminCtx(), "c-1")
	assert.ErrorIs(t, err, domain.ErrCompanyHasDevices,
		"una empresa con equipos registrados no se borra")
	_, ok := repo.companies["c-1"]
	assert.True(t, ok, "la empresa sigue existiendo")
}

func TestCompanyDelete_SinEquipos(t *testing.T) {
	uc, repo, _ := newCompanyUC()
	repo.companies["c-1"] = &entity.Company{ID: "c-1", Name: "A", Active: true}

	require.NoError(t, uc.Delete(superadminCtx(), "c-1"))
	_, ok := repo.companies["c-1"]
	assert.False(t, ok)
}

func TestCompanyDelete_SoloSuperadmin(t *testing.T) {
	uc, repo, _ := newCompanyUC()
	repo.companies["c-1"] = &entity.Company{ID: "c-1", Name: "A", Active: true}

	assert.ErrorIs(t, uc.Delete(staffCtx(), "c-1"), domain.ErrForbidden)
}
