package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/rodrantho/storatrack/internal/application/authz"
	"github.com/rodrantho/storatrack/internal/application/dto"
	"github.com/rodrantho/storatrack/internal/domain"
	domainbilling "github.com/rodrantho/storatrack/internal/domain/billing"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/repository"
)

// CostReportUseCase motor de acumulación de costos: reduce el libro de
// movimientos de un equipo más el tarifario de su empresa a un reporte de
// costo para una ventana [start, end). Solo lecturas; el reporte es derivado
// y nunca se persiste.
type CostReportUseCase struct {
	gateway      *authz.Gateway
	companyRepo  repository.CompanyRepository
	deviceRepo   repository.DeviceRepository
	movementRepo repository.MovementRepository
}

// NewCostReportUseCase construye el caso de uso.
func NewCostReportUseCase(
	gateway *authz.Gateway,
	companyRepo repository.CompanyRepository,
	deviceRepo repository.DeviceRepository,
	movementRepo repository.MovementRepository,
) *CostReportUseCase {
	return &CostReportUseCase{
		gateway:      gateway,
		companyRepo:  companyRepo,
		deviceRepo:   deviceRepo,
		movementRepo: movementRepo,
	}
}

// ComputeDeviceReport calcula el costo acumulado de un equipo en [start, end).
// Solo facturan los intervalos en ALMACENADO; la ventana se recorta a la fecha
// de ingreso del equipo. Cero intervalos facturables produce un reporte en
// cero, no un error.
func (uc *CostReportUseCase) ComputeDeviceReport(t authz.TenantContext, deviceID string, start, end time.Time) (*dto.CostReportResponse, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidWindow
	}
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
	company, err := uc.companyRepo.GetByID(device.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	tiers, err := uc.companyRepo.ListRateTiers(company.ID)
	if err != nil {
		return nil, err
	}
	return uc.computeForDevice(device, company, tiers, start, end)
}

// ComputeCompanyReport agrega los reportes de todos los equipos de una empresa
// para la misma ventana.
func (uc *CostReportUseCase) ComputeCompanyReport(t authz.TenantContext, companyID string, start, end time.Time) (*dto.CompanyCostReportResponse, error) {
	if !start.Before(end) {
		return nil, domain.ErrInvalidWindow
	}
	if err := uc.gateway.AuthorizeCompany(t, companyID); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	tiers, err := uc.companyRepo.ListRateTiers(companyID)
	if err != nil {
		return nil, err
	}

	out := &dto.CompanyCostReportResponse{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Currency:    company.Currency,
		Start:       start,
		End:         end,
		Subtotal:    decimal.Zero,
		IVAAmount:   decimal.Zero,
		Total:       decimal.Zero,
		GeneratedAt: time.Now().UTC(),
	}

	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		devices, err := uc.deviceRepo.ListByCompany(companyID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, device := range devices {
			report, err := uc.computeForDevice(device, company, tiers, start, end)
			if err != nil {
				return nil, err
			}
			out.Devices = append(out.Devices, *report)
			out.Subtotal = out.Subtotal.Add(report.Subtotal)
			out.IVAAmount = out.IVAAmount.Add(report.IVAAmount)
			out.Total = out.Total.Add(report.Total)
		}
		if len(devices) < pageSize {
			break
		}
	}
	out.TotalDevices = len(out.Devices)
	return out, nil
}

func (uc *CostReportUseCase) computeForDevice(device *entity.Device, company *entity.Company, tiers []entity.RateTier, start, end time.Time) (*dto.CostReportResponse, error) {
	// Nunca se factura antes del ingreso del equipo.
	effectiveStart := start
	if device.EntryDate.After(effectiveStart) {
		effectiveStart = device.EntryDate
	}

	var intervals []domainbilling.StorageInterval
	if effectiveStart.Before(end) {
		movements, err := uc.movementRepo.ListByDeviceUntil(device.ID, end)
		if err != nil {
			return nil, err
		}
		intervals = domainbilling.StorageIntervals(movements, effectiveStart, end)
	}

	billableDays := domainbilling.TotalDays(intervals)
	rawSubtotal, charges := domainbilling.RateDays(tiers, billableDays)
	subtotal, iva, total := domainbilling.ApplyTax(rawSubtotal, company.IVAPercent, company.ApplyIVA)

	report := &dto.CostReportResponse{
		DeviceID:     device.ID,
		DeviceName:   device.Name,
		CompanyID:    company.ID,
		Currency:     company.Currency,
		Start:        start,
		End:          end,
		BillableDays: billableDays,
		Subtotal:     subtotal,
		IVAPercent:   company.IVAPercent,
		IVAAmount:    iva,
		Total:        total,
	}
	for _, iv := range intervals {
		report.Intervals = append(report.Intervals, dto.IntervalDTO{
			From:       iv.From,
			To:         iv.To,
			LocationID: iv.LocationID,
			Days:       iv.Days,
		})
	}
	for _, c := range charges {
		report.Tiers = append(report.Tiers, dto.TierChargeDTO{
			Position:   c.Position,
			Days:       c.Days,
			RatePerDay: c.RatePerDay,
			Amount:     c.Amount,
		})
	}
	return report, nil
}
