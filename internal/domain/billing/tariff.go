package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/rodrantho/storatrack/internal/domain/entity"
)

var secondsPerDay = decimal.NewFromInt(86400)

// StorageInterval lapso máximo durante el cual un equipo estuvo continuamente
// en ALMACENADO dentro de la ventana del reporte, etiquetado con la ubicación
// vigente. Una reubicación cierra el intervalo y abre otro en la nueva
// ubicación sin cortar la facturación (tarifario único por empresa).
type StorageInterval struct {
	From       time.Time
	To         time.Time
	LocationID string
	Days       decimal.Decimal
}

// TierCharge días consumidos y subtotal de un tramo del tarifario.
type TierCharge struct {
	Position   int
	Days       decimal.Decimal
	RatePerDay decimal.Decimal
	Amount     decimal.Decimal
}

// daysBetween duración en días (fraccionarios) entre dos instantes.
func daysBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(to.Sub(from) / time.Second)).Div(secondsPerDay)
}

// StorageIntervals reduce el libro de movimientos a los intervalos ALMACENADO
// que intersectan [start, end). movements debe venir ordenado por
// (created_at, seq) ascendente e incluir los registros anteriores a start:
// de ellos se deriva el estado vigente al inicio de la ventana (registro de
// borde sintético). Con libro vacío el estado inicial es INGRESADO y no hay
// intervalos facturables.
func StorageIntervals(movements []*entity.Movement, start, end time.Time) []StorageInterval {
	status := entity.StatusIngresado
	var location *string
	since := start

	var intervals []StorageInterval
	clip := func(from, to time.Time, loc *string) {
		if from.Before(start) {
			from = start
		}
		if to.After(end) {
			to = end
		}
		if !to.After(from) {
			return
		}
		locID := ""
		if loc != nil {
			locID = *loc
		}
		intervals = append(intervals, StorageInterval{
			From:       from,
			To:         to,
			LocationID: locID,
			Days:       daysBetween(from, to),
		})
	}

	for _, m := range movements {
		if !m.CreatedAt.Before(end) {
			break
		}
		if status == entity.StatusAlmacenado {
			clip(since, m.CreatedAt, location)
		}
		status = m.ToStatus
		location = m.ToLocationID
		since = m.CreatedAt
	}
	if status == entity.StatusAlmacenado {
		clip(since, end, location)
	}
	return intervals
}

// TotalDays suma los días de una lista de intervalos.
func TotalDays(intervals []StorageInterval) decimal.Decimal {
	total := decimal.Zero
	for _, iv := range intervals {
		total = total.Add(iv.Days)
	}
	return total
}

// RateDays distribuye los días facturables a través del tarifario progresivo:
// cada tramo consume hasta ThresholdDays antes de que el siguiente aplique al
// remanente. El último tramo siempre absorbe lo que quede, tenga o no tope.
// La suma de días por tramo es exactamente totalDays (propiedad de
// reconciliación: ningún día se duplica ni se pierde).
func RateDays(tiers []entity.RateTier, totalDays decimal.Decimal) (decimal.Decimal, []TierCharge) {
	subtotal := decimal.Zero
	var charges []TierCharge
	remaining := totalDays

	for i, tier := range tiers {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := remaining
		last := i == len(tiers)-1
		if !last && tier.ThresholdDays.GreaterThan(decimal.Zero) && take.GreaterThan(tier.ThresholdDays) {
			take = tier.ThresholdDays
		}
		amount := take.Mul(tier.RatePerDay)
		charges = append(charges, TierCharge{
			Position:   tier.Position,
			Days:       take,
			RatePerDay: tier.RatePerDay,
			Amount:     amount,
		})
		subtotal = subtotal.Add(amount)
		remaining = remaining.Sub(take)
	}
	return subtotal, charges
}

// ApplyTax redondea el subtotal a 2 decimales (half-up) y calcula IVA y total.
func ApplyTax(subtotal, ivaPercent decimal.Decimal, applyIVA bool) (sub, iva, total decimal.Decimal) {
	sub = subtotal.Round(2)
	iva = decimal.Zero
	if applyIVA && ivaPercent.GreaterThan(decimal.Zero) {
		iva = sub.Mul(ivaPercent).Div(decimal.NewFromInt(100)).Round(2)
	}
	return sub, iva, sub.Add(iva)
}
