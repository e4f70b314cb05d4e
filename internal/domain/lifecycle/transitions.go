package lifecycle

import (
	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
)

// transitions tabla de transiciones permitidas por estado actual.
// ALMACENADO -> ALMACENADO es la reubicación dentro de almacenamiento.
// RETIRADO es terminal: no tiene salidas.
var transitions = map[string][]string{
	entity.StatusIngresado:        {entity.StatusEsperandoRecibir, entity.StatusAlmacenado, entity.StatusRetirado},
	entity.StatusEsperandoRecibir: {entity.StatusAlmacenado, entity.StatusRetirado},
	entity.StatusAlmacenado:       {entity.StatusEnviado, entity.StatusAlmacenado, entity.StatusRetirado},
	entity.StatusEnviado:          {entity.StatusAlmacenado, entity.StatusRetirado},
	entity.StatusRetirado:         {},
}

// ValidStatus indica si status es uno de los cinco estados del ciclo de vida.
func ValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// CanTransition valida que toStatus sea alcanzable desde fromStatus.
// Devuelve ErrDeviceRetired si el estado actual es terminal e
// ErrInvalidTransition para cualquier otro salto no permitido.
func CanTransition(fromStatus, toStatus string) error {
	if fromStatus == entity.StatusRetirado {
		return domain.ErrDeviceRetired
	}
	allowed, ok := transitions[fromStatus]
	if !ok || !ValidStatus(toStatus) {
		return domain.ErrInvalidTransition
	}
	for _, s := range allowed {
		if s == toStatus {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}

// RequiresLocation indica si el estado destino exige una ubicación.
func RequiresLocation(toStatus string) bool {
	return toStatus == entity.StatusAlmacenado
}
