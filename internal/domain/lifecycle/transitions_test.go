package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodrantho/storatrack/internal/domain"
	"github.com/rodrantho/storatrack/internal/domain/entity"
	"github.com/rodrantho/storatrack/internal/domain/lifecycle"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		entity.StatusIngresado,
		entity.StatusEsperandoRecibir,
		entity.StatusAlmacenado,
		entity.StatusEnviado,
		entity.StatusRetirado,
	} {
		assert.True(t, lifecycle.ValidStatus(s), "el estado %s debe ser válido", s)
	}

	assert.False(t, lifecycle.ValidStatus("PERDIDO"), "un estado desconocido no es válido")
	assert.False(t, lifecycle.ValidStatus(""), "el estado vacío no es válido")
	assert.False(t, lifecycle.ValidStatus("almacenado"), "los estados distinguen mayúsculas")
}

// Transiciones permitidas según la tabla del ciclo de vida.
func TestCanTransition_Permitidas(t *testing.T) {
	cases := []struct{ from, to string }{
		{entity.StatusIngresado, entity.StatusEsperandoRecibir},
		{entity.StatusIngresado, entity.StatusAlmacenado},
		{entity.StatusIngresado, entity.StatusRetirado},
		{entity.StatusEsperandoRecibir, entity.StatusAlmacenado},
		{entity.StatusEsperandoRecibir, entity.StatusRetirado},
		{entity.StatusAlmacenado, entity.StatusEnviado},
		{entity.StatusAlmacenado, entity.StatusAlmacenado}, // reubicación
		{entity.StatusAlmacenado, entity.StatusRetirado},
		{entity.StatusEnviado, entity.StatusAlmacenado},
		{entity.StatusEnviado, entity.StatusRetirado},
	}
	for _, tc := range cases {
		assert.NoError(t, lifecycle.CanTransition(tc.from, tc.to),
			"%s -> %s debe estar permitida", tc.from, tc.to)
	}
}

// Saltos no permitidos deben devolver ErrInvalidTransition.
func TestCanTransition_Invalidas(t *testing.T) {
	cases := []struct{ from, to string }{
		{entity.StatusIngresado, entity.StatusEnviado},
		{entity.StatusEsperandoRecibir, entity.StatusIngresado},
		{entity.StatusEsperandoRecibir, entity.StatusEnviado},
		{entity.StatusAlmacenado, entity.StatusIngresado},
		{entity.StatusAlmacenado, entity.StatusEsperandoRecibir},
		{entity.StatusEnviado, entity.StatusIngresado},
		{entity.StatusEnviado, entity.StatusEnviado},
	}
	for _, tc := range cases {
		err := lifecycle.CanTransition(tc.from, tc.to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition,
			"%s -> %s no debe estar permitida", tc.from, tc.to)
	}
}

// RETIRADO es terminal: cualquier intento de salida devuelve ErrDeviceRetired.
func TestCanTransition_RetiradoEsTerminal(t *testing.T) {
	for _, to := range []string{
		entity.StatusIngresado,
		entity.StatusEsperandoRecibir,
		entity.StatusAlmacenado,
		entity.StatusEnviado,
		entity.StatusRetirado,
	} {
		err := lifecycle.CanTransition(entity.StatusRetirado, to)
		assert.ErrorIs(t, err, domain.ErrDeviceRetired,
			"RETIRADO -> %s debe fallar como equipo retirado", to)
	}
}

// Estados desconocidos en origen o destino fallan como transición inválida.
func TestCanTransition_EstadosDesconocidos(t *testing.T) {
	assert.ErrorIs(t, lifecycle.CanTransition("PERDIDO", entity.StatusAlmacenado), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanTransition(entity.StatusIngresado, "PERDIDO"), domain.ErrInvalidTransition)
	assert.ErrorIs(t, lifecycle.CanTransition("", ""), domain.ErrInvalidTransition)
}

func TestRequiresLocation(t *testing.T) {
	assert.True(t, lifecycle.RequiresLocation(entity.StatusAlmacenado),
		"ALMACENADO exige ubicación")

	for _, s := range []string{
		entity.StatusIngresado,
		entity.StatusEsperandoRecibir,
		entity.StatusEnviado,
		entity.StatusRetirado,
	} {
		assert.False(t, lifecycle.RequiresLocation(s), "%s no exige ubicación", s)
	}
}
