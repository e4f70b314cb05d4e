package domain

import "errors"

// Errores de dominio (sin dependencias externas). El interfaz HTTP los traduce
// a códigos de estado; el core los propaga sin recuperarlos localmente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrDeviceRetired      = errors.New("el equipo está retirado")
	ErrLocationRequired   = errors.New("ubicación requerida para almacenar")
	ErrLocationMismatch   = errors.New("la ubicación no pertenece a la empresa del equipo")
	ErrInvalidWindow      = errors.New("ventana de reporte inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnavailable        = errors.New("persistencia no disponible")
	ErrCompanyHasDevices  = errors.New("la empresa aún tiene equipos registrados")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
