package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterDeviceRequest alta de equipo. El equipo nace en INGRESADO sin ubicación.
type RegisterDeviceRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SerialNumber string          `json:"serial_number"`
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Condition    string          `json:"condition"`
	Value        decimal.Decimal `json:"value"`
	CompanyID    string          `json:"company_id"` // ignorado para client_user: siempre su propia empresa
}

// UpdateDeviceRequest metadatos opcionales a modificar. El estado y la
// ubicación solo cambian vía transición, nunca por acá.
type UpdateDeviceRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	SerialNumber *string          `json:"serial_number"`
	Brand        *string          `json:"brand"`
	Model        *string          `json:"model"`
	Condition    *string          `json:"condition"`
	Value        *decimal.Decimal `json:"value"`
}

// DeviceResponse representación de un equipo.
type DeviceResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	SerialNumber string          `json:"serial_number,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	Model        string          `json:"model,omitempty"`
	Status       string          `json:"status"`
	Condition    string          `json:"condition"`
	Value        decimal.Decimal `json:"value"`
	LocationID   *string         `json:"location_id,omitempty"`
	EntryDate    time.Time       `json:"entry_date"`
	ExitDate     *time.Time      `json:"exit_date,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DeviceListResponse listado paginado de equipos.
type DeviceListResponse struct {
	Items []DeviceResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// DeviceLabelResponse datos para la capa de etiquetas/impresión: solo
// identificadores de equipo y ubicación, sin render de imagen.
type DeviceLabelResponse struct {
	DeviceID     string  `json:"device_id"`
	DeviceName   string  `json:"device_name"`
	SerialNumber string  `json:"serial_number,omitempty"`
	CompanyID    string  `json:"company_id"`
	CompanyName  string  `json:"company_name"`
	LocationID   *string `json:"location_id,omitempty"`
	LocationName string  `json:"location_name,omitempty"`
	Status       string  `json:"status"`
}
