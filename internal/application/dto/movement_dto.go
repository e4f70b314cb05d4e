package dto

import "time"

// TransitionRequest solicitud de transición de estado para un equipo.
// LocationID es obligatorio cuando ToStatus es ALMACENADO.
type TransitionRequest struct {
	ToStatus   string  `json:"to_status"`
	LocationID *string `json:"location_id"`
	Notes      string  `json:"notes"`
}

// MovementResponse un registro del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	DeviceID       string    `json:"device_id"`
	FromStatus     string    `json:"from_status,omitempty"`
	ToStatus       string    `json:"to_status"`
	FromLocationID *string   `json:"from_location_id,omitempty"`
	ToLocationID   *string   `json:"to_location_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de movimientos de un equipo.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
