package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateTierDTO un tramo del tarifario en requests y responses.
type RateTierDTO struct {
	ThresholdDays decimal.Decimal `json:"threshold_days"`
	RatePerDay    decimal.Decimal `json:"rate_per_day"`
}

// CreateCompanyRequest alta de empresa (solo superadmin).
type CreateCompanyRequest struct {
	Name        string          `json:"name"`
	RUT         string          `json:"rut"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Currency    string          `json:"currency"`
	IVAPercent  decimal.Decimal `json:"iva_percent"`
	ApplyIVA    bool            `json:"apply_iva"`
	RateTiers   []RateTierDTO   `json:"rate_tiers"`
}

// UpdateCompanyRequest campos opcionales a modificar.
type UpdateCompanyRequest struct {
	Name        *string          `json:"name"`
	ContactName *string          `json:"contact_name"`
	Email       *string          `json:"email"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	Currency    *string          `json:"currency"`
	IVAPercent  *decimal.Decimal `json:"iva_percent"`
	ApplyIVA    *bool            `json:"apply_iva"`
	RateTiers   []RateTierDTO    `json:"rate_tiers"`
}

// CompanyResponse representación de una empresa.
type CompanyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	RUT         string          `json:"rut"`
	ContactName string          `json:"contact_name,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	Currency    string          `json:"currency"`
	IVAPercent  decimal.Decimal `json:"iva_percent"`
	ApplyIVA    bool            `json:"apply_iva"`
	RateTiers   []RateTierDTO   `json:"rate_tiers,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
