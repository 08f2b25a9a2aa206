package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequiredDocumentDTO documento exigido por un servicio.
type RequiredDocumentDTO struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"is_required"`
}

// ServiceData entrada de create/update de servicios (serviceData).
type ServiceData struct {
	Name                      string                `json:"name"`
	Description               string                `json:"description"`
	Requirements              string                `json:"requirements"`
	Category                  string                `json:"category"`
	MaxAmount                 *decimal.Decimal      `json:"max_amount"`
	DurationDays              *int                  `json:"duration_days"`
	RequiredDocuments         []RequiredDocumentDTO `json:"required_documents"`
	ReapplicationPeriodMonths *int                  `json:"reapplication_period_months"`
	IsOneTimeOnly             bool                  `json:"is_one_time_only"`
	IsActive                  *bool                 `json:"is_active,omitempty"`
}

// ServiceResponse salida de un servicio para el panel.
type ServiceResponse struct {
	ID                        string                `json:"id"`
	Name                      string                `json:"name"`
	Description               string                `json:"description,omitempty"`
	Requirements              string                `json:"requirements,omitempty"`
	Category                  string                `json:"category,omitempty"`
	MaxAmount                 *decimal.Decimal      `json:"max_amount,omitempty"`
	DurationDays              *int                  `json:"duration_days,omitempty"`
	CreatedBy                 string                `json:"created_by,omitempty"`
	CreatorName               string                `json:"creator_name,omitempty"`
	IsActive                  bool                  `json:"is_active"`
	CreatedAt                 time.Time             `json:"created_at"`
	UpdatedAt                 time.Time             `json:"updated_at"`
	RequestsCount             int                   `json:"requests_count"`
	RequiredDocuments         []RequiredDocumentDTO `json:"required_documents"`
	ReapplicationPeriodMonths *int                  `json:"reapplication_period_months,omitempty"`
	IsOneTimeOnly             bool                  `json:"is_one_time_only"`
}

// HasRequestsResponse resultado de check_has_requests y del delete rechazado.
type HasRequestsResponse struct {
	Success      bool   `json:"success"`
	HasRequests  bool   `json:"hasRequests"`
	RequestCount int    `json:"requestCount"`
	Code         string `json:"code,omitempty"`
	Error        string `json:"error,omitempty"`
}
