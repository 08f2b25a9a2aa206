package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequiredDocument documento exigido por un servicio.
type RequiredDocument struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"is_required"`
}

// Service representa un servicio social que los beneficiarios pueden solicitar.
type Service struct {
	ID                        string
	Name                      string
	Description               string
	Requirements              string
	Category                  string
	MaxAmount                 *decimal.Decimal
	DurationDays              *int
	RequiredDocuments         []RequiredDocument
	ReapplicationPeriodMonths *int
	IsOneTimeOnly             bool
	CreatedBy                 string
	IsActive                  bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// ServiceSummary agrega a Service el nombre del creador y el número de solicitudes.
type ServiceSummary struct {
	Service
	CreatorName   string
	RequestsCount int
}
