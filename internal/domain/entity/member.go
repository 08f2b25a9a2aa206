package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de registro de un beneficiario (members.registration_status).
const (
	RegistrationPendingReview       = "pending_review"
	RegistrationUnderEmployeeReview = "under_employee_review"
	RegistrationUnderManagerReview  = "under_manager_review"
	RegistrationApproved            = "approved"
	RegistrationRejected            = "rejected"
)

// PendingRegistrationStatuses estados que cuentan como solicitudes pendientes en el panel.
var PendingRegistrationStatuses = []string{
	RegistrationPendingReview,
	RegistrationUnderEmployeeReview,
	RegistrationUnderManagerReview,
}

// Member es el expediente del beneficiario, ligado 1:1 a un User con rol beneficiary.
type Member struct {
	ID                 string
	UserID             string
	BranchID           string
	RegistrationStatus string

	// Datos personales
	FullName             string
	NationalID           string
	Gender               string // male, female
	BirthDate            *time.Time
	DisabilityType       string
	DisabilityDetails    string
	DisabilityCardNumber string

	// Datos profesionales
	EducationLevel   string
	EmploymentStatus string
	JobTitle         string
	Employer         string
	MonthlyIncome    *decimal.Decimal

	// Dirección nacional
	BuildingNumber   string
	StreetName       string
	District         string
	City             string
	PostalCode       string
	AdditionalNumber string
	Address          string

	// Contacto
	Phone                    string
	AlternativePhone         string
	Email                    string
	EmergencyContactName     string
	EmergencyContactPhone    string
	EmergencyContactRelation string

	CreatedAt time.Time
	UpdatedAt time.Time
}
