package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Secciones editables del perfil.
const (
	SectionPersonal     = "personal"
	SectionProfessional = "professional"
	SectionAddress      = "address"
	SectionContact      = "contact"
)

// PersonalSection datos personales.
type PersonalSection struct {
	FullName             string `json:"full_name"`
	Gender               string `json:"gender"`
	BirthDate            string `json:"birth_date"` // YYYY-MM-DD
	DisabilityType       string `json:"disability_type"`
	DisabilityDetails    string `json:"disability_details"`
	DisabilityCardNumber string `json:"disability_card_number"`
}

// ProfessionalSection datos profesionales. JobTitle y Employer solo aplican si employment_status = employed.
type ProfessionalSection struct {
	EducationLevel   string           `json:"education_level"`
	EmploymentStatus string           `json:"employment_status"`
	JobTitle         string           `json:"job_title"`
	Employer         string           `json:"employer"`
	MonthlyIncome    *decimal.Decimal `json:"monthly_income"`
}

// AddressSection dirección nacional.
type AddressSection struct {
	BuildingNumber   string `json:"building_number"`
	StreetName       string `json:"street_name"`
	District         string `json:"district"`
	City             string `json:"city"`
	PostalCode       string `json:"postal_code"`
	AdditionalNumber string `json:"additional_number"`
	Address          string `json:"address"`
}

// ContactSection datos de contacto.
type ContactSection struct {
	Phone                    string `json:"phone"`
	AlternativePhone         string `json:"alternative_phone"`
	Email                    string `json:"email"`
	EmergencyContactName     string `json:"emergency_contact_name"`
	EmergencyContactPhone    string `json:"emergency_contact_phone"`
	EmergencyContactRelation string `json:"emergency_contact_relation"`
}

// ProfileResponse perfil completo del beneficiario.
type ProfileResponse struct {
	ID                 string              `json:"id"`
	UserID             string              `json:"user_id"`
	NationalID         string              `json:"national_id"`
	BranchID           string              `json:"branch_id,omitempty"`
	RegistrationStatus string              `json:"registration_status"`
	Age                *int                `json:"age"`
	BirthDateLabel     string              `json:"birth_date_label,omitempty"`
	Personal           PersonalSection     `json:"personal"`
	Professional       ProfessionalSection `json:"professional"`
	Address            AddressSection      `json:"address"`
	Contact            ContactSection      `json:"contact"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	UpdatedAtLabel     string              `json:"updated_at_label,omitempty"`
}
