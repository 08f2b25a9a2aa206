package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/dates"
)

var (
	phonePattern      = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)
	fourDigitsPattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// ProfileUseCase lectura y edición por secciones del expediente del beneficiario.
type ProfileUseCase struct {
	members repository.MemberRepository
	now     func() time.Time
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(members repository.MemberRepository) *ProfileUseCase {
	return &ProfileUseCase{members: members, now: time.Now}
}

// Get devuelve el perfil del beneficiario con edad y fechas formateadas en tag.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string, tag language.Tag) (*dto.ProfileResponse, error) {
	m, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toProfileResponse(m, tag), nil
}

// UpdatePersonal guarda la sección de datos personales.
func (uc *ProfileUseCase) UpdatePersonal(ctx context.Context, userID string, in dto.PersonalSection, tag language.Tag) (*dto.ProfileResponse, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return nil, domain.InvalidField("full_name")
	}
	if in.Gender != "male" && in.Gender != "female" {
		return nil, domain.InvalidField("gender")
	}
	var birth *time.Time
	if in.BirthDate != "" {
		t, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil || t.After(uc.now()) {
			return nil, domain.InvalidField("birth_date")
		}
		birth = &t
	}
	return uc.save(ctx, userID, tag, func(m *entity.Member) {
		m.FullName = in.FullName
		m.Gender = in.Gender
		m.BirthDate = birth
		m.DisabilityType = in.DisabilityType
		m.DisabilityDetails = in.DisabilityDetails
		m.DisabilityCardNumber = in.DisabilityCardNumber
	})
}

// UpdateProfessional guarda la sección profesional. Cargo y empleador solo se conservan si está empleado.
func (uc *ProfileUseCase) UpdateProfessional(ctx context.Context, userID string, in dto.ProfessionalSection, tag language.Tag) (*dto.ProfileResponse, error) {
	if in.MonthlyIncome != nil && in.MonthlyIncome.IsNegative() {
		return nil, domain.InvalidField("monthly_income")
	}
	if in.EmploymentStatus != "employed" {
		in.JobTitle = ""
		in.Employer = ""
	}
	return uc.save(ctx, userID, tag, func(m *entity.Member) {
		m.EducationLevel = in.EducationLevel
		m.EmploymentStatus = in.EmploymentStatus
		m.JobTitle = in.JobTitle
		m.Employer = in.Employer
		m.MonthlyIncome = in.MonthlyIncome
	})
}

// UpdateAddress guarda la dirección nacional.
func (uc *ProfileUseCase) UpdateAddress(ctx context.Context, userID string, in dto.AddressSection, tag language.Tag) (*dto.ProfileResponse, error) {
	if in.BuildingNumber != "" && !fourDigitsPattern.MatchString(in.BuildingNumber) {
		return nil, domain.InvalidField("building_number")
	}
	if in.AdditionalNumber != "" && !fourDigitsPattern.MatchString(in.AdditionalNumber) {
		return nil, domain.InvalidField("additional_number")
	}
	if in.PostalCode != "" && !postalCodePattern.MatchString(in.PostalCode) {
		return nil, domain.InvalidField("postal_code")
	}
	return uc.save(ctx, userID, tag, func(m *entity.Member) {
		m.BuildingNumber = in.BuildingNumber
		m.StreetName = in.StreetName
		m.District = in.District
		m.City = in.City
		m.PostalCode = in.PostalCode
		m.AdditionalNumber = in.AdditionalNumber
		m.Address = in.Address
	})
}

// UpdateContact guarda los datos de contacto.
func (uc *ProfileUseCase) UpdateContact(ctx context.Context, userID string, in dto.ContactSection, tag language.Tag) (*dto.ProfileResponse, error) {
	if !phonePattern.MatchString(in.Phone) {
		return nil, domain.InvalidField("phone")
	}
	if in.AlternativePhone != "" && !phonePattern.MatchString(in.AlternativePhone) {
		return nil, domain.InvalidField("alternative_phone")
	}
	if in.EmergencyContactPhone != "" && !phonePattern.MatchString(in.EmergencyContactPhone) {
		return nil, domain.InvalidField("emergency_contact_phone")
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return nil, domain.InvalidField("email")
	}
	return uc.save(ctx, userID, tag, func(m *entity.Member) {
		m.Phone = in.Phone
		m.AlternativePhone = in.AlternativePhone
		m.Email = in.Email
		m.EmergencyContactName = in.EmergencyContactName
		m.EmergencyContactPhone = in.EmergencyContactPhone
		m.EmergencyContactRelation = in.EmergencyContactRelation
	})
}

func (uc *ProfileUseCase) load(ctx context.Context, userID string) (*entity.Member, error) {
	m, err := uc.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (uc *ProfileUseCase) save(ctx context.Context, userID string, tag language.Tag, apply func(*entity.Member)) (*dto.ProfileResponse, error) {
	m, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	apply(m)
	m.UpdatedAt = uc.now()
	if err := uc.members.Update(ctx, m); err != nil {
		return nil, err
	}
	return uc.toProfileResponse(m, tag), nil
}

func (uc *ProfileUseCase) toProfileResponse(m *entity.Member, tag language.Tag) *dto.ProfileResponse {
	now := uc.now()
	out := &dto.ProfileResponse{
		ID:                 m.ID,
		UserID:             m.UserID,
		NationalID:         m.NationalID,
		BranchID:           m.BranchID,
		RegistrationStatus: m.RegistrationStatus,
		Personal: dto.PersonalSection{
			FullName:             m.FullName,
			Gender:               m.Gender,
			DisabilityType:       m.DisabilityType,
			DisabilityDetails:    m.DisabilityDetails,
			DisabilityCardNumber: m.DisabilityCardNumber,
		},
		Professional: dto.ProfessionalSection{
			EducationLevel:   m.EducationLevel,
			EmploymentStatus: m.EmploymentStatus,
			JobTitle:         m.JobTitle,
			Employer:         m.Employer,
			MonthlyIncome:    m.MonthlyIncome,
		},
		Address: dto.AddressSection{
			BuildingNumber:   m.BuildingNumber,
			StreetName:       m.StreetName,
			District:         m.District,
			City:             m.City,
			PostalCode:       m.PostalCode,
			AdditionalNumber: m.AdditionalNumber,
			Address:          m.Address,
		},
		Contact: dto.ContactSection{
			Phone:                    m.Phone,
			AlternativePhone:         m.AlternativePhone,
			Email:                    m.Email,
			EmergencyContactName:     m.EmergencyContactName,
			EmergencyContactPhone:    m.EmergencyContactPhone,
			EmergencyContactRelation: m.EmergencyContactRelation,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.BirthDate != nil {
		age := dates.Age(*m.BirthDate, now)
		out.Age = &age
		out.Personal.BirthDate = m.BirthDate.Format("2006-01-02")
		out.BirthDateLabel = dates.FormatGregorian(*m.BirthDate, tag, false)
	}
	if !m.UpdatedAt.IsZero() {
		out.UpdatedAtLabel = dates.FormatRelative(m.UpdatedAt, now, tag)
	}
	return out
}
