package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// Columnas de texto opcionales se leen con COALESCE para no usar *string en la entidad.
const memberColumns = `id::text, user_id::text, COALESCE(branch_id::text, ''), registration_status,
	full_name, national_id, COALESCE(gender, ''), birth_date, COALESCE(disability_type, ''),
	COALESCE(disability_details, ''), COALESCE(disability_card_number, ''),
	COALESCE(education_level, ''), COALESCE(employment_status, ''), COALESCE(job_title, ''),
	COALESCE(employer, ''), monthly_income,
	COALESCE(building_number, ''), COALESCE(street_name, ''), COALESCE(district, ''), COALESCE(city, ''),
	COALESCE(postal_code, ''), COALESCE(additional_number, ''), COALESCE(address, ''),
	COALESCE(phone, ''), COALESCE(alternative_phone, ''), COALESCE(email, ''),
	COALESCE(emergency_contact_name, ''), COALESCE(emergency_contact_phone, ''), COALESCE(emergency_contact_relation, ''),
	created_at, updated_at`

// MemberRepo expedientes de beneficiarios sobre PostgreSQL.
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador. Acepta pool o tx (Querier).
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Create inserta el expediente.
func (r *MemberRepo) Create(ctx context.Context, m *entity.Member) error {
	query := `
		INSERT INTO members (
			id, user_id, branch_id, registration_status,
			full_name, national_id, gender, birth_date, disability_type, disability_details, disability_card_number,
			education_level, employment_status, job_title, employer, monthly_income,
			building_number, street_name, district, city, postal_code, additional_number, address,
			phone, alternative_phone, email, emergency_contact_name, emergency_contact_phone, emergency_contact_relation,
			created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4,
			$5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''), $16,
			NULLIF($17, ''), NULLIF($18, ''), NULLIF($19, ''), NULLIF($20, ''), NULLIF($21, ''), NULLIF($22, ''), NULLIF($23, ''),
			NULLIF($24, ''), NULLIF($25, ''), NULLIF($26, ''), NULLIF($27, ''), NULLIF($28, ''), NULLIF($29, ''),
			$30, $31)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.BranchID, m.RegistrationStatus,
		m.FullName, m.NationalID, m.Gender, m.BirthDate, m.DisabilityType, m.DisabilityDetails, m.DisabilityCardNumber,
		m.EducationLevel, m.EmploymentStatus, m.JobTitle, m.Employer, m.MonthlyIncome,
		m.BuildingNumber, m.StreetName, m.District, m.City, m.PostalCode, m.AdditionalNumber, m.Address,
		m.Phone, m.AlternativePhone, m.Email, m.EmergencyContactName, m.EmergencyContactPhone, m.EmergencyContactRelation,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// GetByUserID obtiene el expediente del usuario. (nil, nil) si no existe.
func (r *MemberRepo) GetByUserID(ctx context.Context, userID string) (*entity.Member, error) {
	var m entity.Member
	err := r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE user_id = $1`, userID).Scan(
		&m.ID, &m.UserID, &m.BranchID, &m.RegistrationStatus,
		&m.FullName, &m.NationalID, &m.Gender, &m.BirthDate, &m.DisabilityType,
		&m.DisabilityDetails, &m.DisabilityCardNumber,
		&m.EducationLevel, &m.EmploymentStatus, &m.JobTitle,
		&m.Employer, &m.MonthlyIncome,
		&m.BuildingNumber, &m.StreetName, &m.District, &m.City,
		&m.PostalCode, &m.AdditionalNumber, &m.Address,
		&m.Phone, &m.AlternativePhone, &m.Email,
		&m.EmergencyContactName, &m.EmergencyContactPhone, &m.EmergencyContactRelation,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by user: %w", err)
	}
	return &m, nil
}

// Update reescribe las secciones editables del expediente. El estado de registro no se toca aquí.
func (r *MemberRepo) Update(ctx context.Context, m *entity.Member) error {
	query := `
		UPDATE members SET
			full_name = $2, national_id = $3, gender = NULLIF($4, ''), birth_date = $5,
			disability_type = NULLIF($6, ''), disability_details = NULLIF($7, ''), disability_card_number = NULLIF($8, ''),
			education_level = NULLIF($9, ''), employment_status = NULLIF($10, ''), job_title = NULLIF($11, ''),
			employer = NULLIF($12, ''), monthly_income = $13,
			building_number = NULLIF($14, ''), street_name = NULLIF($15, ''), district = NULLIF($16, ''),
			city = NULLIF($17, ''), postal_code = NULLIF($18, ''), additional_number = NULLIF($19, ''), address = NULLIF($20, ''),
			phone = NULLIF($21, ''), alternative_phone = NULLIF($22, ''), email = NULLIF($23, ''),
			emergency_contact_name = NULLIF($24, ''), emergency_contact_phone = NULLIF($25, ''),
			emergency_contact_relation = NULLIF($26, ''),
			updated_at = $27
		WHERE id = $1`
	err := execAffected(ctx, r.q, domain.ErrNotFound, query,
		m.ID, m.FullName, m.NationalID, m.Gender, m.BirthDate,
		m.DisabilityType, m.DisabilityDetails, m.DisabilityCardNumber,
		m.EducationLevel, m.EmploymentStatus, m.JobTitle, m.Employer, m.MonthlyIncome,
		m.BuildingNumber, m.StreetName, m.District, m.City, m.PostalCode, m.AdditionalNumber, m.Address,
		m.Phone, m.AlternativePhone, m.Email,
		m.EmergencyContactName, m.EmergencyContactPhone, m.EmergencyContactRelation,
		m.UpdatedAt,
	)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("update member: %w", err)
	}
	return err
}
