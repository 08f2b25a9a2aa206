package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

var nationalIDPattern = regexp.MustCompile(`^[12][0-9]{9}$`)

var allRoles = []string{entity.RoleAdmin, entity.RoleBranchManager, entity.RoleEmployee, entity.RoleBeneficiary}

// ValidNationalID indica si id tiene el formato de identidad nacional (10 dígitos, empieza en 1 o 2).
func ValidNationalID(id string) bool {
	return nationalIDPattern.MatchString(id)
}

// RegistrationTx ejecuta fn con repositorios atados a una misma transacción.
type RegistrationTx interface {
	RunRegistration(ctx context.Context, fn func(users repository.UserRepository, members repository.MemberRepository) error) error
}

// BeneficiaryRegistrar da de alta beneficiarios nuevos con su expediente en pending_review.
type BeneficiaryRegistrar struct {
	users   repository.UserRepository
	members repository.MemberRepository
	tx      RegistrationTx
	log     *logger.Logger
	now     func() time.Time
}

// NewBeneficiaryRegistrar construye el registrador.
func NewBeneficiaryRegistrar(users repository.UserRepository, members repository.MemberRepository, log *logger.Logger) *BeneficiaryRegistrar {
	if log == nil {
		log = logger.Nop()
	}
	return &BeneficiaryRegistrar{users: users, members: members, log: log, now: nowUTC}
}

// WithTx hace que usuario y expediente se inserten en una sola transacción.
func (r *BeneficiaryRegistrar) WithTx(tx RegistrationTx) *BeneficiaryRegistrar {
	r.tx = tx
	return r
}

// Register valida la solicitud, crea el User (rol beneficiary) y el Member.
// Devuelve ErrValidation si faltan datos y ErrNationalIDExists si la identidad ya existe.
func (r *BeneficiaryRegistrar) Register(ctx context.Context, in dto.RegistrationRequest) (*entity.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.FullName == "" || in.Phone == "" || !ValidNationalID(in.NationalID) {
		return nil, domain.ErrValidation
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return nil, domain.ErrValidation
	}
	if in.Gender != "" && in.Gender != "male" && in.Gender != "female" {
		return nil, domain.ErrValidation
	}
	var birth *time.Time
	if in.BirthDate != "" {
		t, err := time.Parse("2006-01-02", in.BirthDate)
		if err != nil || t.After(r.now()) {
			return nil, domain.ErrValidation
		}
		birth = &t
	}

	existing, err := r.users.FindByNationalID(ctx, in.NationalID, allRoles)
	if err != nil {
		return nil, fmt.Errorf("registro: buscar identidad: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrNationalIDExists
	}

	now := r.now()
	user := &entity.User{
		ID:         uuid.New().String(),
		FullName:   in.FullName,
		Email:      in.Email,
		NationalID: in.NationalID,
		Phone:      in.Phone,
		Role:       entity.RoleBeneficiary,
		BranchID:   in.BranchID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	member := &entity.Member{
		ID:                 uuid.New().String(),
		UserID:             user.ID,
		BranchID:           in.BranchID,
		RegistrationStatus: entity.RegistrationPendingReview,
		FullName:           in.FullName,
		NationalID:         in.NationalID,
		Gender:             in.Gender,
		BirthDate:          birth,
		DisabilityType:     in.DisabilityType,
		City:               in.City,
		Phone:              in.Phone,
		Email:              in.Email,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if r.tx != nil {
		err = r.tx.RunRegistration(ctx, func(users repository.UserRepository, members repository.MemberRepository) error {
			return persistRegistration(ctx, users, members, user, member)
		})
	} else {
		err = persistRegistration(ctx, r.users, r.members, user, member)
		if err != nil && !errors.Is(err, domain.ErrNationalIDExists) && !errors.Is(err, errCreateUser) {
			// Sin expediente el usuario no puede completar su registro: se revierte.
			if delErr := r.users.Delete(ctx, user.ID); delErr != nil {
				r.log.Error().Err(delErr).Str("user_id", user.ID).Msg("no se pudo revertir el usuario del registro")
			}
		}
	}
	if err != nil {
		return nil, err
	}
	r.log.Info().Str("user_id", user.ID).Msg("beneficiario registrado")
	return user, nil
}

var errCreateUser = errors.New("registro: crear usuario")

func persistRegistration(ctx context.Context, users repository.UserRepository, members repository.MemberRepository, user *entity.User, member *entity.Member) error {
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrEmailAlreadyExists) {
			return domain.ErrNationalIDExists
		}
		return fmt.Errorf("%w: %v", errCreateUser, err)
	}
	if err := members.Create(ctx, member); err != nil {
		return fmt.Errorf("registro: crear expediente: %w", err)
	}
	return nil
}
