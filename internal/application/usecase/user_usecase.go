package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase aplica reglas de negocio para usuarios del panel.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios filtrando por rol, sede o texto.
func (uc *UserUseCase) List(ctx context.Context, f repository.UserFilter) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, entityToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario. La contraseña es obligatoria para el rol admin, que entra con credenciales.
// Devuelve ErrEmailAlreadyExists si el correo o la identidad ya existen.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserData) (*dto.UserResponse, error) {
	in = normalizeUserData(in)
	if err := validateUser(in); err != nil {
		return nil, err
	}
	if in.Role == entity.RoleAdmin && len(in.Password) < minPasswordLen {
		return nil, domain.InvalidField("password")
	}
	now := time.Now()
	u := &entity.User{
		ID:         uuid.New().String(),
		FullName:   in.FullName,
		Email:      in.Email,
		NationalID: in.NationalID,
		Phone:      in.Phone,
		Role:       in.Role,
		BranchID:   in.BranchID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	out := entityToUserResponse(u)
	return &out, nil
}

// Update reemplaza los datos del usuario. Una contraseña vacía conserva la actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UserData) (*dto.UserResponse, error) {
	in = normalizeUserData(in)
	if err := validateUser(in); err != nil {
		return nil, err
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.FullName = in.FullName
	u.Email = in.Email
	u.NationalID = in.NationalID
	u.Phone = in.Phone
	u.Role = in.Role
	u.BranchID = in.BranchID
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			return nil, domain.InvalidField("password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}
	out := entityToUserResponse(u)
	return &out, nil
}

// ToggleStatus activa o desactiva el usuario. Un administrador no puede desactivarse a sí mismo.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, actorID, id string, active bool) (*dto.UserResponse, error) {
	if !active && actorID == id {
		return nil, domain.ErrConflict
	}
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := entityToUserResponse(u)
	return &out, nil
}

// Delete borra el usuario. Un administrador no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrConflict
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func normalizeUserData(in dto.UserData) dto.UserData {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

func validateUser(in dto.UserData) error {
	switch {
	case in.FullName == "":
		return domain.InvalidField("full_name")
	case !entity.ValidRole(in.Role):
		return domain.InvalidField("role")
	case in.Email == "" && in.NationalID == "":
		return domain.InvalidField("email")
	case in.Email != "" && !strings.Contains(in.Email, "@"):
		return domain.InvalidField("email")
	case in.Role == entity.RoleAdmin && in.Email == "":
		return domain.InvalidField("email")
	}
	return nil
}

func entityToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Role:       u.Role,
		BranchID:   u.BranchID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
