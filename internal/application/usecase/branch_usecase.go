package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sedes.
type BranchUseCase struct {
	repo  repository.BranchRepository
	users repository.UserRepository
}

// NewBranchUseCase construye el caso de uso. users se usa para validar el gerente.
func NewBranchUseCase(repo repository.BranchRepository, users repository.UserRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo, users: users}
}

// List devuelve las sedes con gerente y contadores.
func (uc *BranchUseCase) List(ctx context.Context) ([]dto.BranchResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		r := toBranchResponse(&b.Branch)
		r.ManagerName = b.ManagerName
		r.EmployeesCount = b.EmployeesCount
		r.MembersCount = b.MembersCount
		out = append(out, r)
	}
	return out, nil
}

// Create crea una sede activa.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.BranchData) (*dto.BranchResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Branch{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyBranchData(b, in)
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Update reemplaza los datos editables de la sede.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.BranchData) (*dto.BranchResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyBranchData(b, in)
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// ToggleStatus activa o desactiva la sede.
func (uc *BranchUseCase) ToggleStatus(ctx context.Context, id string, active bool) (*dto.BranchResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toBranchResponse(b)
	return &out, nil
}

// Delete borra la sede. Con usuarios o expedientes asociados devuelve *domain.DependentsError.
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	employees, members, err := uc.repo.CountDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("contar dependientes: %w", err)
	}
	if employees > 0 || members > 0 {
		return &domain.DependentsError{Err: domain.ErrHasDependents, Employees: employees, Members: members}
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BranchUseCase) get(ctx context.Context, id string) (*entity.Branch, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (uc *BranchUseCase) validate(ctx context.Context, in dto.BranchData) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.InvalidField("name")
	}
	if strings.TrimSpace(in.City) == "" {
		return domain.InvalidField("city")
	}
	if in.ManagerID == "" {
		return nil
	}
	m, err := uc.users.GetByID(ctx, in.ManagerID)
	if err != nil {
		return err
	}
	if m == nil || (m.Role != entity.RoleBranchManager && m.Role != entity.RoleAdmin) {
		return domain.InvalidField("manager_id")
	}
	return nil
}

func applyBranchData(b *entity.Branch, in dto.BranchData) {
	b.Name = strings.TrimSpace(in.Name)
	b.City = strings.TrimSpace(in.City)
	b.Address = in.Address
	b.Phone = in.Phone
	b.ManagerID = in.ManagerID
}

func toBranchResponse(b *entity.Branch) dto.BranchResponse {
	return dto.BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		City:      b.City,
		Address:   b.Address,
		Phone:     b.Phone,
		ManagerID: b.ManagerID,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
