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

// ServiceUseCase casos de uso CRUD para servicios sociales.
type ServiceUseCase struct {
	repo repository.ServiceRepository
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(repo repository.ServiceRepository) *ServiceUseCase {
	return &ServiceUseCase{repo: repo}
}

// List devuelve todos los servicios con su número de solicitudes.
func (uc *ServiceUseCase) List(ctx context.Context) ([]dto.ServiceResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		r := toServiceResponse(&s.Service)
		r.CreatorName = s.CreatorName
		r.RequestsCount = s.RequestsCount
		out = append(out, r)
	}
	return out, nil
}

// Create crea un servicio activo a nombre de createdBy.
func (uc *ServiceUseCase) Create(ctx context.Context, createdBy string, in dto.ServiceData) (*dto.ServiceResponse, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Service{
		ID:        uuid.New().String(),
		CreatedBy: createdBy,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyServiceData(s, in)
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := toServiceResponse(s)
	return &out, nil
}

// Update reemplaza los datos editables del servicio.
func (uc *ServiceUseCase) Update(ctx context.Context, id string, in dto.ServiceData) (*dto.ServiceResponse, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyServiceData(s, in)
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := toServiceResponse(s)
	return &out, nil
}

// ToggleStatus activa o desactiva el servicio.
func (uc *ServiceUseCase) ToggleStatus(ctx context.Context, id string, active bool) (*dto.ServiceResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toServiceResponse(s)
	return &out, nil
}

// CheckHasRequests devuelve cuántas solicitudes referencian al servicio.
func (uc *ServiceUseCase) CheckHasRequests(ctx context.Context, id string) (int, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return 0, err
	}
	n, err := uc.repo.CountRequests(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("contar solicitudes: %w", err)
	}
	return n, nil
}

// Delete borra el servicio. Si tiene solicitudes devuelve *domain.DependentsError
// (envuelve ErrHasRequests) y no borra nada.
func (uc *ServiceUseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.CheckHasRequests(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.DependentsError{Err: domain.ErrHasRequests, Requests: n}
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ServiceUseCase) get(ctx context.Context, id string) (*entity.Service, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func validateService(in dto.ServiceData) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.InvalidField("name")
	}
	if in.MaxAmount != nil && in.MaxAmount.IsNegative() {
		return domain.InvalidField("max_amount")
	}
	if in.DurationDays != nil && *in.DurationDays < 0 {
		return domain.InvalidField("duration_days")
	}
	if in.ReapplicationPeriodMonths != nil && *in.ReapplicationPeriodMonths < 0 {
		return domain.InvalidField("reapplication_period_months")
	}
	return nil
}

func applyServiceData(s *entity.Service, in dto.ServiceData) {
	s.Name = strings.TrimSpace(in.Name)
	s.Description = in.Description
	s.Requirements = in.Requirements
	s.Category = in.Category
	s.MaxAmount = in.MaxAmount
	s.DurationDays = in.DurationDays
	s.ReapplicationPeriodMonths = in.ReapplicationPeriodMonths
	s.IsOneTimeOnly = in.IsOneTimeOnly
	s.RequiredDocuments = make([]entity.RequiredDocument, 0, len(in.RequiredDocuments))
	for _, d := range in.RequiredDocuments {
		s.RequiredDocuments = append(s.RequiredDocuments, entity.RequiredDocument{Name: d.Name, IsRequired: d.IsRequired})
	}
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	docs := make([]dto.RequiredDocumentDTO, 0, len(s.RequiredDocuments))
	for _, d := range s.RequiredDocuments {
		docs = append(docs, dto.RequiredDocumentDTO{Name: d.Name, IsRequired: d.IsRequired})
	}
	return dto.ServiceResponse{
		ID:                        s.ID,
		Name:                      s.Name,
		Description:               s.Description,
		Requirements:              s.Requirements,
		Category:                  s.Category,
		MaxAmount:                 s.MaxAmount,
		DurationDays:              s.DurationDays,
		CreatedBy:                 s.CreatedBy,
		IsActive:                  s.IsActive,
		CreatedAt:                 s.CreatedAt,
		UpdatedAt:                 s.UpdatedAt,
		RequiredDocuments:         docs,
		ReapplicationPeriodMonths: s.ReapplicationPeriodMonths,
		IsOneTimeOnly:             s.IsOneTimeOnly,
	}
}
