package repository

import (
	"context"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para Service (DIP).
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	SetActive(ctx context.Context, id string, active bool) error
	// List devuelve los servicios con nombre del creador y número de solicitudes.
	List(ctx context.Context) ([]*entity.ServiceSummary, error)
	// CountRequests cuenta las solicitudes (service_requests) del servicio.
	CountRequests(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}
