package repository

import (
	"context"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// UserFilter filtros opcionales del listado de usuarios del panel.
type UserFilter struct {
	Role     string
	BranchID string
	Search   string // nombre, correo o identidad
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Get* devuelve (nil, nil) cuando no existe el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByNationalID busca un usuario activo o inactivo cuyo rol esté en roles.
	FindByNationalID(ctx context.Context, nationalID string, roles []string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
