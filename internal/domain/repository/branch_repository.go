package repository

import (
	"context"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	SetActive(ctx context.Context, id string, active bool) error
	// List devuelve las sedes con gerente y contadores de empleados y beneficiarios.
	List(ctx context.Context) ([]*entity.BranchSummary, error)
	// CountDependents cuenta usuarios y expedientes ligados a la sede.
	CountDependents(ctx context.Context, id string) (users, members int, err error)
	Delete(ctx context.Context, id string) error
}
