package repository

import (
	"context"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// MemberRepository define el puerto de persistencia del expediente del beneficiario.
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByUserID(ctx context.Context, userID string) (*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
}
