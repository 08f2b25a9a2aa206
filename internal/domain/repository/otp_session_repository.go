package repository

import (
	"context"
	"time"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
)

// OTPSessionRepository persiste las sesiones de verificación por código.
type OTPSessionRepository interface {
	// Create inserta la sesión y asigna su ID numérico.
	Create(ctx context.Context, s *entity.OTPSession) error
	GetByID(ctx context.Context, id int64) (*entity.OTPSession, error)
	IncrementAttempts(ctx context.Context, id int64) (int, error)
	MarkVerified(ctx context.Context, id int64, at time.Time) error
	// DeleteExpired borra las sesiones vencidas antes de before y devuelve cuántas borró.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
