package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ repository.OTPSessionRepository = (*OTPSessionRepo)(nil)

// OTPSessionRepo sesiones de verificación por código. El ID es un BIGSERIAL.
type OTPSessionRepo struct {
	q Querier
}

// NewOTPSessionRepository construye el adaptador.
func NewOTPSessionRepository(q Querier) *OTPSessionRepo {
	return &OTPSessionRepo{q: q}
}

// Create inserta la sesión y asigna s.ID.
func (r *OTPSessionRepo) Create(ctx context.Context, s *entity.OTPSession) error {
	query := `
		INSERT INTO otp_sessions (national_id, user_id, role, code_hash, attempts, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.NationalID, s.UserID, s.Role, s.CodeHash, s.Attempts, s.ExpiresAt, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert otp session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión. (nil, nil) si no existe.
func (r *OTPSessionRepo) GetByID(ctx context.Context, id int64) (*entity.OTPSession, error) {
	query := `
		SELECT id, national_id, user_id::text, role, code_hash, attempts, expires_at, verified_at, created_at
		FROM otp_sessions WHERE id = $1`
	var s entity.OTPSession
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.NationalID, &s.UserID, &s.Role, &s.CodeHash, &s.Attempts, &s.ExpiresAt, &s.VerifiedAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get otp session: %w", err)
	}
	return &s, nil
}

// IncrementAttempts suma un intento fallido y devuelve el total. El incremento es atómico en la fila.
func (r *OTPSessionRepo) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `UPDATE otp_sessions SET attempts = attempts + 1 WHERE id = $1 RETURNING attempts`, id).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrSessionNotFound
		}
		return 0, fmt.Errorf("increment otp attempts: %w", err)
	}
	return n, nil
}

// MarkVerified cierra la sesión; una sesión verificada no vuelve a aceptar códigos.
func (r *OTPSessionRepo) MarkVerified(ctx context.Context, id int64, at time.Time) error {
	err := execAffected(ctx, r.q, domain.ErrSessionNotFound,
		`UPDATE otp_sessions SET verified_at = $2 WHERE id = $1 AND verified_at IS NULL`, id, at)
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("mark otp verified: %w", err)
	}
	return err
}

// DeleteExpired borra las sesiones vencidas antes de before.
func (r *OTPSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM otp_sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired otp sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
