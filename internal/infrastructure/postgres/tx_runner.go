package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/portal-beneficiarios/internal/application/auth"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ auth.RegistrationTx = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration da de alta usuario y expediente con repos atados a la misma tx.
// Si fn devuelve error se hace Rollback y no queda ningún registro a medias.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	users repository.UserRepository,
	members repository.MemberRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewMemberRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
