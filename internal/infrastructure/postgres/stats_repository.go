package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo conteos de solo lectura para el panel de administración.
// Cada consulta corre con su propio timeout para que una tabla lenta no bloquee el panel.
type StatsRepo struct {
	q       Querier
	timeout time.Duration
}

// NewStatsRepository construye el adaptador. timeout <= 0 desactiva el límite por consulta.
func NewStatsRepository(q Querier, timeout time.Duration) *StatsRepo {
	return &StatsRepo{q: q, timeout: timeout}
}

// CountUsers total de cuentas.
func (r *StatsRepo) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, "users", `SELECT COUNT(*) FROM users`)
}

// CountMembers total de expedientes.
func (r *StatsRepo) CountMembers(ctx context.Context) (int, error) {
	return r.count(ctx, "members", `SELECT COUNT(*) FROM members`)
}

// CountMembersByStatus expedientes con estado dentro de statuses.
func (r *StatsRepo) CountMembersByStatus(ctx context.Context, statuses []string) (int, error) {
	return r.count(ctx, "members_by_status", `SELECT COUNT(*) FROM members WHERE registration_status = ANY($1)`, statuses)
}

// CountActiveBranches sedes activas.
func (r *StatsRepo) CountActiveBranches(ctx context.Context) (int, error) {
	return r.count(ctx, "active_branches", `SELECT COUNT(*) FROM branches WHERE is_active`)
}

// CountActiveServices servicios activos.
func (r *StatsRepo) CountActiveServices(ctx context.Context) (int, error) {
	return r.count(ctx, "active_services", `SELECT COUNT(*) FROM services WHERE is_active`)
}

func (r *StatsRepo) count(ctx context.Context, name, query string, args ...any) (int, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("stats.%s: %w", name, err)
	}
	return n, nil
}
