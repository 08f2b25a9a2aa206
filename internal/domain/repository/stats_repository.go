package repository

import "context"

// StatsRepository define las consultas de conteo del panel de administración.
// Cada conteo es independiente; las implementaciones son read-only.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountMembers(ctx context.Context) (int, error)
	// CountMembersByStatus cuenta los expedientes cuyo estado está en statuses.
	CountMembersByStatus(ctx context.Context, statuses []string) (int, error)
	CountActiveBranches(ctx context.Context) (int, error)
	CountActiveServices(ctx context.Context) (int, error)
}
