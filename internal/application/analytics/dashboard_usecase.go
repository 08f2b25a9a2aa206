// Package analytics contiene el agregador de estadísticas del panel de administración.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/repository"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// Resultados registrados por cada llamada.
const (
	OutcomeOK        = "ok"
	OutcomeDegraded  = "degraded"
	OutcomeForbidden = "forbidden"
)

// Recorder recibe el resultado de cada llamada (métricas).
type Recorder interface {
	ObserveStats(outcome, health string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStats(string, string) {}

// Health clasifica la carga del sistema a partir de las solicitudes pendientes.
func Health(pending int) string {
	switch {
	case pending <= 0:
		return dto.HealthExcellent
	case pending <= 5:
		return dto.HealthGood
	case pending <= 15:
		return dto.HealthWarning
	default:
		return dto.HealthCritical
	}
}

// DashboardUseCase genera la instantánea de estadísticas del panel.
//
// Los cinco conteos son consultas independientes sin transacción común; entre ellos
// puede haber escrituras concurrentes. Para un panel es suficiente.
type DashboardUseCase struct {
	users   repository.UserRepository
	stats   repository.StatsRepository
	metrics Recorder
	log     *logger.Logger
	group   singleflight.Group
}

// NewDashboardUseCase construye el caso de uso. metrics puede ser nil.
func NewDashboardUseCase(users repository.UserRepository, stats repository.StatsRepository, metrics Recorder, log *logger.Logger) *DashboardUseCase {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardUseCase{users: users, stats: stats, metrics: metrics, log: log}
}

// GetStats verifica que adminID sea admin y devuelve las estadísticas.
// Devuelve domain.ErrForbidden si no lo es. Si algún conteo falla no devuelve error:
// el resultado queda en cero, con salud warning y Degraded en true.
func (uc *DashboardUseCase) GetStats(ctx context.Context, adminID string) (*dto.StatsResult, error) {
	if err := uc.authorize(ctx, adminID); err != nil {
		uc.metrics.ObserveStats(OutcomeForbidden, "")
		return nil, err
	}

	// Las llamadas simultáneas comparten una sola ronda de consultas.
	v, err, shared := uc.group.Do("stats", func() (interface{}, error) {
		return uc.count(ctx)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("admin_id", adminID).Msg("estadísticas degradadas")
		uc.metrics.ObserveStats(OutcomeDegraded, dto.HealthWarning)
		return &dto.StatsResult{Stats: dto.ZeroStats(dto.HealthWarning), Degraded: true}, nil
	}
	stats := v.(dto.DashboardStats)
	uc.log.Debug().Bool("shared", shared).Int("pending", stats.PendingRequests).Str("health", stats.SystemHealth).Msg("estadísticas generadas")
	uc.metrics.ObserveStats(OutcomeOK, stats.SystemHealth)
	return &dto.StatsResult{Stats: stats}, nil
}

func (uc *DashboardUseCase) authorize(ctx context.Context, adminID string) error {
	if adminID == "" {
		return domain.ErrForbidden
	}
	user, err := uc.users.GetByID(ctx, adminID)
	if err != nil {
		uc.log.Warn().Err(err).Str("admin_id", adminID).Msg("no se pudo verificar el administrador")
		return domain.ErrForbidden
	}
	if user == nil || user.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *DashboardUseCase) count(ctx context.Context) (dto.DashboardStats, error) {
	var s dto.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := uc.stats.CountUsers(gctx)
		if err != nil {
			return fmt.Errorf("contar usuarios: %w", err)
		}
		s.TotalUsers = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.stats.CountMembers(gctx)
		if err != nil {
			return fmt.Errorf("contar beneficiarios: %w", err)
		}
		s.TotalMembers = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.stats.CountMembersByStatus(gctx, entity.PendingRegistrationStatuses)
		if err != nil {
			return fmt.Errorf("contar pendientes: %w", err)
		}
		s.PendingRequests = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.stats.CountActiveBranches(gctx)
		if err != nil {
			return fmt.Errorf("contar sedes activas: %w", err)
		}
		s.ActiveBranches = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.stats.CountActiveServices(gctx)
		if err != nil {
			return fmt.Errorf("contar servicios activos: %w", err)
		}
		s.TotalServices = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dto.DashboardStats{}, err
	}
	s.SystemHealth = Health(s.PendingRequests)
	return s, nil
}
