package dto

// Valores de SystemHealth.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthWarning   = "warning"
	HealthCritical  = "critical"
)

// DashboardStats instantánea de carga del sistema para el panel de administración.
// SystemHealth no se guarda: se deriva de PendingRequests en cada llamada.
type DashboardStats struct {
	TotalUsers      int    `json:"totalUsers"`
	TotalMembers    int    `json:"totalMembers"`
	PendingRequests int    `json:"pendingRequests"`
	ActiveBranches  int    `json:"activeBranches"`
	TotalServices   int    `json:"totalServices"`
	SystemHealth    string `json:"systemHealth"`
}

// ZeroStats estadísticas en cero con la salud indicada.
func ZeroStats(health string) DashboardStats {
	return DashboardStats{SystemHealth: health}
}

// StatsResult resultado del agregador. Degraded indica que algún conteo falló
// y Stats quedó en cero.
type StatsResult struct {
	Stats    DashboardStats
	Degraded bool
}

// AdminStatsRequest cuerpo de POST /api/functions/admin-stats.
type AdminStatsRequest struct {
	AdminID string `json:"adminId"`
}

// AdminStatsResponse respuesta de admin-stats.
type AdminStatsResponse struct {
	Success  bool            `json:"success"`
	Stats    *DashboardStats `json:"stats,omitempty"`
	Degraded bool            `json:"degraded,omitempty"`
	Message  string          `json:"message,omitempty"`
	Error    string          `json:"error,omitempty"`
}
