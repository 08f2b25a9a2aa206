package portalclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
)

// Stats resultado de GetStats. Stats siempre está bien formado; Err explica por qué
// vino en cero (nil si el servidor respondió con éxito).
type Stats struct {
	Stats    dto.DashboardStats
	Degraded bool
	Message  string
	Err      error
}

// GetStats pide las estadísticas del panel para adminID.
// Cualquier fallo (success:false, respuesta no 2xx, error de red o de decodificación)
// devuelve ceros con salud warning y el motivo en Err.
func (c *Client) GetStats(ctx context.Context, adminID string) Stats {
	status, raw, err := c.post(ctx, "admin-stats", dto.AdminStatsRequest{AdminID: adminID})
	if err != nil {
		return Stats{Stats: dto.ZeroStats(dto.HealthWarning), Err: err}
	}

	var resp dto.AdminStatsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Stats{
			Stats: dto.ZeroStats(dto.HealthWarning),
			Err:   fmt.Errorf("portalclient: decodificar estadísticas (%d): %w", status, err),
		}
	}
	if status < 200 || status >= 300 || !resp.Success {
		return Stats{
			Stats: dto.ZeroStats(dto.HealthWarning),
			Err:   &Error{Status: status, Message: resp.Error},
		}
	}
	if resp.Stats == nil {
		return Stats{
			Stats: dto.ZeroStats(dto.HealthWarning),
			Err:   fmt.Errorf("portalclient: respuesta sin stats"),
		}
	}
	return Stats{Stats: *resp.Stats, Degraded: resp.Degraded, Message: resp.Message}
}
