package portalclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
)

// Servicios

// ListServices devuelve el catálogo completo de servicios.
func (c *Client) ListServices(ctx context.Context) ([]dto.ServiceResponse, error) {
	var out []dto.ServiceResponse
	err := c.call(ctx, "admin-services", dto.FunctionRequest{Action: dto.ActionList}, &out)
	return out, err
}

// CreateService crea un servicio y devuelve el registro guardado.
func (c *Client) CreateService(ctx context.Context, data dto.ServiceData) (*dto.ServiceResponse, error) {
	var out dto.ServiceResponse
	if err := c.call(ctx, "admin-services", dto.FunctionRequest{Action: dto.ActionCreate, ServiceData: &data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateService reemplaza los datos editables del servicio id.
func (c *Client) UpdateService(ctx context.Context, id string, data dto.ServiceData) (*dto.ServiceResponse, error) {
	var out dto.ServiceResponse
	req := dto.FunctionRequest{Action: dto.ActionUpdate, ServiceID: id, ServiceData: &data}
	if err := c.call(ctx, "admin-services", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleService activa o desactiva el servicio id.
func (c *Client) ToggleService(ctx context.Context, id string, active bool) (*dto.ServiceResponse, error) {
	var out dto.ServiceResponse
	req := dto.FunctionRequest{Action: dto.ActionToggleStatus, ServiceID: id, NewStatus: &active}
	if err := c.call(ctx, "admin-services", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckHasRequests devuelve cuántas solicitudes tiene el servicio.
func (c *Client) CheckHasRequests(ctx context.Context, id string) (int, error) {
	status, raw, err := c.post(ctx, "admin-services", dto.FunctionRequest{Action: dto.ActionCheckHasRequests, ServiceID: id})
	if err != nil {
		return 0, err
	}
	var resp dto.HasRequestsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return 0, fmt.Errorf("portalclient: decodificar check_has_requests (%d): %w", status, err)
	}
	if status < 200 || status >= 300 || !resp.Success {
		return 0, &Error{Status: status, Code: resp.Code, Message: resp.Error}
	}
	return resp.RequestCount, nil
}

// DeleteService consulta primero check_has_requests y, si el servicio tiene solicitudes,
// devuelve *HasRequestsError sin enviar el delete. Un 409 HAS_REQUESTS del servidor
// (solicitud creada entre ambas llamadas) se traduce al mismo error.
func (c *Client) DeleteService(ctx context.Context, id string) error {
	n, err := c.CheckHasRequests(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &HasRequestsError{ServiceID: id, Count: n}
	}

	status, raw, err := c.post(ctx, "admin-services", dto.FunctionRequest{Action: dto.ActionDelete, ServiceID: id})
	if err != nil {
		return err
	}
	var resp dto.HasRequestsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("portalclient: decodificar delete (%d): %w", status, err)
	}
	if resp.HasRequests {
		return &HasRequestsError{ServiceID: id, Count: resp.RequestCount}
	}
	if status < 200 || status >= 300 || !resp.Success {
		return &Error{Status: status, Code: resp.Code, Message: resp.Error}
	}
	return nil
}

// Sedes

// ListBranches devuelve todas las sucursales.
func (c *Client) ListBranches(ctx context.Context) ([]dto.BranchResponse, error) {
	var out []dto.BranchResponse
	err := c.call(ctx, "admin-branches", dto.FunctionRequest{Action: dto.ActionList}, &out)
	return out, err
}

// CreateBranch crea una sucursal.
func (c *Client) CreateBranch(ctx context.Context, data dto.BranchData) (*dto.BranchResponse, error) {
	var out dto.BranchResponse
	if err := c.call(ctx, "admin-branches", dto.FunctionRequest{Action: dto.ActionCreate, BranchData: &data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBranch actualiza la sucursal id.
func (c *Client) UpdateBranch(ctx context.Context, id string, data dto.BranchData) (*dto.BranchResponse, error) {
	var out dto.BranchResponse
	req := dto.FunctionRequest{Action: dto.ActionUpdate, BranchID: id, BranchData: &data}
	if err := c.call(ctx, "admin-branches", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleBranch activa o desactiva la sucursal id.
func (c *Client) ToggleBranch(ctx context.Context, id string, active bool) (*dto.BranchResponse, error) {
	var out dto.BranchResponse
	req := dto.FunctionRequest{Action: dto.ActionToggleStatus, BranchID: id, NewStatus: &active}
	if err := c.call(ctx, "admin-branches", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteBranch borra la sucursal id; falla si tiene usuarios o beneficiarios.
func (c *Client) DeleteBranch(ctx context.Context, id string) error {
	return c.call(ctx, "admin-branches", dto.FunctionRequest{Action: dto.ActionDelete, BranchID: id}, nil)
}

// Usuarios

// UserQuery filtros del listado de usuarios.
type UserQuery struct {
	Role     string
	BranchID string
	Search   string
	Limit    int
	Offset   int
}

// ListUsers lista usuarios filtrando por q.
func (c *Client) ListUsers(ctx context.Context, q UserQuery) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	req := dto.FunctionRequest{
		Action:      dto.ActionList,
		Role:        q.Role,
		BranchID:    q.BranchID,
		Search:      q.Search,
		PageRequest: dto.PageRequest{Limit: q.Limit, Offset: q.Offset},
	}
	err := c.call(ctx, "admin-users", req, &out)
	return out, err
}

// CreateUser crea un usuario del panel.
func (c *Client) CreateUser(ctx context.Context, data dto.UserData) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.call(ctx, "admin-users", dto.FunctionRequest{Action: dto.ActionCreate, UserData: &data}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser actualiza el usuario id.
func (c *Client) UpdateUser(ctx context.Context, id string, data dto.UserData) (*dto.UserResponse, error) {
	var out dto.UserResponse
	req := dto.FunctionRequest{Action: dto.ActionUpdate, UserID: id, UserData: &data}
	if err := c.call(ctx, "admin-users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleUser activa o desactiva el usuario id.
func (c *Client) ToggleUser(ctx context.Context, id string, active bool) (*dto.UserResponse, error) {
	var out dto.UserResponse
	req := dto.FunctionRequest{Action: dto.ActionToggleStatus, UserID: id, NewStatus: &active}
	if err := c.call(ctx, "admin-users", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser borra el usuario id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, "admin-users", dto.FunctionRequest{Action: dto.ActionDelete, UserID: id}, nil)
}
