package dto

// FunctionRequest cuerpo de las funciones admin-services, admin-branches y admin-users.
// Action discrimina el resto de campos.
type FunctionRequest struct {
	Action      string       `json:"action"`
	ServiceID   string       `json:"serviceId,omitempty"`
	ServiceData *ServiceData `json:"serviceData,omitempty"`
	BranchID    string       `json:"branchId,omitempty"`
	BranchData  *BranchData  `json:"branchData,omitempty"`
	UserID      string       `json:"userId,omitempty"`
	UserData    *UserData    `json:"userData,omitempty"`
	NewStatus   *bool        `json:"newStatus,omitempty"`

	// Filtros de list en admin-users
	Role   string `json:"role,omitempty"`
	Search string `json:"search,omitempty"`
	PageRequest
}

// Acciones admitidas.
const (
	ActionList             = "list"
	ActionCreate           = "create"
	ActionUpdate           = "update"
	ActionToggleStatus     = "toggle_status"
	ActionDelete           = "delete"
	ActionCheckHasRequests = "check_has_requests"
)
