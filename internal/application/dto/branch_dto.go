package dto

import "time"

// BranchData entrada de create/update de sedes (branchData).
type BranchData struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	ManagerID string `json:"manager_id"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// BranchResponse salida de una sede con sus contadores.
type BranchResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	City           string    `json:"city"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	ManagerID      string    `json:"manager_id,omitempty"`
	ManagerName    string    `json:"manager_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	EmployeesCount int       `json:"employees_count"`
	MembersCount   int       `json:"members_count"`
}

// DependentsResponse respuesta cuando una sede no se puede borrar.
type DependentsResponse struct {
	Success        bool   `json:"success"`
	HasDependents  bool   `json:"hasDependents"`
	EmployeesCount int    `json:"employeesCount"`
	MembersCount   int    `json:"membersCount"`
	Code           string `json:"code,omitempty"`
	Error          string `json:"error,omitempty"`
}
