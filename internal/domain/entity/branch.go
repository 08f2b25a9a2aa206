package entity

import "time"

// Branch representa una sede donde se atiende a los beneficiarios.
type Branch struct {
	ID        string
	Name      string
	City      string
	Address   string
	Phone     string
	ManagerID string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BranchSummary agrega a Branch los contadores que muestra el panel de administración.
type BranchSummary struct {
	Branch
	ManagerName    string
	EmployeesCount int
	MembersCount   int
}
