package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin         = "admin"
	RoleBranchManager = "branch_manager"
	RoleEmployee      = "employee"
	RoleBeneficiary   = "beneficiary"
)

// ValidRole indica si el rol pertenece al catálogo del portal.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBranchManager, RoleEmployee, RoleBeneficiary:
		return true
	}
	return false
}

// User representa una cuenta del portal (personal, administración o beneficiario).
type User struct {
	ID           string
	FullName     string
	Email        string // vacío para beneficiarios que solo entran con identidad + OTP
	NationalID   string
	Phone        string
	PasswordHash string // bcrypt; solo lo usan las cuentas con acceso por credenciales
	Role         string
	BranchID     string // opcional
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
