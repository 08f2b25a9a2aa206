package dto

import "time"

// UserData entrada de create/update de usuarios del panel (userData).
type UserData struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	BranchID   string `json:"branch_id"`
	Password   string `json:"password,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email,omitempty"`
	NationalID string    `json:"national_id,omitempty"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	BranchID   string    `json:"branch_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
