package dto

import "time"

// SelectRoleRequest elección en la pantalla de selección.
type SelectRoleRequest struct {
	Role string `json:"role"`
}

// NationalIDRequest búsqueda por identidad nacional.
type NationalIDRequest struct {
	NationalID string `json:"nationalId"`
}

// OTPRequest verificación del código.
type OTPRequest struct {
	OTP string `json:"otp"`
}

// AdminLoginRequest credenciales del administrador.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationRequest alta de un nuevo beneficiario.
type RegistrationRequest struct {
	FullName       string `json:"full_name"`
	NationalID     string `json:"national_id"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	BirthDate      string `json:"birth_date"` // YYYY-MM-DD
	City           string `json:"city"`
	BranchID       string `json:"branch_id"`
	DisabilityType string `json:"disability_type"`
}

// AccountDTO cuenta autenticada o recién registrada.
type AccountDTO struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	NationalID string `json:"national_id,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	BranchID   string `json:"branch_id,omitempty"`
}

// FlowStateDTO estado público del flujo. El password nunca se serializa.
type FlowStateDTO struct {
	Step         string      `json:"step"`
	UserType     *string     `json:"userType"`
	SessionID    *int64      `json:"sessionId"`
	NationalID   string      `json:"nationalId"`
	OTP          string      `json:"otp"`
	Email        string      `json:"email"`
	IsLoading    bool        `json:"isLoading"`
	Error        *string     `json:"error"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	User         *AccountDTO `json:"user"`
	Finished     bool        `json:"finished"`
}

// SessionDTO sesión emitida al terminar el flujo.
type SessionDTO struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      AccountDTO `json:"user"`
}

// FlowResponse respuesta de cada paso del flujo.
type FlowResponse struct {
	FlowID  string       `json:"flowId"`
	State   FlowStateDTO `json:"state"`
	Session *SessionDTO  `json:"session,omitempty"`
}

// SessionEvent carga del evento session_established del stream SSE.
type SessionEvent struct {
	FlowID  string     `json:"flowId"`
	Session SessionDTO `json:"session"`
}
