package entity

import "time"

// OTPSession liga una búsqueda por identidad nacional con su verificación OTP.
// ID es el identificador numérico de sesión que recibe el cliente.
type OTPSession struct {
	ID         int64
	NationalID string
	UserID     string
	Role       string
	CodeHash   string
	Attempts   int
	ExpiresAt  time.Time
	VerifiedAt *time.Time
	CreatedAt  time.Time
}

// Expired indica si la sesión venció a la fecha now.
func (s *OTPSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
