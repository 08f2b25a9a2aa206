package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrNationalIDExists   = errors.New("el número de identidad ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrHasRequests        = errors.New("el servicio tiene solicitudes asociadas")
	ErrHasDependents      = errors.New("el registro tiene dependientes asociados")
	ErrValidation         = errors.New("validación fallida")
)

// Errores del flujo de identidad (búsqueda por identidad nacional + OTP).
var (
	ErrSessionNotFound  = errors.New("sesión OTP no encontrada")
	ErrOTPMismatch      = errors.New("código OTP incorrecto")
	ErrOTPExpired       = errors.New("código OTP vencido")
	ErrOTPAttempts      = errors.New("intentos OTP agotados")
	ErrAccountInactive  = errors.New("cuenta inactiva")
	ErrInvalidLoginRole = errors.New("rol no válido para este acceso")
)

// DependentsError conflicto de integridad al borrar: el registro todavía tiene
// solicitudes, usuarios o expedientes asociados. Envuelve ErrHasRequests o ErrHasDependents.
type DependentsError struct {
	Err       error
	Requests  int
	Employees int
	Members   int
}

func (e *DependentsError) Error() string { return e.Err.Error() }

func (e *DependentsError) Unwrap() error { return e.Err }

// FieldError validación fallida en un campo concreto. Envuelve ErrValidation.
type FieldError struct {
	Field string
}

// InvalidField construye un FieldError para field.
func InvalidField(field string) error { return &FieldError{Field: field} }

func (e *FieldError) Error() string { return ErrValidation.Error() + ": " + e.Field }

func (e *FieldError) Unwrap() error { return ErrValidation }
