// Package login modela el asistente de inicio de sesión como una máquina de estados.
// Todas las transiciones pasan por Reduce; los llamadores no mutan State directamente.
package login

// Step paso activo del asistente. Solo hay uno a la vez.
type Step string

const (
	StepSelection      Step = "selection"
	StepNewBeneficiary Step = "new_beneficiary"
	StepNationalID     Step = "national_id"
	StepOTP            Step = "otp"
	StepAdminLogin     Step = "admin_login"
	StepSuccess        Step = "success"
)

// Role tipo de usuario elegido en la pantalla de selección.
type Role string

const (
	RoleBeneficiary Role = "beneficiary"
	RoleEmployee    Role = "employee"
	RoleAdmin       Role = "admin"

	// RoleNewBeneficiary no es un rol de cuenta: abre el registro.
	RoleNewBeneficiary Role = "new_beneficiary"
)

// UsesOTP indica si el rol entra con identidad nacional + código.
func (r Role) UsesOTP() bool {
	return r == RoleBeneficiary || r == RoleEmployee
}

// Account datos de la cuenta autenticada o recién registrada.
type Account struct {
	ID         string
	FullName   string
	NationalID string
	Email      string
	Role       string
	BranchID   string
}

// State estado completo de un flujo de inicio de sesión.
// Error guarda una clave de mensaje, no texto visible.
type State struct {
	Step       Step
	UserType   Role // vacío = sin elegir
	SessionID  *int64
	NationalID string
	OTP        string
	Email      string
	Password   string
	IsLoading  bool
	Error      string
	User       *Account

	// Finished se activa al establecer la sesión; el flujo ya no acepta eventos.
	Finished bool

	// Call numera la llamada en curso. Begin, PickRole y Back lo incrementan, así que
	// un resultado con otro número pertenece a una llamada abandonada.
	Call uint64
}

// Initial devuelve el estado con el que arranca todo flujo.
func Initial() State {
	return State{Step: StepSelection}
}

// Outcome efecto que el llamador debe ejecutar tras una transición.
type Outcome int

const (
	OutcomeNone Outcome = iota

	// OutcomeSessionEstablished el flujo terminó y hay que publicar la sesión.
	OutcomeSessionEstablished
)
