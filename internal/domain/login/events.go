package login

// Event entrada del reductor. El conjunto es cerrado.
type Event interface {
	isEvent()
}

// PickRole elección en la pantalla de selección.
type PickRole struct{ Role Role }

// Begin marca el inicio de una llamada asíncrona y guarda lo que escribió el usuario.
// Solo se copian los campos que corresponden al paso activo.
type Begin struct {
	NationalID string
	OTP        string
	Email      string
	Password   string
}

// Los resultados de una llamada llevan en Call el número que dejó Begin en State.Call.

// LookupSucceeded la búsqueda por identidad devolvió una sesión de verificación.
type LookupSucceeded struct {
	Call      uint64
	SessionID int64
}

// VerifySucceeded el código OTP fue aceptado.
type VerifySucceeded struct {
	Call    uint64
	Account Account
}

// CredentialsAccepted el correo y la contraseña del administrador son válidos.
type CredentialsAccepted struct {
	Call    uint64
	Account Account
}

// RegistrationCompleted el nuevo beneficiario quedó registrado.
type RegistrationCompleted struct {
	Call    uint64
	Account Account
}

// Complete confirma la pantalla de éxito.
type Complete struct{}

// Back vuelve al paso anterior.
type Back struct{}

// Failed la llamada del paso activo falló; Key es la clave del mensaje.
type Failed struct {
	Call uint64
	Key  string
}

func (PickRole) isEvent()              {}
func (Begin) isEvent()                 {}
func (LookupSucceeded) isEvent()       {}
func (VerifySucceeded) isEvent()       {}
func (CredentialsAccepted) isEvent()   {}
func (RegistrationCompleted) isEvent() {}
func (Complete) isEvent()              {}
func (Back) isEvent()                  {}
func (Failed) isEvent()                {}
