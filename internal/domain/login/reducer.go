package login

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("transición no permitida")
	ErrFlowFinished      = errors.New("el flujo ya terminó")
	ErrRequestInFlight   = errors.New("hay una solicitud en curso")
	ErrUnknownRole       = errors.New("rol desconocido")

	// ErrStaleCall el resultado llegó después de que el usuario cambió de paso o de rol.
	ErrStaleCall = fmt.Errorf("%w: resultado de una llamada anterior", ErrIllegalTransition)
)

// Reduce aplica ev sobre s. Si la transición no está permitida devuelve s sin cambios
// y un error que envuelve ErrIllegalTransition (o ErrFlowFinished si el flujo terminó).
func Reduce(s State, ev Event) (State, Outcome, error) {
	if s.Finished {
		return s, OutcomeNone, ErrFlowFinished
	}

	switch e := ev.(type) {
	case PickRole:
		if s.Step != StepSelection {
			return illegal(s, ev)
		}
		next := Initial()
		next.Call = s.Call + 1
		switch {
		case e.Role.UsesOTP():
			next.Step = StepNationalID
			next.UserType = e.Role
		case e.Role == RoleAdmin:
			next.Step = StepAdminLogin
			next.UserType = RoleAdmin
		case e.Role == RoleNewBeneficiary:
			next.Step = StepNewBeneficiary
		default:
			return s, OutcomeNone, fmt.Errorf("%w: %q", ErrUnknownRole, e.Role)
		}
		return next, OutcomeNone, nil

	case Begin:
		if s.IsLoading {
			return s, OutcomeNone, ErrRequestInFlight
		}
		switch s.Step {
		case StepNationalID:
			s.NationalID = e.NationalID
		case StepOTP:
			s.OTP = e.OTP
		case StepAdminLogin:
			s.Email = e.Email
			s.Password = e.Password
		case StepNewBeneficiary:
			s.NationalID = e.NationalID
			s.Email = e.Email
		default:
			return illegal(s, ev)
		}
		s.IsLoading = true
		s.Call++
		return s, OutcomeNone, nil

	case LookupSucceeded:
		if !pending(s, e.Call) {
			return stale(s, ev)
		}
		if s.Step != StepNationalID || !s.UserType.UsesOTP() || e.SessionID <= 0 {
			return illegal(s, ev)
		}
		id := e.SessionID
		s.Step = StepOTP
		s.SessionID = &id
		s.OTP = ""
		return settled(s), OutcomeNone, nil

	case VerifySucceeded:
		if !pending(s, e.Call) {
			return stale(s, ev)
		}
		if s.Step != StepOTP || s.SessionID == nil {
			return illegal(s, ev)
		}
		acc := e.Account
		s.User = &acc
		s.Finished = true
		return settled(s), OutcomeSessionEstablished, nil

	case CredentialsAccepted:
		if !pending(s, e.Call) {
			return stale(s, ev)
		}
		if s.Step != StepAdminLogin || s.UserType != RoleAdmin {
			return illegal(s, ev)
		}
		acc := e.Account
		s.User = &acc
		s.Password = ""
		s.Finished = true
		return settled(s), OutcomeSessionEstablished, nil

	case RegistrationCompleted:
		if !pending(s, e.Call) {
			return stale(s, ev)
		}
		if s.Step != StepNewBeneficiary {
			return illegal(s, ev)
		}
		acc := e.Account
		s.Step = StepSuccess
		s.User = &acc
		return settled(s), OutcomeNone, nil

	case Complete:
		if s.Step != StepSuccess || s.User == nil {
			return illegal(s, ev)
		}
		s.Finished = true
		return s, OutcomeSessionEstablished, nil

	case Back:
		switch s.Step {
		case StepOTP:
			s.Step = StepNationalID
			s.OTP = ""
			s.SessionID = nil
			s.Call++
			return settled(s), OutcomeNone, nil
		case StepNationalID, StepAdminLogin, StepNewBeneficiary:
			next := Initial()
			next.Call = s.Call + 1
			return next, OutcomeNone, nil
		default:
			return illegal(s, ev)
		}

	case Failed:
		if !pending(s, e.Call) {
			return stale(s, ev)
		}
		switch s.Step {
		case StepNationalID, StepOTP, StepAdminLogin, StepNewBeneficiary:
		default:
			return illegal(s, ev)
		}
		s.IsLoading = false
		s.Error = e.Key
		return s, OutcomeNone, nil
	}

	return illegal(s, ev)
}

// pending indica si call es la llamada en curso de s.
func pending(s State, call uint64) bool {
	return s.IsLoading && call != 0 && call == s.Call
}

func stale(s State, ev Event) (State, Outcome, error) {
	return s, OutcomeNone, fmt.Errorf("%w: %T (llamada %d)", ErrStaleCall, ev, s.Call)
}

// settled cierra una llamada exitosa: sin carga y sin error pendiente.
func settled(s State) State {
	s.IsLoading = false
	s.Error = ""
	return s
}

func illegal(s State, ev Event) (State, Outcome, error) {
	return s, OutcomeNone, fmt.Errorf("%w: %T en %s", ErrIllegalTransition, ev, s.Step)
}
