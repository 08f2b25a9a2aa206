// Package login orquesta los flujos de inicio de sesión: guarda el estado de cada flujo,
// llama a los servicios de identidad y publica la sesión establecida en el bus de eventos.
package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/auth"
	"github.com/jhoicas/portal-beneficiarios/internal/application/authevents"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/domain"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	domainlogin "github.com/jhoicas/portal-beneficiarios/internal/domain/login"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

// ErrFlowNotFound el flujo no existe o venció.
var ErrFlowNotFound = errors.New("flujo de inicio de sesión no encontrado")

// Identity búsqueda por identidad nacional y verificación OTP.
type Identity interface {
	LookupNationalID(ctx context.Context, nationalID string, role domainlogin.Role) (int64, error)
	VerifyOTP(ctx context.Context, nationalID string, sessionID int64, code string) (*entity.User, error)
}

// CredentialChecker validación de correo y contraseña del administrador.
type CredentialChecker interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// Registrar alta de nuevos beneficiarios.
type Registrar interface {
	Register(ctx context.Context, in dto.RegistrationRequest) (*entity.User, error)
}

// Issuer emisión de la sesión al terminar el flujo.
type Issuer interface {
	Issue(acc domainlogin.Account) (*dto.SessionDTO, error)
}

// Deps dependencias de FlowService.
type Deps struct {
	Identity    Identity
	Credentials CredentialChecker
	Registrar   Registrar
	Issuer      Issuer
	Bus         *authevents.Bus
	Store       *Store
	Guard       *Guard
	Logger      *logger.Logger
}

// FlowService casos de uso del asistente de inicio de sesión.
type FlowService struct {
	identity    Identity
	credentials CredentialChecker
	registrar   Registrar
	issuer      Issuer
	bus         *authevents.Bus
	store       *Store
	guard       *Guard
	log         *logger.Logger
}

// NewFlowService construye el servicio.
func NewFlowService(d Deps) *FlowService {
	if d.Guard == nil {
		d.Guard = NewGuard()
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	return &FlowService{
		identity:    d.Identity,
		credentials: d.Credentials,
		registrar:   d.Registrar,
		issuer:      d.Issuer,
		bus:         d.Bus,
		store:       d.Store,
		guard:       d.Guard,
		log:         d.Logger,
	}
}

// Start abre un flujo nuevo en selection.
func (s *FlowService) Start() *dto.FlowResponse {
	id, st := s.store.Create()
	return toFlowResponse(id, st, nil)
}

// Get devuelve el estado actual del flujo.
func (s *FlowService) Get(flowID string) (*dto.FlowResponse, error) {
	st, ok := s.store.Get(flowID)
	if !ok {
		return nil, ErrFlowNotFound
	}
	return toFlowResponse(flowID, st, nil), nil
}

// SelectRole aplica la elección de la pantalla de selección.
func (s *FlowService) SelectRole(flowID, role string) (*dto.FlowResponse, error) {
	return s.dispatch(flowID, domainlogin.PickRole{Role: domainlogin.Role(role)})
}

// Back vuelve al paso anterior.
func (s *FlowService) Back(flowID string) (*dto.FlowResponse, error) {
	return s.dispatch(flowID, domainlogin.Back{})
}

// Complete confirma la pantalla de éxito del registro y establece la sesión.
func (s *FlowService) Complete(flowID string) (*dto.FlowResponse, error) {
	return s.dispatch(flowID, domainlogin.Complete{})
}

// SubmitNationalID busca la identidad y, si existe, avanza a otp con la sesión devuelta.
func (s *FlowService) SubmitNationalID(ctx context.Context, flowID, nationalID string) (*dto.FlowResponse, error) {
	return s.call(flowID, domainlogin.StepNationalID, domainlogin.Begin{NationalID: nationalID},
		func(st domainlogin.State) (domainlogin.Event, error) {
			id, err := s.identity.LookupNationalID(ctx, st.NationalID, st.UserType)
			if err != nil {
				return nil, err
			}
			return domainlogin.LookupSucceeded{Call: st.Call, SessionID: id}, nil
		})
}

// SubmitOTP verifica el código contra la sesión del flujo.
func (s *FlowService) SubmitOTP(ctx context.Context, flowID, code string) (*dto.FlowResponse, error) {
	return s.call(flowID, domainlogin.StepOTP, domainlogin.Begin{OTP: code},
		func(st domainlogin.State) (domainlogin.Event, error) {
			if st.SessionID == nil {
				return nil, domain.ErrSessionNotFound
			}
			user, err := s.identity.VerifyOTP(ctx, st.NationalID, *st.SessionID, st.OTP)
			if err != nil {
				return nil, err
			}
			return domainlogin.VerifySucceeded{Call: st.Call, Account: auth.ToAccount(user)}, nil
		})
}

// AdminLogin valida las credenciales del administrador.
func (s *FlowService) AdminLogin(ctx context.Context, flowID, email, password string) (*dto.FlowResponse, error) {
	return s.call(flowID, domainlogin.StepAdminLogin, domainlogin.Begin{Email: email, Password: password},
		func(st domainlogin.State) (domainlogin.Event, error) {
			user, err := s.credentials.Authenticate(ctx, st.Email, st.Password)
			if err != nil {
				return nil, err
			}
			return domainlogin.CredentialsAccepted{Call: st.Call, Account: auth.ToAccount(user)}, nil
		})
}

// Register da de alta al beneficiario y pasa a success con la cuenta creada.
func (s *FlowService) Register(ctx context.Context, flowID string, in dto.RegistrationRequest) (*dto.FlowResponse, error) {
	return s.call(flowID, domainlogin.StepNewBeneficiary, domainlogin.Begin{NationalID: in.NationalID, Email: in.Email},
		func(st domainlogin.State) (domainlogin.Event, error) {
			user, err := s.registrar.Register(ctx, in)
			if err != nil {
				return nil, err
			}
			return domainlogin.RegistrationCompleted{Call: st.Call, Account: auth.ToAccount(user)}, nil
		})
}

// Subscribe abre una suscripción a los eventos del flujo. Si el flujo ya terminó y el
// evento terminal no alcanzó a llegar al canal, devuelve ErrFlowFinished sin suscripción.
func (s *FlowService) Subscribe(flowID string) (*authevents.Subscription, error) {
	if _, ok := s.store.Get(flowID); !ok {
		return nil, ErrFlowNotFound
	}
	sub := s.bus.Subscribe(flowID)
	// Se vuelve a leer después de suscribirse: un flujo que termina en medio publica en sub.
	st, ok := s.store.Get(flowID)
	if !ok {
		sub.Cancel()
		return nil, ErrFlowNotFound
	}
	if st.Finished && len(sub.C) == 0 {
		sub.Cancel()
		return nil, domainlogin.ErrFlowFinished
	}
	return sub, nil
}

// Purge borra los flujos vencidos y avisa a sus suscriptores. Lo usa el job de limpieza.
func (s *FlowService) Purge() int {
	ids := s.store.Purge()
	for _, id := range ids {
		s.bus.Publish(authevents.Event{Type: authevents.EventFlowExpired, FlowID: id})
	}
	return len(ids)
}

// call ejecuta una llamada asíncrona del paso want bajo el guard flowID/step:
// Begin marca isLoading, fn hace la llamada y su evento (o Failed) cierra la carga.
// fn recibe el estado tras Begin y debe devolver el evento con st.Call.
func (s *FlowService) call(
	flowID string,
	want domainlogin.Step,
	begin domainlogin.Begin,
	fn func(domainlogin.State) (domainlogin.Event, error),
) (*dto.FlowResponse, error) {
	if _, ok := s.store.Get(flowID); !ok {
		return nil, ErrFlowNotFound
	}
	release, ok := s.guard.TryAcquire(flowID + "/" + string(want))
	if !ok {
		return nil, domainlogin.ErrRequestInFlight
	}
	defer release()

	st, err := s.store.Update(flowID, func(cur domainlogin.State) (domainlogin.State, error) {
		if cur.Finished {
			return cur, domainlogin.ErrFlowFinished
		}
		if cur.Step != want {
			return cur, fmt.Errorf("%w: se esperaba %s y el flujo está en %s", domainlogin.ErrIllegalTransition, want, cur.Step)
		}
		next, _, err := domainlogin.Reduce(cur, begin)
		return next, err
	})
	if err != nil {
		return nil, err
	}

	ev, callErr := fn(st)
	if callErr != nil {
		key := failureKey(want, callErr)
		if key == i18n.KeyIdentityUnavailable || key == i18n.KeyRegistrationFailed {
			s.log.Error().Err(callErr).Str("flow_id", flowID).Str("step", string(want)).Msg("falló la llamada del paso")
		} else {
			s.log.Debug().Err(callErr).Str("flow_id", flowID).Str("step", string(want)).Msg("paso rechazado")
		}
		ev = domainlogin.Failed{Call: st.Call, Key: string(key)}
	}
	res, err := s.dispatch(flowID, ev)
	if errors.Is(err, domainlogin.ErrStaleCall) {
		s.log.Debug().Str("flow_id", flowID).Str("step", string(want)).Msg("resultado descartado: el flujo cambió durante la llamada")
	}
	return res, err
}

// dispatch aplica ev y, si el flujo termina, emite la sesión y la publica en el bus.
func (s *FlowService) dispatch(flowID string, ev domainlogin.Event) (*dto.FlowResponse, error) {
	var session *dto.SessionDTO
	st, err := s.store.Update(flowID, func(cur domainlogin.State) (domainlogin.State, error) {
		next, outcome, err := domainlogin.Reduce(cur, ev)
		if err != nil {
			return cur, err
		}
		if outcome == domainlogin.OutcomeSessionEstablished {
			// La sesión se emite antes de guardar: si falla, el flujo no queda terminado.
			sess, err := s.issuer.Issue(*next.User)
			if err != nil {
				return cur, err
			}
			session = sess
			next.Password = ""
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	if session != nil {
		n := s.bus.Publish(authevents.Event{Type: authevents.EventSessionEstablished, FlowID: flowID, Session: session})
		s.log.Info().Str("flow_id", flowID).Str("user_id", session.User.ID).Int("subscribers", n).Msg("sesión establecida")
	}
	return toFlowResponse(flowID, st, session), nil
}

// failureKey traduce el error de una llamada en la clave de mensaje del paso.
func failureKey(step domainlogin.Step, err error) i18n.Key {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		switch step {
		case domainlogin.StepOTP:
			return i18n.KeyOTPRequired
		case domainlogin.StepAdminLogin:
			return i18n.KeyInvalidCredentials
		default:
			return i18n.KeyNationalIDRequired
		}
	case errors.Is(err, domain.ErrAccountInactive) && step == domainlogin.StepAdminLogin:
		return i18n.KeyAccountInactive
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrAccountInactive):
		return i18n.KeyNationalIDNotFound
	case errors.Is(err, domain.ErrSessionNotFound):
		return i18n.KeySessionMissing
	case errors.Is(err, domain.ErrOTPMismatch):
		return i18n.KeyOTPInvalid
	case errors.Is(err, domain.ErrOTPExpired):
		return i18n.KeyOTPExpired
	case errors.Is(err, domain.ErrOTPAttempts):
		return i18n.KeyOTPAttemptsExceeded
	case errors.Is(err, domain.ErrUnauthorized):
		return i18n.KeyInvalidCredentials
	case errors.Is(err, domain.ErrValidation):
		return i18n.KeyRegistrationInvalid
	case errors.Is(err, domain.ErrNationalIDExists):
		return i18n.KeyNationalIDExists
	case step == domainlogin.StepNewBeneficiary:
		return i18n.KeyRegistrationFailed
	}
	return i18n.KeyIdentityUnavailable
}

func toFlowResponse(id string, st domainlogin.State, session *dto.SessionDTO) *dto.FlowResponse {
	out := dto.FlowStateDTO{
		Step:       string(st.Step),
		SessionID:  st.SessionID,
		NationalID: st.NationalID,
		OTP:        st.OTP,
		Email:      st.Email,
		IsLoading:  st.IsLoading,
		Finished:   st.Finished,
	}
	if st.UserType != "" {
		ut := string(st.UserType)
		out.UserType = &ut
	}
	if st.Error != "" {
		e := st.Error
		out.Error = &e
	}
	if st.User != nil {
		acc := auth.ToAccountDTO(*st.User)
		out.User = &acc
	}
	return &dto.FlowResponse{FlowID: id, State: out, Session: session}
}
