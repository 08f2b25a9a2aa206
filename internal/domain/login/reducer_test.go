package login_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-beneficiarios/internal/domain/login"
)

// apply aplica events en orden. Los resultados sin Call se asignan a la llamada en curso.
func apply(t *testing.T, s login.State, events ...login.Event) login.State {
	t.Helper()
	for _, ev := range events {
		var err error
		s, _, err = login.Reduce(s, current(s, ev))
		require.NoError(t, err, "evento %T", ev)
	}
	return s
}

func current(s login.State, ev login.Event) login.Event {
	switch e := ev.(type) {
	case login.LookupSucceeded:
		if e.Call == 0 {
			e.Call = s.Call
		}
		return e
	case login.VerifySucceeded:
		if e.Call == 0 {
			e.Call = s.Call
		}
		return e
	case login.CredentialsAccepted:
		if e.Call == 0 {
			e.Call = s.Call
		}
		return e
	case login.RegistrationCompleted:
		if e.Call == 0 {
			e.Call = s.Call
		}
		return e
	case login.Failed:
		if e.Call == 0 {
			e.Call = s.Call
		}
		return e
	}
	return ev
}

func TestReduce_EscenarioEmpleado(t *testing.T) {
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleEmployee})
	assert.Equal(t, login.StepNationalID, s.Step)
	assert.Equal(t, login.RoleEmployee, s.UserType)

	s = apply(t, s, login.Begin{NationalID: "1234567890"})
	assert.True(t, s.IsLoading)
	s = apply(t, s, login.LookupSucceeded{SessionID: 42})
	assert.Equal(t, login.StepOTP, s.Step)
	require.NotNil(t, s.SessionID)
	assert.Equal(t, int64(42), *s.SessionID)
	assert.False(t, s.IsLoading)

	s = apply(t, s, login.Begin{OTP: "000000"}, login.Failed{Key: "auth.otp_invalid"})
	assert.Equal(t, login.StepOTP, s.Step, "un OTP erróneo no cambia de paso")
	assert.Equal(t, "auth.otp_invalid", s.Error)
	require.NotNil(t, s.SessionID)
	assert.Equal(t, int64(42), *s.SessionID)

	s = apply(t, s, login.Back{})
	assert.Equal(t, login.StepNationalID, s.Step)
	assert.Nil(t, s.SessionID)
	assert.Empty(t, s.OTP)
	assert.Empty(t, s.Error)
	assert.Equal(t, "1234567890", s.NationalID)
}

func TestReduce_VolverANationalIDLimpiaSesion(t *testing.T) {
	// Cualquier secuencia de ida y vuelta que aterrice en national_id deja sessionId y otp vacíos.
	sequences := [][]login.Event{
		{login.PickRole{Role: login.RoleBeneficiary}},
		{login.PickRole{Role: login.RoleBeneficiary}, login.Begin{NationalID: "1"}, login.LookupSucceeded{SessionID: 1}, login.Back{}},
		{login.PickRole{Role: login.RoleEmployee}, login.Begin{NationalID: "1"}, login.LookupSucceeded{SessionID: 7},
			login.Begin{OTP: "123456"}, login.Back{}, login.Back{}, login.PickRole{Role: login.RoleEmployee}},
		{login.PickRole{Role: login.RoleEmployee}, login.Begin{NationalID: "1"}, login.LookupSucceeded{SessionID: 7},
			login.Back{}, login.Begin{NationalID: "2"}, login.LookupSucceeded{SessionID: 8}, login.Back{}},
	}
	for i, seq := range sequences {
		s := apply(t, login.Initial(), seq...)
		require.Equal(t, login.StepNationalID, s.Step, "secuencia %d", i)
		assert.Nil(t, s.SessionID, "secuencia %d", i)
		assert.Empty(t, s.OTP, "secuencia %d", i)
	}
}

func TestReduce_SeleccionAdmin(t *testing.T) {
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleAdmin})
	assert.Equal(t, login.StepAdminLogin, s.Step)
	assert.Equal(t, login.RoleAdmin, s.UserType)

	s = apply(t, s, login.Begin{Email: "admin@portal.sa", Password: "secreto"})
	next, out, err := login.Reduce(s, login.CredentialsAccepted{Call: s.Call, Account: login.Account{ID: "u1", Role: "admin"}})
	require.NoError(t, err)
	assert.Equal(t, login.OutcomeSessionEstablished, out)
	assert.True(t, next.Finished)
	assert.Empty(t, next.Password)

	s = apply(t, login.Initial(), login.PickRole{Role: login.RoleAdmin}, login.Begin{Email: "a@b.c", Password: "x"}, login.Back{})
	assert.Equal(t, login.StepSelection, s.Step)
	assert.Empty(t, s.UserType)
	assert.Empty(t, s.Email)
	assert.Empty(t, s.Password)
	assert.False(t, s.IsLoading)
}

func TestReduce_RegistroIdaYVuelta(t *testing.T) {
	user := login.Account{ID: "nuevo", FullName: "سارة", NationalID: "1098765432", Role: "beneficiary"}

	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleNewBeneficiary})
	assert.Equal(t, login.StepNewBeneficiary, s.Step)
	assert.Empty(t, s.UserType)

	s = apply(t, s, login.Begin{NationalID: user.NationalID}, login.RegistrationCompleted{Account: user})
	assert.Equal(t, login.StepSuccess, s.Step)
	require.NotNil(t, s.User)
	assert.Equal(t, user, *s.User)

	terminal := 0
	s, out, err := login.Reduce(s, login.Complete{})
	require.NoError(t, err)
	if out == login.OutcomeSessionEstablished {
		terminal++
	}
	_, out, err = login.Reduce(s, login.Complete{})
	assert.ErrorIs(t, err, login.ErrFlowFinished)
	if out == login.OutcomeSessionEstablished {
		terminal++
	}
	assert.Equal(t, 1, terminal)
}

func TestReduce_TransicionesIlegales(t *testing.T) {
	cases := []struct {
		name string
		from login.State
		ev   login.Event
	}{
		{"otp sin sesión desde selección", login.Initial(), login.LookupSucceeded{SessionID: 1}},
		{"lookup sin sessionId", login.State{Step: login.StepNationalID, UserType: login.RoleEmployee}, login.LookupSucceeded{}},
		{"lookup con rol admin", login.State{Step: login.StepNationalID, UserType: login.RoleAdmin}, login.LookupSucceeded{SessionID: 3}},
		{"verify en national_id", login.State{Step: login.StepNationalID, UserType: login.RoleEmployee}, login.VerifySucceeded{}},
		{"verify sin sessionId", login.State{Step: login.StepOTP, UserType: login.RoleEmployee}, login.VerifySucceeded{}},
		{"credenciales sin rol admin", login.State{Step: login.StepAdminLogin}, login.CredentialsAccepted{}},
		{"back en selección", login.Initial(), login.Back{}},
		{"back en success", login.State{Step: login.StepSuccess, User: &login.Account{}}, login.Back{}},
		{"complete fuera de success", login.State{Step: login.StepOTP}, login.Complete{}},
		{"pick fuera de selección", login.State{Step: login.StepOTP}, login.PickRole{Role: login.RoleAdmin}},
		{"begin en selección", login.Initial(), login.Begin{}},
		{"failed en selección", login.Initial(), login.Failed{Key: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, out, err := login.Reduce(tc.from, tc.ev)
			assert.ErrorIs(t, err, login.ErrIllegalTransition)
			assert.Equal(t, login.OutcomeNone, out)
			assert.Equal(t, tc.from, next, "el estado no cambia")
		})
	}
}

func TestReduce_RolDesconocido(t *testing.T) {
	_, _, err := login.Reduce(login.Initial(), login.PickRole{Role: "root"})
	assert.ErrorIs(t, err, login.ErrUnknownRole)
}

func TestReduce_BeginDobleEnVuelo(t *testing.T) {
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleBeneficiary}, login.Begin{NationalID: "1"})
	_, _, err := login.Reduce(s, login.Begin{NationalID: "1"})
	assert.ErrorIs(t, err, login.ErrRequestInFlight)
}

func TestReduce_ExitoLimpiaError(t *testing.T) {
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleBeneficiary},
		login.Begin{NationalID: "1"}, login.Failed{Key: "auth.national_id_not_found"})
	assert.Equal(t, "auth.national_id_not_found", s.Error)
	assert.False(t, s.IsLoading)

	s = apply(t, s, login.Begin{NationalID: "2"}, login.LookupSucceeded{SessionID: 9})
	assert.Empty(t, s.Error)
}

func TestReduce_ResultadoDeLlamadaAbandonada(t *testing.T) {
	// Búsqueda como beneficiario, vuelta atrás y nueva elección mientras la búsqueda sigue en curso.
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleBeneficiary}, login.Begin{NationalID: "1098765432"})
	old := s.Call
	s = apply(t, s, login.Back{}, login.PickRole{Role: login.RoleEmployee})

	late := []login.Event{
		login.LookupSucceeded{Call: old, SessionID: 7},
		login.Failed{Call: old, Key: "auth.national_id_not_found"},
	}
	for _, ev := range late {
		next, out, err := login.Reduce(s, ev)
		assert.ErrorIs(t, err, login.ErrStaleCall, "%T", ev)
		assert.ErrorIs(t, err, login.ErrIllegalTransition, "%T", ev)
		assert.Equal(t, login.OutcomeNone, out)
		assert.Equal(t, s, next)
	}
	assert.Equal(t, login.StepNationalID, s.Step)
	assert.Equal(t, login.RoleEmployee, s.UserType)
	assert.Nil(t, s.SessionID)
	assert.Empty(t, s.Error)

	// La llamada nueva sí se acepta, y la vieja tampoco sirve en el mismo paso.
	s = apply(t, s, login.Begin{NationalID: "1234567890"})
	_, _, err := login.Reduce(s, login.LookupSucceeded{Call: old, SessionID: 7})
	assert.ErrorIs(t, err, login.ErrStaleCall)
	s = apply(t, s, login.LookupSucceeded{Call: s.Call, SessionID: 8})
	assert.Equal(t, login.StepOTP, s.Step)
	assert.Equal(t, int64(8), *s.SessionID)
}

func TestReduce_ResultadoSinLlamadaEnCurso(t *testing.T) {
	s := apply(t, login.Initial(), login.PickRole{Role: login.RoleEmployee}, login.Begin{NationalID: "1"},
		login.LookupSucceeded{SessionID: 5}, login.Begin{OTP: "123456"})
	call := s.Call
	s = apply(t, s, login.Back{})

	_, _, err := login.Reduce(s, login.VerifySucceeded{Call: call, Account: login.Account{ID: "u1"}})
	assert.ErrorIs(t, err, login.ErrStaleCall, "un OTP verificado tras volver atrás no establece sesión")

	// Repetir el mismo resultado tampoco se acepta.
	s = apply(t, login.Initial(), login.PickRole{Role: login.RoleBeneficiary}, login.Begin{NationalID: "1"})
	ok := login.LookupSucceeded{Call: s.Call, SessionID: 3}
	s = apply(t, s, ok)
	_, _, err = login.Reduce(s, ok)
	assert.ErrorIs(t, err, login.ErrIllegalTransition)
}
