package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/auth"
	"github.com/jhoicas/portal-beneficiarios/internal/application/authevents"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/application/login"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/domain/entity"
	apphttp "github.com/jhoicas/portal-beneficiarios/internal/interfaces/http"
	"github.com/jhoicas/portal-beneficiarios/internal/testutil"
)

const (
	adminID       = "adm-1"
	employeeID    = "emp-1"
	beneficiaryID = "ben-1"
)

type portal struct {
	app      *fiber.App
	bus      *authevents.Bus
	sender   *testutil.CapturingSender
	services *testutil.Services
	stats    *testutil.Stats
}

func newPortal(t *testing.T, authRateLimit int) *portal {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := testutil.NewUsers(
		&entity.User{ID: adminID, FullName: "مدير", Email: "admin@portal.sa", PasswordHash: string(hash), Role: entity.RoleAdmin, IsActive: true},
		&entity.User{ID: employeeID, FullName: "خالد", NationalID: "1234567890", Role: entity.RoleEmployee, IsActive: true},
		&entity.User{ID: beneficiaryID, FullName: "سارة", NationalID: "2234567890", Role: entity.RoleBeneficiary, IsActive: true},
	)
	members := testutil.NewMembers(&entity.Member{
		ID: "m-1", UserID: beneficiaryID, FullName: "سارة", NationalID: "2234567890",
		Gender: "female", RegistrationStatus: entity.RegistrationApproved,
	})
	p := &portal{
		bus:    authevents.NewBus(4, nil),
		sender: &testutil.CapturingSender{},
		services: testutil.NewServices(
			&entity.Service{ID: "svc-1", Name: "إعانة شهرية", IsActive: true},
			&entity.Service{ID: "svc-2", Name: "دعم تعليمي", IsActive: true},
		),
		stats: &testutil.Stats{Users: 10, Members: 7, Pending: 3, Branches: 2, Services: 4},
	}
	p.services.Requests["svc-1"] = 3

	identity := auth.NewIdentityService(users, testutil.NewOTPSessions(), p.sender,
		auth.OTPConfig{Length: 6, TTL: 5 * time.Minute, MaxAttempts: 5, HashCost: bcrypt.MinCost}, nil)
	flows := login.NewFlowService(login.Deps{
		Identity:    identity,
		Credentials: auth.NewAdminAuthenticator(users),
		Registrar:   auth.NewBeneficiaryRegistrar(users, members, nil),
		Issuer:      auth.NewSessionIssuer(auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		Bus:         p.bus,
		Store:       login.NewStore(30 * time.Minute),
	})

	p.app = fiber.New()
	apphttp.Router(p.app, apphttp.RouterDeps{
		Flows:         flows,
		DashboardUC:   analytics.NewDashboardUseCase(users, p.stats, nil, nil),
		ServiceUC:     usecase.NewServiceUseCase(p.services),
		BranchUC:      usecase.NewBranchUseCase(testutil.NewBranches(), users),
		UserUC:        usecase.NewUserUseCase(users),
		ProfileUC:     usecase.NewProfileUseCase(members),
		JWTSecret:     testJWTSecret,
		AuthRateLimit: authRateLimit,
		Heartbeat:     time.Second,
	})
	return p
}

type envelope struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (p *portal) call(t *testing.T, method, path, token string, body interface{}, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeFlow(t *testing.T, raw []byte) (envelope, dto.FlowResponse) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	var flow dto.FlowResponse
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, &flow))
	}
	return env, flow
}

func (p *portal) startFlow(t *testing.T) string {
	t.Helper()
	resp, raw := p.call(t, http.MethodPost, "/api/auth/flows", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_, flow := decodeFlow(t, raw)
	require.NotEmpty(t, flow.FlowID)
	assert.Equal(t, "selection", flow.State.Step)
	return flow.FlowID
}

func (p *portal) toOTP(t *testing.T, flowID string) {
	t.Helper()
	resp, _ := p.call(t, http.MethodPost, "/api/auth/flows/"+flowID+"/select", "", dto.SelectRoleRequest{Role: "employee"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, raw := p.call(t, http.MethodPost, "/api/auth/flows/"+flowID+"/national-id", "", dto.NationalIDRequest{NationalID: "1234567890"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, flow := decodeFlow(t, raw)
	require.Equal(t, "otp", flow.State.Step)
	require.NotNil(t, flow.State.SessionID)
}

func TestFlowRoutes_EscenarioEmpleado(t *testing.T) {
	p := newPortal(t, 0)
	id := p.startFlow(t)
	p.toOTP(t, id)

	wrong := "000000"
	if p.sender.Code() == wrong {
		wrong = "111111"
	}
	resp, raw := p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/otp", "", dto.OTPRequest{OTP: wrong}, "Accept-Language", "en")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "un paso rechazado no es un error HTTP")
	env, flow := decodeFlow(t, raw)
	assert.False(t, env.Success)
	assert.Equal(t, apphttp.CodeStepFailed, env.Code)
	assert.Equal(t, "Invalid verification code", env.Error)
	assert.Equal(t, "otp", flow.State.Step)
	assert.Equal(t, "Invalid verification code", flow.State.ErrorMessage)

	resp, raw = p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/otp", "", dto.OTPRequest{OTP: p.sender.Code()})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env, flow = decodeFlow(t, raw)
	assert.True(t, env.Success)
	assert.Equal(t, "تم تسجيل الدخول بنجاح", env.Message)
	require.NotNil(t, flow.Session)
	assert.NotEmpty(t, flow.Session.Token)
	assert.Equal(t, employeeID, flow.Session.User.ID)
	assert.True(t, flow.State.Finished)

	resp, raw = p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/back", "", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeFlowFinished)
}

func TestFlowRoutes_AdminLogin(t *testing.T) {
	p := newPortal(t, 0)
	id := p.startFlow(t)

	resp, _ := p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/select", "", dto.SelectRoleRequest{Role: "admin"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/admin-login", "", dto.AdminLoginRequest{Email: "admin@portal.sa", Password: "mal"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env, _ := decodeFlow(t, raw)
	assert.False(t, env.Success)
	assert.NotContains(t, string(raw), `"password"`, "la contraseña no vuelve en la respuesta")

	_, raw = p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/admin-login", "", dto.AdminLoginRequest{Email: "admin@portal.sa", Password: "secreto123"})
	env, flow := decodeFlow(t, raw)
	assert.True(t, env.Success)
	require.NotNil(t, flow.Session)
	assert.Equal(t, entity.RoleAdmin, flow.Session.User.Role)
	assert.NotContains(t, string(raw), "secreto123")
}

func TestFlowRoutes_Errores(t *testing.T) {
	p := newPortal(t, 0)

	resp, raw := p.call(t, http.MethodGet, "/api/auth/flows/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeFlowNotFound)

	id := p.startFlow(t)
	resp, raw = p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/otp", "", dto.OTPRequest{OTP: "123456"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeIllegalTransition)

	resp, raw = p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/select", "", dto.SelectRoleRequest{Role: "guest"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeUnknownRole)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/flows/"+id+"/select", strings.NewReader("{roto"))
	req.Header.Set("Content-Type", "application/json")
	r, err := p.app.Test(req, -1)
	require.NoError(t, err)
	defer r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestFlowRoutes_LimiteDeIntentos(t *testing.T) {
	p := newPortal(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := p.call(t, http.MethodPost, "/api/auth/flows/x/national-id", "", dto.NationalIDRequest{NationalID: "1"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	resp, raw := p.call(t, http.MethodPost, "/api/auth/flows/x/national-id", "", dto.NationalIDRequest{NationalID: "1"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeTooManyRequests)
}

func TestFlowEvents_SesionEstablecida(t *testing.T) {
	p := newPortal(t, 0)
	id := p.startFlow(t)
	p.toOTP(t, id)

	type result struct {
		resp *http.Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/flows/"+id+"/events", nil)
		resp, err := p.app.Test(req, -1)
		done <- result{resp, err}
	}()

	require.Eventually(t, func() bool { return p.bus.Subscribers(id) == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, _ := p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/otp", "", dto.OTPRequest{OTP: p.sender.Code()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res result
	select {
	case res = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("el stream SSE no terminó")
	}
	require.NoError(t, res.err)
	defer res.resp.Body.Close()
	assert.Equal(t, "text/event-stream", res.resp.Header.Get("Content-Type"))

	var events []string
	var data string
	sc := bufio.NewScanner(res.resp.Body)
	for sc.Scan() {
		line := sc.Text()
		if name, found := strings.CutPrefix(line, "event: "); found {
			events = append(events, name)
		}
		if d, found := strings.CutPrefix(line, "data: "); found {
			data = d
		}
	}
	assert.Equal(t, []string{"connected", authevents.EventSessionEstablished}, events)

	var ev dto.SessionEvent
	require.NoError(t, json.Unmarshal([]byte(data), &ev))
	assert.Equal(t, id, ev.FlowID)
	assert.NotEmpty(t, ev.Session.Token)
	assert.Equal(t, employeeID, ev.Session.User.ID)

	assert.Eventually(t, func() bool { return p.bus.Subscribers(id) == 0 }, time.Second, 10*time.Millisecond)
}

func TestFlowEvents_FlujoYaTerminado(t *testing.T) {
	p := newPortal(t, 0)
	id := p.startFlow(t)
	p.toOTP(t, id)
	resp, _ := p.call(t, http.MethodPost, "/api/auth/flows/"+id+"/otp", "", dto.OTPRequest{OTP: p.sender.Code()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	done := make(chan []byte, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/flows/"+id+"/events", nil)
		resp, err := p.app.Test(req, -1)
		if err != nil {
			done <- nil
			return
		}
		defer resp.Body.Close()
		raw, _ := io.ReadAll(resp.Body)
		done <- raw
	}()

	var raw []byte
	select {
	case raw = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("el stream de un flujo terminado no se cerró")
	}
	require.NotNil(t, raw)
	assert.Contains(t, string(raw), "event: connected\n")
	assert.Contains(t, string(raw), "event: "+authevents.EventFlowFinished+"\n")
	assert.NotContains(t, string(raw), "heartbeat")
	assert.NotContains(t, string(raw), "token", "el token no se reenvía a nuevos suscriptores")
	assert.Zero(t, p.bus.Subscribers(id))
}

func TestAdminStats(t *testing.T) {
	p := newPortal(t, 0)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, adminID, "", entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdminStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Stats)
	assert.Equal(t, 10, out.Stats.TotalUsers)
	assert.Equal(t, 3, out.Stats.PendingRequests)
	assert.Equal(t, dto.HealthGood, out.Stats.SystemHealth)
	assert.False(t, out.Degraded)
}

func TestAdminStats_SietePendientesEsWarning(t *testing.T) {
	p := newPortal(t, 0)
	p.stats.Pending = 7

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, adminID, "", entity.RoleAdmin), dto.AdminStatsRequest{AdminID: adminID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdminStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	require.NotNil(t, out.Stats)
	assert.Equal(t, 7, out.Stats.PendingRequests)
	assert.Equal(t, dto.HealthWarning, out.Stats.SystemHealth)
}

func TestAdminStats_NoAdministrador(t *testing.T) {
	p := newPortal(t, 0)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, employeeID, "", entity.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var out dto.AdminStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Success)
	assert.Nil(t, out.Stats)
	assert.NotEmpty(t, out.Error)

	// adminId explícito de otro usuario tampoco pasa
	resp, _ = p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, employeeID, "", entity.RoleEmployee), dto.AdminStatsRequest{AdminID: beneficiaryID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, p.stats.Calls())
}

func TestAdminStats_AdminIDAjenoAlToken(t *testing.T) {
	p := newPortal(t, 0)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, beneficiaryID, "", entity.RoleBeneficiary), dto.AdminStatsRequest{AdminID: adminID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var out dto.AdminStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Success)
	assert.Nil(t, out.Stats)
	assert.Zero(t, p.stats.Calls(), "no se consulta ningún conteo")

	// Con token de empleado y el id del administrador, igual.
	resp, _ = p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, employeeID, "", entity.RoleEmployee), dto.AdminStatsRequest{AdminID: adminID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, p.stats.Calls())
}

func TestAdminStats_Degradado(t *testing.T) {
	p := newPortal(t, 0)
	p.stats.FailOn = "members"
	p.stats.Err = errors.New("timeout")

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-stats", tokenFor(t, adminID, "", entity.RoleAdmin), dto.AdminStatsRequest{AdminID: adminID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdminStatsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.True(t, out.Success)
	assert.True(t, out.Degraded)
	require.NotNil(t, out.Stats)
	assert.Equal(t, dto.ZeroStats(dto.HealthWarning), *out.Stats)
}

func TestAdminServices_DeleteConSolicitudes(t *testing.T) {
	p := newPortal(t, 0)
	admin := tokenFor(t, adminID, "", entity.RoleAdmin)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: dto.ActionCheckHasRequests, ServiceID: "svc-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var check dto.HasRequestsResponse
	require.NoError(t, json.Unmarshal(raw, &check))
	assert.True(t, check.HasRequests)
	assert.Equal(t, 3, check.RequestCount)

	resp, raw = p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: dto.ActionDelete, ServiceID: "svc-1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var del dto.HasRequestsResponse
	require.NoError(t, json.Unmarshal(raw, &del))
	assert.False(t, del.Success)
	assert.True(t, del.HasRequests)
	assert.Equal(t, 3, del.RequestCount)
	assert.Equal(t, apphttp.CodeHasRequests, del.Code)
	assert.True(t, p.services.Exists("svc-1"))

	resp, raw = p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: dto.ActionDelete, ServiceID: "svc-2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, p.services.Exists("svc-2"))
}

func TestAdminServices_Validaciones(t *testing.T) {
	p := newPortal(t, 0)
	admin := tokenFor(t, adminID, "", entity.RoleAdmin)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: "archive"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeUnknownAction)

	resp, raw = p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: dto.ActionDelete})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeValidation)

	resp, _ = p.call(t, http.MethodPost, "/api/functions/admin-services", admin, dto.FunctionRequest{Action: dto.ActionDelete, ServiceID: "svc-x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = p.call(t, http.MethodPost, "/api/functions/admin-services", tokenFor(t, beneficiaryID, "", entity.RoleBeneficiary), dto.FunctionRequest{Action: dto.ActionList})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = p.call(t, http.MethodPost, "/api/functions/admin-services", "", dto.FunctionRequest{Action: dto.ActionList})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminServices_List(t *testing.T) {
	p := newPortal(t, 0)

	resp, raw := p.call(t, http.MethodPost, "/api/functions/admin-services", tokenFor(t, adminID, "", entity.RoleAdmin), dto.FunctionRequest{Action: dto.ActionList})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.True(t, env.Success)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
}

func TestProfile(t *testing.T) {
	p := newPortal(t, 0)
	ben := tokenFor(t, beneficiaryID, "", entity.RoleBeneficiary)

	resp, raw := p.call(t, http.MethodGet, "/api/beneficiary/profile", ben, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "سارة", profile.Personal.FullName)
	assert.Equal(t, entity.RegistrationApproved, profile.RegistrationStatus)

	resp, raw = p.call(t, http.MethodPut, "/api/beneficiary/profile/personal", ben,
		dto.PersonalSection{FullName: "سارة أحمد", Gender: "female", BirthDate: "1990-05-01"}, "Accept-Language", "en")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, "Changes saved", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "سارة أحمد", profile.Personal.FullName)
	require.NotNil(t, profile.Age)
}

func TestProfile_Errores(t *testing.T) {
	p := newPortal(t, 0)
	ben := tokenFor(t, beneficiaryID, "", entity.RoleBeneficiary)

	resp, raw := p.call(t, http.MethodPut, "/api/beneficiary/profile/documents", ben, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), apphttp.CodeValidation)

	resp, _ = p.call(t, http.MethodPut, "/api/beneficiary/profile/personal", ben, dto.PersonalSection{FullName: "سارة", Gender: "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = p.call(t, http.MethodGet, "/api/beneficiary/profile", tokenFor(t, "otro", "", entity.RoleBeneficiary), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = p.call(t, http.MethodGet, "/api/beneficiary/profile", tokenFor(t, employeeID, "", entity.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
