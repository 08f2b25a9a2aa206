package portalclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/pkg/portalclient"
)

// stubServer responde cada función con handlers fijos y registra las acciones recibidas.
type stubServer struct {
	mu      sync.Mutex
	actions []string
	srv     *httptest.Server
}

func newStub(t *testing.T, handlers map[string]http.HandlerFunc) *stubServer {
	t.Helper()
	s := &stubServer{}
	mux := http.NewServeMux()
	for path, h := range handlers {
		h := h
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			var in dto.FunctionRequest
			_ = json.NewDecoder(r.Body).Decode(&in)
			s.mu.Lock()
			s.actions = append(s.actions, in.Action)
			s.mu.Unlock()
			h(w, r)
		})
	}
	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *stubServer) Actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.actions...)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetStats_OK(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-stats": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, dto.AdminStatsResponse{
				Success: true,
				Stats:   &dto.DashboardStats{TotalUsers: 4, PendingRequests: 7, SystemHealth: dto.HealthWarning},
			})
		},
	})

	res := portalclient.New(stub.srv.URL+"/api", portalclient.WithToken("tok")).GetStats(context.Background(), "adm-1")
	require.NoError(t, res.Err)
	assert.Equal(t, 4, res.Stats.TotalUsers)
	assert.Equal(t, dto.HealthWarning, res.Stats.SystemHealth)
}

func TestGetStats_RechazoDelServidor(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-stats": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusForbidden, dto.AdminStatsResponse{Error: "غير مصرح للوصول"})
		},
	})

	res := portalclient.New(stub.srv.URL+"/api").GetStats(context.Background(), "emp-1")
	assert.Equal(t, dto.ZeroStats(dto.HealthWarning), res.Stats)
	var apiErr *portalclient.Error
	require.ErrorAs(t, res.Err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestGetStats_SuccessFalseEsWarning(t *testing.T) {
	cases := []struct {
		name   string
		status int
	}{
		{"500", http.StatusInternalServerError},
		{"200", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := newStub(t, map[string]http.HandlerFunc{
				"/api/functions/admin-stats": func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, tc.status, map[string]bool{"success": false})
				},
			})
			res := portalclient.New(stub.srv.URL+"/api").GetStats(context.Background(), "adm-1")
			assert.Equal(t, dto.ZeroStats(dto.HealthWarning), res.Stats, "un fallo nunca reporta mejor salud que el servidor degradado")
			var apiErr *portalclient.Error
			require.ErrorAs(t, res.Err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
		})
	}
}

func TestGetStats_FalloDeTransporte(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-stats": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		},
	})
	res := portalclient.New(stub.srv.URL+"/api").GetStats(context.Background(), "adm-1")
	assert.Equal(t, dto.ZeroStats(dto.HealthWarning), res.Stats, "cuerpo no decodificable")
	assert.Error(t, res.Err)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	res = portalclient.New(closed.URL).GetStats(context.Background(), "adm-1")
	assert.Equal(t, dto.ZeroStats(dto.HealthWarning), res.Stats, "servidor caído")
	assert.Error(t, res.Err)
}

func TestDeleteService_ConSolicitudesNoEnviaDelete(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-services": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, dto.HasRequestsResponse{Success: true, HasRequests: true, RequestCount: 2})
		},
	})

	err := portalclient.New(stub.srv.URL+"/api").DeleteService(context.Background(), "svc-1")
	require.ErrorIs(t, err, portalclient.ErrHasRequests)
	var hr *portalclient.HasRequestsError
	require.True(t, errors.As(err, &hr))
	assert.Equal(t, 2, hr.Count)
	assert.Equal(t, []string{dto.ActionCheckHasRequests}, stub.Actions())
}

func TestDeleteService_SinSolicitudes(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-services": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, dto.HasRequestsResponse{Success: true})
		},
	})

	err := portalclient.New(stub.srv.URL+"/api").DeleteService(context.Background(), "svc-2")
	require.NoError(t, err)
	assert.Equal(t, []string{dto.ActionCheckHasRequests, dto.ActionDelete}, stub.Actions())
}

func TestCall_ErrorDelServidor(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-users": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Error: "duplicado"})
		},
	})

	_, err := portalclient.New(stub.srv.URL+"/api").CreateUser(context.Background(), dto.UserData{Email: "a@b.sa"})
	var apiErr *portalclient.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "EMAIL_EXISTS", apiErr.Code)
}

func TestListBranches(t *testing.T) {
	stub := newStub(t, map[string]http.HandlerFunc{
		"/api/functions/admin-branches": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "en", r.Header.Get("Accept-Language"))
			writeJSON(w, http.StatusOK, dto.Response{Success: true, Data: []dto.BranchResponse{{ID: "b-1", Name: "الرياض"}}})
		},
	})

	list, err := portalclient.New(stub.srv.URL+"/api", portalclient.WithLanguage("en")).ListBranches(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b-1", list[0].ID)
}
