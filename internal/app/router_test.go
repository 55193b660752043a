package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ezcrow.dev/crowdfund/internal/api/generated"
	"ezcrow.dev/crowdfund/internal/api/handlers"
	"ezcrow.dev/crowdfund/internal/api/middleware"
	"ezcrow.dev/crowdfund/internal/api/openapi"
	"ezcrow.dev/crowdfund/internal/config"
	"ezcrow.dev/crowdfund/internal/host"
)

func testAddress(kind byte, tag string) string {
	s := string(kind) + tag
	return s + strings.Repeat("A", 56-len(s))
}

var (
	ownerAddr = testAddress('G', "OWNER")
	aliceAddr = testAddress('G', "ALICE")
)

var genesis = time.Unix(1_700_000_000, 0).UTC()

func testConfig() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Contract: config.ContractConfig{
			Address:      config.DefaultContractAddress,
			TokenAddress: config.DefaultTokenAddress,
		},
		Audit: config.AuditConfig{MemoryCapacity: 100},
		Log:   config.LogConfig{Level: "error", Format: "json"},
		Security: config.SecurityConfig{
			SigningSecret: strings.Repeat("s", 32),
			TokenIssuer:   "crowdfund",
			TokenTTL:      time.Hour,
		},
		Worker:  config.WorkerConfig{GeneralPoolSize: 4, JournalPoolSize: 2},
		Tracing: config.TracingConfig{ServiceName: "crowdfund-test"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

type testApp struct {
	*Application
	clock *host.ManualClock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := host.NewManualClock(genesis)
	a, err := Bootstrap(context.Background(), testConfig(), WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { a.Shutdown(context.Background()) })
	return &testApp{Application: a, clock: clock}
}

func (a *testApp) token(t *testing.T, addrs []string, roles ...string) string {
	t.Helper()
	tok, _, err := middleware.GenerateToken(a.JWT, "test", addrs, roles)
	require.NoError(t, err)
	return tok
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRouter_DonationFlow(t *testing.T) {
	a := newTestApp(t)
	admin := a.token(t, nil, middleware.RoleAdmin)
	ownerTok := a.token(t, []string{ownerAddr})
	aliceTok := a.token(t, []string{aliceAddr})

	w := a.do(t, http.MethodPost, "/admin/token/mint", admin, map[string]string{"to": aliceAddr, "amount": "1000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1000", decode(t, w)["balance"])

	deadline := uint64(genesis.Unix()) + 3600
	w = a.do(t, http.MethodPost, "/contract/initialize", ownerTok, map[string]any{
		"owner": ownerAddr, "goal": "400", "deadline": deadline, "category": "Technology",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/contract/donations", aliceTok, map[string]string{"donor": aliceAddr, "amount": "100"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "100", decode(t, w)["total_raised"])

	w = a.do(t, http.MethodPost, "/contract/updates", ownerTok, map[string]string{"owner": ownerAddr, "text": "prototype shipped"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = a.do(t, http.MethodPost, "/contract/comments", aliceTok, map[string]string{"commenter": aliceAddr, "text": "great work"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	reads := []struct {
		path  string
		key   string
		value any
	}{
		{"/contract/initialized", "initialized", true},
		{"/contract/total-raised", "total_raised", "100"},
		{"/contract/donations/" + aliceAddr, "amount", "100"},
		{"/contract/category", "category", "Technology"},
		{"/contract/updates/count", "count", float64(1)},
		{"/contract/comments/count", "count", float64(1)},
		{"/contract/progress", "percentage", float64(25)},
		{"/contract/active", "active", true},
		{"/contract/stats", "donors", "1"},
		{"/token/balances/" + aliceAddr, "balance", "900"},
	}
	for _, r := range reads {
		t.Run(r.path, func(t *testing.T) {
			w := a.do(t, http.MethodGet, r.path, "", nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, r.value, decode(t, w)[r.key])
		})
	}

	w = a.do(t, http.MethodGet, "/contract/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decode(t, w)
	assert.Equal(t, []any{"prototype shipped"}, dash["updates"])
	assert.Equal(t, []any{"great work"}, dash["comments"])
	assert.Equal(t, true, dash["active"])
}

func TestRouter_DonateAfterDeadline(t *testing.T) {
	a := newTestApp(t)
	admin := a.token(t, nil, middleware.RoleAdmin)
	ownerTok := a.token(t, []string{ownerAddr})
	aliceTok := a.token(t, []string{aliceAddr})

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/admin/token/mint", admin,
		map[string]string{"to": aliceAddr, "amount": "50"}).Code)
	deadline := uint64(genesis.Unix()) + 60
	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/contract/initialize", ownerTok,
		map[string]any{"owner": ownerAddr, "goal": "100", "deadline": deadline}).Code)

	a.clock.Advance(61 * time.Second)

	w := a.do(t, http.MethodPost, "/contract/donations", aliceTok, map[string]string{"donor": aliceAddr, "amount": "10"})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Equal(t, "CAMPAIGN_ENDED", decode(t, w)["code"])

	w = a.do(t, http.MethodGet, "/contract/active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["active"])
	assert.EqualValues(t, deadline+1, body["ledger_time"])

	w = a.do(t, http.MethodGet, "/token/balances/"+aliceAddr, "", nil)
	assert.Equal(t, "50", decode(t, w)["balance"])
}

func TestRouter_Auth(t *testing.T) {
	a := newTestApp(t)
	aliceTok := a.token(t, []string{aliceAddr})
	ownerTok := a.token(t, []string{ownerAddr})

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     any
		wantCode int
		wantErr  string
	}{
		{"public read", http.MethodGet, "/contract/total-raised", "", nil, http.StatusOK, ""},
		{"liveness", http.MethodGet, "/health/live", "", nil, http.StatusOK, ""},
		{"write without token", http.MethodPost, "/contract/donations", "",
			map[string]string{"donor": aliceAddr, "amount": "1"}, http.StatusUnauthorized, "AUTH_FAILED"},
		{"write with garbage token", http.MethodPost, "/contract/donations", "not-a-jwt",
			map[string]string{"donor": aliceAddr, "amount": "1"}, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"admin without token", http.MethodGet, "/admin/invocations", "", nil, http.StatusUnauthorized, "AUTH_FAILED"},
		{"admin without role", http.MethodGet, "/admin/invocations", aliceTok, nil, http.StatusForbidden, "FORBIDDEN"},
		{"mutation before initialize", http.MethodPost, "/contract/updates", ownerTok,
			map[string]string{"owner": ownerAddr, "text": "x"}, http.StatusConflict, "NOT_INITIALIZED"},
		{"owner not among signers", http.MethodPost, "/contract/initialize", aliceTok,
			map[string]any{"owner": ownerAddr, "goal": "10", "deadline": 1}, http.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(t, tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, decode(t, w)["code"])
			}
		})
	}
}

func TestRouter_InvocationJournal(t *testing.T) {
	a := newTestApp(t)
	admin := a.token(t, nil, middleware.RoleAdmin)
	ownerTok := a.token(t, []string{ownerAddr})

	require.Equal(t, http.StatusOK, a.do(t, http.MethodPost, "/contract/initialize", ownerTok,
		map[string]any{"owner": ownerAddr, "goal": "10", "deadline": uint64(genesis.Unix()) + 10}).Code)
	w := a.do(t, http.MethodPost, "/contract/donations", ownerTok, map[string]string{"donor": ownerAddr, "amount": "5"})
	require.Equal(t, http.StatusPaymentRequired, w.Code, w.Body.String())

	require.Eventually(t, func() bool {
		w := a.do(t, http.MethodGet, "/admin/invocations?limit=10", admin, nil)
		if w.Code != http.StatusOK {
			return false
		}
		entries, _ := decode(t, w)["entries"].([]any)
		return len(entries) == 2
	}, 2*time.Second, 10*time.Millisecond)

	w = a.do(t, http.MethodGet, "/admin/invocations/verify", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rep := decode(t, w)
	assert.Equal(t, true, rep["valid"])
	assert.EqualValues(t, 2, rep["checked"])

	w = a.do(t, http.MethodGet, "/admin/invocations?limit=0", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_Readiness(t *testing.T) {
	a := newTestApp(t)
	w := a.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "memory", body["storage"])
}

func TestRouter_RoutesFromContract(t *testing.T) {
	a := newTestApp(t)
	doc, err := openapi.Load()
	require.NoError(t, err)

	ops := 0
	for _, item := range doc.Paths.Map() {
		ops += len(item.Operations())
	}
	routes := a.Router.Routes()
	assert.Len(t, routes, ops)
	for _, r := range routes {
		assert.True(t, strings.HasPrefix(r.Path, basePath+"/"), r.Path)
		assert.Contains(t, r.Handler, "ServerInterfaceWrapper", "%s %s", r.Method, r.Path)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	a := newTestApp(t)
	w := a.do(t, http.MethodGet, "/contract/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w)["code"])
}

func TestRouter_ParameterBindingError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())
	generated.RegisterHandlersWithOptions(router, handlers.NewServer(handlers.ServerDeps{}), generated.GinServerOptions{
		BaseURL:      basePath,
		ErrorHandler: parameterError,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, basePath+"/admin/invocations?limit=ten", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "INVALID_REQUEST", body["code"])
	assert.Contains(t, body["params"], "reason")
}

func TestRouter_LogLevel(t *testing.T) {
	a := newTestApp(t)
	admin := a.token(t, nil, middleware.RoleAdmin)

	w := a.do(t, http.MethodGet, "/admin/log/level", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	level := decode(t, w)["level"]
	require.NotEmpty(t, level)

	w = a.do(t, http.MethodPut, "/admin/log/level", admin, map[string]any{"level": level})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, level, decode(t, w)["level"])
}

func TestRequiresSigner(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/api/v1/contract/stats", false},
		{http.MethodOptions, "/api/v1/contract/donations", false},
		{http.MethodPost, "/api/v1/contract/donations", true},
		{http.MethodGet, "/api/v1/admin/invocations", true},
		{http.MethodPut, "/api/v1/admin/log/level", true},
		{http.MethodGet, "/api/v1/token/balances/x", false},
		{http.MethodGet, "/api/v1/health/ready", false},
	}
	for _, tt := range tests {
		if got := requiresSigner(tt.method, tt.path); got != tt.want {
			t.Errorf("requiresSigner(%s, %s) = %v, want %v", tt.method, tt.path, got, tt.want)
		}
	}
}
