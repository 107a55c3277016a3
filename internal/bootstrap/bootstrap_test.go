package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/supervision/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	return cfg
}

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, ri := range r.Routes() {
		set[ri.Method+" "+ri.Path] = true
	}
	return set
}

func TestSetupRouter_RegistersRoutes(t *testing.T) {
	cfg := testConfig(t)
	deps := BuildDependencies(cfg, nil, zerolog.Nop())
	router := SetupRouter(cfg, deps, nil, zerolog.Nop())

	routes := routeSet(router)
	for _, want := range []string{
		"GET /api/v1/health",
		"GET /metrics",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/logout",
		"GET /api/v1/auth/me",
		"GET /api/v1/zones/:zoneId",
		"POST /api/v1/zones/:zoneId/areas",
		"POST /api/v1/zones/:zoneId/balance",
		"GET /api/v1/supervisors/me/workload",
		"GET /api/v1/supervisors/me/students",
		"GET /api/v1/supervisors/me/dashboard",
		"GET /api/v1/supervisors/me/students/search",
		"GET /api/v1/supervisors/me/profile",
		"PUT /api/v1/supervisors/me/profile",
		"DELETE /api/v1/supervisors/me/profile",
		"GET /api/v1/supervisors/me/visits",
		"POST /api/v1/supervisors/me/visits",
		"PUT /api/v1/supervisors/me/visits/:visitId",
		"DELETE /api/v1/supervisors/me/visits/:visitId",
		"PUT /api/v1/supervisors/me/visits/:visitId/status",
		"POST /api/v1/supervisors/me/evaluations",
		"GET /api/v1/supervisors/:supervisorId/workload",
		"PUT /api/v1/students/me/location",
		"GET /api/v1/students/:studentId/presence",
		"POST /api/v1/presence/check",
		"GET /swagger/*any",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestSetupRouter_MetricsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false
	router := SetupRouter(cfg, BuildDependencies(cfg, nil, zerolog.Nop()), nil, zerolog.Nop())

	assert.False(t, routeSet(router)["GET /metrics"])
}

func TestSetupRouter_RequiresAppCredentials(t *testing.T) {
	cfg := testConfig(t)
	router := SetupRouter(cfg, BuildDependencies(cfg, nil, zerolog.Nop()), nil, zerolog.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_011")
}
