package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/domain/service"
	"github.com/oksasatya/go-hexagonal-users/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
	"github.com/oksasatya/go-hexagonal-users/internal/router"
	"github.com/oksasatya/go-hexagonal-users/pkg/validation"
)

func newTestEngine(t *testing.T, debug bool) (*gin.Engine, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger, hook := test.NewNullLogger()
	repo := memory.NewUserRepository()
	users := handlers.NewUserHandler(
		application.NewCreateUser(repo, service.NewPasswordService(4)),
		application.NewGetUser(repo),
		application.NewListUsers(repo),
		nil,
		logger,
	)
	r := router.NewEngine(router.EngineOptions{
		CORSOrigins: []string{"*"},
		AccessLog:   true,
		Logger:      logger,
	}, router.Deps{
		Users:        users,
		Health:       handlers.NewHealthHandler("hexagonal-users", "1.2.3"),
		DebugMetrics: debug,
	})
	return r, hook
}

func TestHealth(t *testing.T) {
	r, _ := newTestEngine(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "hexagonal-users", body["service"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.NotEmpty(t, body["timestamp"])
	// bare object, no response envelope
	assert.NotContains(t, body, "success")
	assert.NotContains(t, body, "data")
}

func TestRequestID(t *testing.T) {
	r, _ := newTestEngine(t, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("X-Request-ID", "trace-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-abc", w.Header().Get("X-Request-ID"))

	var env struct {
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "trace-abc", env.RequestID)

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 500))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestAccessLog(t *testing.T) {
	r, hook := newTestEngine(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/users/not-a-uuid", nil)
	req.Header.Set("X-Request-ID", "log-me")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, entry.Data["status"])
	assert.Equal(t, "/api/users/:id", entry.Data["path"])
	assert.Equal(t, "log-me", entry.Data["request_id"])
}

func TestAccessLog_APIOnly(t *testing.T) {
	r, hook := newTestEngine(t, false)
	hook.Reset()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, hook.AllEntries())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "/api/users", hook.LastEntry().Data["path"])
}

func TestDebugVars(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		r, _ := newTestEngine(t, false)
		req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
		req.RemoteAddr = "127.0.0.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("private caller", func(t *testing.T) {
		r, _ := newTestEngine(t, true)
		req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
		req.RemoteAddr = "127.0.0.1:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "users_created_total")
	})

	t.Run("public caller", func(t *testing.T) {
		r, _ := newTestEngine(t, true)
		req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	for _, header := range []string{"X-Forwarded-For", "CF-Connecting-IP"} {
		t.Run("public caller claiming loopback via "+header, func(t *testing.T) {
			r, _ := newTestEngine(t, true)
			req := httptest.NewRequest(http.MethodGet, "/debug/vars", nil)
			req.RemoteAddr = "203.0.113.9:5555"
			req.Header.Set(header, "127.0.0.1")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestEngine(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
