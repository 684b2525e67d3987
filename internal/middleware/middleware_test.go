package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/middleware"
	"go-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const secret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(middleware.ContextLogger(zap.New(core)), middleware.AuthMiddleware(secret))

	var got contextutil.Identity
	r.GET("/me", func(c *gin.Context) {
		id, err := middleware.CurrentIdentity(c)
		require.NoError(t, err)
		got = id
		contextutil.GetLogger(c.Request.Context(), nil).Info("handled")
		c.Status(http.StatusNoContent)
	})

	token := signToken(t, jwt.MapClaims{
		"employee_id": "emp-1",
		"company_id":  "c-1",
		"role":        "HR",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, contextutil.Identity{EmployeeID: "emp-1", TenantID: "c-1", Role: "HR"}, got)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "emp-1", fields["employee_id"])
	assert.Equal(t, "c-1", fields["company_id"])
	assert.Equal(t, w.Header().Get("X-Request-ID"), fields["request_id"])
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"no token", "", "Token not found"},
		{"garbage", "Bearer nope", "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(middleware.AuthMiddleware(secret))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestAuthMiddleware_RequiresTenant(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(secret))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, jwt.MapClaims{"employee_id": "emp-1"})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), middleware.ErrMissingTenant.Message)
}

func TestAuthMiddleware_Expired(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(secret))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, jwt.MapClaims{
		"employee_id": "emp-1",
		"company_id":  "c-1",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), middleware.ErrTokenExpired.Message)
}

func TestRoleMiddleware(t *testing.T) {
	setRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) { c.Set("role", role) }
	}

	r := newRouter(setRole("employee"), middleware.RoleMiddleware(middleware.RoleGrants{Admin: []string{"ADMIN", "HR"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeCode(t, w))

	r = newRouter(setRole("hr"), middleware.RoleMiddleware(middleware.RoleGrants{Admin: []string{"ADMIN", "HR"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware_ReadOnlyRole(t *testing.T) {
	grants := middleware.RoleGrants{Admin: []string{"ADMIN"}, ReadOnly: []string{"auditor"}}
	r := newRouter(func(c *gin.Context) { c.Set("role", "AUDITOR") }, middleware.RoleMiddleware(grants))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decodeCode(t, w))
}

func TestRoleGrants_Enforcer(t *testing.T) {
	e, err := middleware.RoleGrants{Admin: []string{"admin"}, ReadOnly: []string{"auditor"}}.Enforcer()
	require.NoError(t, err)

	tests := []struct {
		role, method string
		want         bool
	}{
		{"ADMIN", http.MethodPost, true},
		{"ADMIN", http.MethodDelete, true},
		{"AUDITOR", http.MethodGet, true},
		{"AUDITOR", http.MethodHead, true},
		{"AUDITOR", http.MethodPut, false},
		{"AUDITOR", http.MethodDelete, false},
		{"EMPLOYEE", http.MethodGet, false},
	}
	for _, tt := range tests {
		ok, err := e.Enforce(tt.role, tt.method)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "%s %s", tt.role, tt.method)
	}
}

func TestNewRoleEnforcer(t *testing.T) {
	e, err := middleware.NewRoleEnforcer([]string{"auditor", " "}, "GET|HEAD")
	require.NoError(t, err)

	ok, err := e.Enforce("AUDITOR", http.MethodGet)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.Enforce("AUDITOR", http.MethodPost)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.Enforce("", http.MethodGet)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRateLimitByUser(t *testing.T) {
	r := newRouter(func(c *gin.Context) { c.Set("user_id", "u1") }, middleware.RateLimitByUser(0.001, 1))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/x:u1:k1").SetVal(`{"status":201,"body":{"ok":true}}`)

	called := false
	r := newRouter(func(c *gin.Context) { c.Set("user_id", "u1") }, middleware.Idempotency(rdb))
	r.POST("/x", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_RejectsInFlightDuplicate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/x:u1:k1").RedisNil()
	mock.ExpectSetNX("idemp:/x:u1:k1:lock", "locked", 30*time.Second).SetVal(false)

	r := newRouter(func(c *gin.Context) { c.Set("user_id", "u1") }, middleware.Idempotency(rdb))
	r.POST("/x", func(c *gin.Context) { t.Fatal("handler must not run") })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_StoresSuccessfulResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/x:u1:k1").RedisNil()
	mock.ExpectSetNX("idemp:/x:u1:k1:lock", "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet("idemp:/x:u1:k1", []byte(`{"status":200,"body":{"ok":true}}`), 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/x:u1:k1:lock").SetVal(1)

	r := newRouter(func(c *gin.Context) { c.Set("user_id", "u1") }, middleware.Idempotency(rdb))
	r.POST("/x", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
