package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/users"
)

const testSecret = "test-secret"

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func operatorClaims(role users.Role, tokenType string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":  1,
		"username": "box",
		"role":     string(role),
		"type":     tokenType,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func guarded(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/guarded", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUsername))
	})
	return r
}

func call(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireOperator(t *testing.T) {
	r := guarded(RequireOperator(config.JWTConfig{Secret: testSecret, AuthEnabled: true}))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"wrong secret", signed(t, "other", operatorClaims(users.RoleAdmin, "access")), http.StatusUnauthorized},
		{"refresh token", signed(t, testSecret, operatorClaims(users.RoleAdmin, "refresh")), http.StatusUnauthorized},
		{"plain user", signed(t, testSecret, operatorClaims(users.RoleUser, "access")), http.StatusForbidden},
		{"operator", signed(t, testSecret, operatorClaims(users.RoleAdmin, "access")), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.token)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "box", w.Body.String())
			}
		})
	}
}

func TestRequireOperatorDisabled(t *testing.T) {
	r := guarded(RequireOperator(config.JWTConfig{Secret: testSecret}))
	assert.Equal(t, http.StatusOK, call(r, "").Code)
}

func TestExpiredToken(t *testing.T) {
	claims := operatorClaims(users.RoleAdmin, "access")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	r := guarded(JWTAuthWithConfig(config.JWTConfig{Secret: testSecret}))
	assert.Equal(t, http.StatusUnauthorized, call(r, signed(t, testSecret, claims)).Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequest)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestPhoneValidator(t *testing.T) {
	require.NoError(t, RegisterValidators())

	type form struct {
		Phone string `binding:"required,phone10"`
	}
	for phone, ok := range map[string]bool{
		"9876543210":  true,
		"987654321":   false,
		"98765432100": false,
		"98765abcde":  false,
	} {
		err := binding.Validator.ValidateStruct(form{Phone: phone})
		assert.Equal(t, ok, err == nil, phone)
	}
}
