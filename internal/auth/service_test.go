package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database/dbtest"
	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

var jwtConfig = config.JWTConfig{Secret: "test-secret", JWTExpiresIn: time.Hour, AuthEnabled: true}

func newTestService(t *testing.T) (Service, users.Repository) {
	t.Helper()
	db := dbtest.New(t, &users.User{})
	repo := users.NewRepository(db)
	svc := NewService(repo, jwtConfig, logger.NewWithWriter(io.Discard, "error"))
	_, err := svc.CreateOperator(context.Background(), "Box Office", "box", "s3cret!")
	require.NoError(t, err)
	return svc, repo
}

func TestIssueToken(t *testing.T) {
	svc, _ := newTestService(t)

	tok, err := svc.IssueToken(context.Background(), api.TokenRequest{Username: "box", Password: "s3cret!"})
	require.NoError(t, err)
	assert.EqualValues(t, 3600, tok.ExpiresIn)

	claims, err := svc.ValidateToken(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "box", claims.Username)
	assert.Equal(t, string(users.RoleAdmin), claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestIssueTokenRejects(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := repo.GetOrCreateByPhone(ctx, "9876543210")
	require.NoError(t, err)

	_, err = svc.IssueToken(ctx, api.TokenRequest{Username: "box", Password: "wrong!!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.IssueToken(ctx, api.TokenRequest{Username: "ghost", Password: "s3cret!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateOperator(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateOperator(ctx, "Again", "box", "another1")
	assert.ErrorIs(t, err, users.ErrUserAlreadyExists)
	_, err = svc.CreateOperator(ctx, "Short", "short", "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)

	op, err := repo.GetByUsername(ctx, "box")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", op.Password, "stored hashed")
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	svc, repo := newTestService(t)
	other := NewService(repo, config.JWTConfig{Secret: "other", JWTExpiresIn: time.Hour}, nil)

	tok, err := other.IssueToken(context.Background(), api.TokenRequest{Username: "box", Password: "s3cret!"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(tok.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenOpensOperatorRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)

	r := gin.New()
	group := r.Group("/api")
	SetupAuthRoutes(group, NewController(svc))
	group.POST("/guarded", middleware.RequireOperator(jwtConfig), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	post := func(path string, body any, token string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(body)
		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post("/api/auth/token", map[string]string{"username": "box", "password": "nope-nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post("/api/auth/token", map[string]string{"username": "box", "password": "s3cret!"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var env struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	assert.Equal(t, http.StatusUnauthorized, post("/api/guarded", nil, "").Code)
	assert.Equal(t, http.StatusNoContent, post("/api/guarded", nil, env.Data.AccessToken).Code)
}
