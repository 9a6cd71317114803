package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"boxoffice/internal/shared/config"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

type Service interface {
	// IssueToken exchanges operator credentials for an access token.
	IssueToken(ctx context.Context, req api.TokenRequest) (*api.TokenResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	// CreateOperator stores an operator account with a hashed password.
	CreateOperator(ctx context.Context, name, username, password string) (*users.User, error)
}

type service struct {
	users  users.Repository
	config config.JWTConfig
	log    *logger.Logger
	now    func() time.Time
}

func NewService(repo users.Repository, cfg config.JWTConfig, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{users: repo, config: cfg, log: log, now: time.Now}
}

func (s *service) IssueToken(ctx context.Context, req api.TokenRequest) (*api.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// Patrons are created by bookings and never log in.
	if user.Role != users.RoleAdmin {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.log.LogAuthSuccess(ctx, req.Username, "password")
	return &api.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) CreateOperator(ctx context.Context, name, username, password string) (*users.User, error) {
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &users.User{
		Name:     name,
		Username: &username,
		Password: string(hashed),
		Role:     users.RoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.Type == TokenTypeAccess {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

func (s *service) generateToken(user *users.User) (string, error) {
	now := s.now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: *user.Username,
		Role:     string(user.Role),
		Type:     TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWTExpiresIn)),
			Issuer:    "boxoffice",
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
