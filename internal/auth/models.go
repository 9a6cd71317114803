package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// TokenTypeAccess is the only token type the server issues and accepts.
const TokenTypeAccess = "access"

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}
