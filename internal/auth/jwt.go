// Package auth issues and validates the single-role admin JWT that
// gates the mutation surface (spec.md §6.2). There is no models.User
// table: user accounts are an explicit non-goal, so the token carries
// nothing but the OAuth-verified email that was checked against the
// admin allowlist at login time.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"culturefeed-backend/internal/config"
)

// Claims is the payload of an admin token.
type Claims struct {
	Email string
}

var (
	ErrTokenExpired = errors.New("auth: token expired")
	ErrTokenInvalid = errors.New("auth: token invalid")
)

// Service creates and validates admin tokens using the configured JWT secret.
type Service struct {
	secretKey string
	expiry    time.Duration
}

func NewService(cfg config.JWTConfig) *Service {
	return &Service{
		secretKey: cfg.SecretKey,
		expiry:    time.Duration(cfg.Expiry) * time.Hour,
	}
}

// CreateToken issues a token for an email already verified against the
// admin allowlist (config.OAuthConfig.AdminEmails).
func (s *Service) CreateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.expiry).Unix(),
		"iat":   time.Now().Unix(),
		"iss":   "culturefeed-backend",
		"aud":   "culturefeed-admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ValidateToken parses and verifies a token, returning the admin email it carries.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, ErrTokenInvalid
	}
	return &Claims{Email: email}, nil
}

// IsAdminEmail reports whether email appears on the allowlist, case-insensitively.
func IsAdminEmail(allowlist []string, email string) bool {
	for _, a := range allowlist {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}
