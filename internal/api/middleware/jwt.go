package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"culturefeed-backend/internal/auth"
	"culturefeed-backend/internal/config"
	"culturefeed-backend/internal/logger"
)

type contextKey string

const UserContextKey contextKey = "user"

// JWTErrorResponse is the error body for admin authentication failures.
type JWTErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	RequestID string `json:"request_id,omitempty"`
}

// HumaJWTMiddleware gates the admin group (§6.2) on a valid admin token,
// read from the Authorization header or the auth_token cookie.
func HumaJWTMiddleware(jwtService *auth.Service, sessionConfig config.SessionConfig) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		requestID := logger.GetRequestID(ctx.Context())

		token := extractToken(ctx)
		if token == "" {
			writeJWTError(ctx, requestID, "token_missing", "Authentication required", &sessionConfig)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			code := "token_invalid"
			message := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				code = "token_expired"
				message = "Token expired"
			}
			logger.EventWarn(ctx.Context(), "admin_jwt_validation_failed", "error", err.Error())
			writeJWTError(ctx, requestID, code, message, &sessionConfig)
			return
		}

		next(huma.WithValue(ctx, UserContextKey, claims))
	}
}

func extractToken(ctx huma.Context) string {
	if authHeader := ctx.Header("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if cookieHeader := ctx.Header("Cookie"); cookieHeader != "" {
		req := &http.Request{Header: http.Header{"Cookie": []string{cookieHeader}}}
		if c, err := req.Cookie(config.AuthCookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// ExtractBearerOrCookie is the plain net/http equivalent of
// extractToken, for the handful of admin endpoints (SSE, multipart)
// registered outside Huma's typed-operation model.
func ExtractBearerOrCookie(r *http.Request, _ config.SessionConfig) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if c, err := r.Cookie(config.AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

// GetAdminFromContext returns the authenticated admin's claims, or nil
// if the request reached this point without the JWT middleware (public routes).
func GetAdminFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func writeJWTError(ctx huma.Context, requestID, errorCode, message string, sessConfig *config.SessionConfig) {
	ctx.SetStatus(http.StatusUnauthorized)
	if sessConfig != nil {
		clearCookie := sessConfig.ClearAuthCookie()
		ctx.SetHeader("Set-Cookie", clearCookie.String())
	}
	resp := JWTErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: errorCode,
		RequestID: requestID,
	}
	data, _ := json.Marshal(resp)
	ctx.BodyWriter().Write(data)
}
