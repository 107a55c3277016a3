package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/auth"
)

// Headers carrying application credentials
const (
	HeaderAppID  = "X-App-ID"
	HeaderAppKey = "X-App-Key"
)

// Context keys set by JWTAuth
const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextRole   = "role"
	ContextToken  = "token"
)

// SessionVerifier is the part of the session service the middleware needs
type SessionVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	VerifyAppCredentials(ctx context.Context, appID, appKey string) (bool, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	sessions SessionVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions SessionVerifier) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// AppCredentials rejects requests that do not carry a valid application id/key pair
func (m *AuthMiddleware) AppCredentials() gin.HandlerFunc {
	return func(c *gin.Context) {
		appID := strings.TrimSpace(c.GetHeader(HeaderAppID))
		appKey := strings.TrimSpace(c.GetHeader(HeaderAppKey))
		if appID == "" || appKey == "" {
			AbortWithError(c, apperrors.ErrMissingAppCredentials)
			return
		}

		ok, err := m.sessions.VerifyAppCredentials(c.Request.Context(), appID, appKey)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !ok {
			AbortWithError(c, apperrors.ErrInvalidAppCredentials)
			return
		}

		c.Next()
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := m.sessions.VerifyToken(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)
		c.Set(ContextToken, token)

		c.Next()
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			AbortWithError(c, apperrors.ErrTokenInvalid)
			return
		}
		if err := services.RequireRole(user, role); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// tokenFromRequest reads the bearer token from the Authorization header only.
// Swagger UI sometimes sends the raw token without the scheme, so that is accepted too.
func tokenFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	header = strings.Trim(strings.TrimSpace(header), "\"'")
	if header == "" {
		return "", apperrors.NewCustomError(apperrors.ErrTokenInvalid, "Authorization header missing")
	}

	if strings.Count(header, ".") == 2 && !strings.Contains(header, " ") {
		return header, nil
	}
	return auth.ExtractBearerToken(header)
}

// CurrentUser returns the user stored by JWTAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentToken returns the raw session token stored by JWTAuth
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
