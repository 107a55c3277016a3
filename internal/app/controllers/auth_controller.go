// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/middleware"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// SessionAPI is the session surface used by AuthController
type SessionAPI interface {
	IssueToken(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Revoke(ctx context.Context, token string) error
}

// AuthController handles authentication related operations
type AuthController struct {
	sessions SessionAPI
	logger   zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(sessions SessionAPI, logger zerolog.Logger) *AuthController {
	return &AuthController{sessions: sessions, logger: logger}
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user and returns a session token
// @Tags auth
// @Accept json
// @Produce json
// @Security AppID
// @Security AppKey
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or missing application credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.sessions.IssueToken(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userID", res.User.ID).Msg("User logged in successfully")
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Logout revokes the caller's session token
// @Summary Logout
// @Description Revokes the current session token. Revoking an already revoked token succeeds.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token := middleware.CurrentToken(ctx)
	if err := c.sessions.Revoke(ctx.Request.Context(), token); err != nil {
		c.logger.Error().Err(err).Msg("Failed to revoke token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Logged out successfully"}))
}

// Me returns the authenticated user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewUserResponse(user)))
}
