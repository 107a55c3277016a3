package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/logger"
	"github.com/yigit/supervision/internal/pkg/observability"
)

// errorMapping is checked in order, so more specific sentinels come first
var errorMapping = []struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}{
	{apperrors.ErrMissingAppCredentials, http.StatusBadRequest, dto.ErrorCodeMissingAppCredentials, "Application credentials required"},
	{apperrors.ErrInvalidAppCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidAppCredentials, "Invalid application credentials"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeRevokedToken, "Token revoked"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{apperrors.ErrRoleMismatch, http.StatusForbidden, dto.ErrorCodeRoleMismatch, "Access denied"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{apperrors.ErrInvalidState, http.StatusConflict, dto.ErrorCodeInvalidState, "Invalid state"},
	{apperrors.ErrDivision, http.StatusUnprocessableEntity, dto.ErrorCodeDivision, "Zone has no supervisors to balance across"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrInvalidRole, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid role"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorDetailFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Msg("Unhandled error")
		observability.CaptureWithTags(err, map[string]string{
			"method": c.Request.Method,
			"route":  c.FullPath(),
		})
	}
	c.JSON(status, dto.APIResponse{Error: detail, Timestamp: timeNow()})
}

// AbortWithError writes the error response and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	HandleAPIError(c, err)
	c.Abort()
}

// ErrorDetailFor maps an error to its HTTP status and response detail
func ErrorDetailFor(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMapping {
		if !errors.Is(err, m.target) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			detail.WithDetails(custom.Message)
		}
		return m.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}
