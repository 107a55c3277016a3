package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/middleware"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// SupervisorResolver finds the supervisor profile behind a signed-in user
type SupervisorResolver interface {
	SupervisorForUser(ctx context.Context, userID int64) (*models.Supervisor, error)
}

// currentSupervisor resolves the caller's supervisor profile, writing the error response on failure
func currentSupervisor(ctx *gin.Context, r SupervisorResolver) (*models.Supervisor, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return nil, false
	}
	sup, err := r.SupervisorForUser(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return sup, true
}

// parseIDParam reads a positive int64 path parameter, writing a 400 response when it is invalid
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+paramName).
			WithField(paramName).
			WithDetails("must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
