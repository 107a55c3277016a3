package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/middleware"
)

// ProfileAPI manages a supervisor's own profile
type ProfileAPI interface {
	SupervisorForUser(ctx context.Context, userID int64) (*models.Supervisor, error)
	Profile(ctx context.Context, supervisorID int64) (*dto.SupervisorProfile, error)
	UpdateProfile(ctx context.Context, supervisorID int64, in services.ProfileUpdate) (*dto.SupervisorProfile, error)
	Delete(ctx context.Context, supervisorID int64) error
}

// ProfileController serves /supervisors/me/profile
type ProfileController struct {
	profiles ProfileAPI
	logger   zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profiles ProfileAPI, logger zerolog.Logger) *ProfileController {
	return &ProfileController{profiles: profiles, logger: logger}
}

// Get returns the caller's profile
// @Summary My profile
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=dto.SupervisorProfile}
// @Failure 404 {object} dto.ErrorResponse "Supervisor profile not found"
// @Router /supervisors/me/profile [get]
func (c *ProfileController) Get(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.profiles)
	if !ok {
		return
	}
	res, err := c.profiles.Profile(ctx.Request.Context(), sup.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Update changes the caller's name or position
// @Summary Update my profile
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.SupervisorProfile}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Router /supervisors/me/profile [put]
func (c *ProfileController) Update(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.profiles)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.profiles.UpdateProfile(ctx.Request.Context(), sup.ID, services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Delete removes the caller's supervisor profile and account
// @Summary Delete my account
// @Description Deletes the supervisor and their user account. Their students become unassigned.
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Supervisor profile not found"
// @Router /supervisors/me/profile [delete]
func (c *ProfileController) Delete(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.profiles)
	if !ok {
		return
	}
	if err := c.profiles.Delete(ctx.Request.Context(), sup.ID); err != nil {
		c.logger.Warn().Err(err).Int64("supervisorID", sup.ID).Msg("Delete supervisor failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"supervisorId": sup.ID, "deleted": true}))
}
