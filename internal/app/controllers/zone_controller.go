package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/middleware"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// AssignmentAPI creates areas and balances zone workload
type AssignmentAPI interface {
	CreateAreaAndAssign(ctx context.Context, zoneID int64, in services.AreaInput, supervisorID, requestingUserID int64) (*dto.AreaAssignmentResponse, error)
	BalanceWorkload(ctx context.Context, zoneID int64) (*dto.BalanceResponse, error)
}

// ZoneAPI answers zone queries and leader checks
type ZoneAPI interface {
	RequireLeader(ctx context.Context, zoneID, userID int64) error
	GetZoneAssignments(ctx context.Context, zoneID int64) (*dto.ZoneResponse, error)
}

// ZoneController exposes zone management to zone leaders
type ZoneController struct {
	assignments AssignmentAPI
	zones       ZoneAPI
	logger      zerolog.Logger
}

// NewZoneController creates a new ZoneController
func NewZoneController(assignments AssignmentAPI, zones ZoneAPI, logger zerolog.Logger) *ZoneController {
	return &ZoneController{assignments: assignments, zones: zones, logger: logger}
}

// CreateArea creates an area and assigns a batch of students to its supervisor
// @Summary Create area and assign students
// @Description Creates an area in the zone, binds the supervisor to it and assigns up to one batch of the zone's unassigned students. Only the zone leader may call it.
// @Tags zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param zoneId path int true "Zone ID"
// @Param request body dto.CreateAreaRequest true "Area and supervisor"
// @Success 201 {object} dto.APIResponse{data=dto.AreaAssignmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Not the zone leader"
// @Failure 404 {object} dto.ErrorResponse "Zone or supervisor not found"
// @Failure 409 {object} dto.ErrorResponse "Supervisor belongs to another zone or area name taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /zones/{zoneId}/areas [post]
func (c *ZoneController) CreateArea(ctx *gin.Context) {
	zoneID, ok := parseIDParam(ctx, "zoneId")
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.CreateAreaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.assignments.CreateAreaAndAssign(ctx.Request.Context(), zoneID,
		services.AreaInput{Name: req.Name, Description: req.Description}, req.SupervisorID, user.ID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("zoneID", zoneID).Int64("supervisorID", req.SupervisorID).Msg("Create area failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(res))
}

// Balance evenly redistributes the zone's students
// @Summary Balance zone workload
// @Description Replaces every assignment in the zone with an even split across its supervisors.
// @Tags zones
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param zoneId path int true "Zone ID"
// @Success 200 {object} dto.APIResponse{data=dto.BalanceResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the zone leader"
// @Failure 404 {object} dto.ErrorResponse "Zone not found"
// @Failure 422 {object} dto.ErrorResponse "Zone has no supervisors"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /zones/{zoneId}/balance [post]
func (c *ZoneController) Balance(ctx *gin.Context) {
	zoneID, ok := parseIDParam(ctx, "zoneId")
	if !ok {
		return
	}
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	if err := c.zones.RequireLeader(ctx.Request.Context(), zoneID, user.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	res, err := c.assignments.BalanceWorkload(ctx.Request.Context(), zoneID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("zoneID", zoneID).Msg("Balance failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// GetZone returns the zone with its areas and allocations
// @Summary Get zone assignments
// @Tags zones
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param zoneId path int true "Zone ID"
// @Success 200 {object} dto.APIResponse{data=dto.ZoneResponse}
// @Failure 404 {object} dto.ErrorResponse "Zone not found"
// @Router /zones/{zoneId} [get]
func (c *ZoneController) GetZone(ctx *gin.Context) {
	zoneID, ok := parseIDParam(ctx, "zoneId")
	if !ok {
		return
	}

	res, err := c.zones.GetZoneAssignments(ctx.Request.Context(), zoneID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}
