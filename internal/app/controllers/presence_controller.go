package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/middleware"
	"github.com/yigit/supervision/internal/pkg/apperrors"
	"github.com/yigit/supervision/internal/pkg/geo"
)

// PresenceAPI verifies student presence at host companies
type PresenceAPI interface {
	MaxMeters() float64
	Check(student, company *geo.Coordinate, maxMeters float64) dto.PresenceResult
	VerifyStudentPresence(ctx context.Context, studentID int64) (*dto.PresenceResult, error)
	UpdateStudentLocation(ctx context.Context, userID int64, loc geo.Coordinate) (*dto.LocationResponse, error)
}

// PresenceController handles location reports and presence checks
type PresenceController struct {
	presence PresenceAPI
	logger   zerolog.Logger
}

// NewPresenceController creates a new PresenceController
func NewPresenceController(presence PresenceAPI, logger zerolog.Logger) *PresenceController {
	return &PresenceController{presence: presence, logger: logger}
}

// StudentPresence checks whether the student is at their host company
// @Summary Verify student presence
// @Description Compares the student's last reported location with the company of their active internship. Missing data is reported as not within range.
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.PresenceResult}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{studentId}/presence [get]
func (c *PresenceController) StudentPresence(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}
	res, err := c.presence.VerifyStudentPresence(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// UpdateLocation records the calling student's position
// @Summary Report my location
// @Tags presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param request body dto.UpdateLocationRequest true "Current position"
// @Success 200 {object} dto.APIResponse{data=dto.LocationResponse}
// @Failure 400 {object} dto.ErrorResponse "Coordinate out of range"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Router /students/me/location [put]
func (c *PresenceController) UpdateLocation(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.presence.UpdateStudentLocation(ctx.Request.Context(), user.ID,
		geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Check compares two coordinates directly
// @Summary Check coordinates
// @Description Reports whether two coordinates are within maxMeters of each other. The configured radius is used when maxMeters is omitted.
// @Tags presence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param request body dto.PresenceCheckRequest true "Coordinates"
// @Success 200 {object} dto.APIResponse{data=dto.PresenceResult}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /presence/check [post]
func (c *PresenceController) Check(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.PresenceCheckRequest](ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrValidationFailed)
		return
	}

	maxMeters := c.presence.MaxMeters()
	if req.MaxMeters != nil {
		maxMeters = *req.MaxMeters
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.presence.Check(req.Student, req.Company, maxMeters)))
}
