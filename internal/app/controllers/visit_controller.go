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

// VisitAPI records a supervisor's visits and evaluations
type VisitAPI interface {
	ListVisits(ctx context.Context, supervisorID int64) ([]*models.VisitLocation, error)
	CreateVisit(ctx context.Context, supervisorID int64, in services.VisitInput) (*models.VisitLocation, error)
	UpdateVisit(ctx context.Context, supervisorID, visitID int64, in services.VisitUpdate) (*models.VisitLocation, error)
	SetVisitStatus(ctx context.Context, supervisorID, visitID int64, status models.VisitStatus) (*models.VisitLocation, error)
	DeleteVisit(ctx context.Context, supervisorID, visitID int64) error
	RecordEvaluation(ctx context.Context, supervisorID int64, in services.EvaluationInput) (*models.Evaluation, error)
}

// VisitController serves /supervisors/me/visits and /supervisors/me/evaluations
type VisitController struct {
	visits      VisitAPI
	supervisors SupervisorResolver
	logger      zerolog.Logger
}

// NewVisitController creates a new VisitController
func NewVisitController(visits VisitAPI, supervisors SupervisorResolver, logger zerolog.Logger) *VisitController {
	return &VisitController{visits: visits, supervisors: supervisors, logger: logger}
}

// List returns the caller's visits
// @Summary My visits
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=[]models.VisitLocation}
// @Router /supervisors/me/visits [get]
func (c *VisitController) List(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}
	res, err := c.visits.ListVisits(ctx.Request.Context(), sup.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Create plans a visit to one of the caller's students
// @Summary Plan a visit
// @Description The visit starts Pending and is placed at the company of the student's active internship.
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param request body dto.CreateVisitRequest true "Visit"
// @Success 201 {object} dto.APIResponse{data=models.VisitLocation}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Student not assigned to caller"
// @Failure 409 {object} dto.ErrorResponse "Student has no active internship"
// @Router /supervisors/me/visits [post]
func (c *VisitController) Create(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}

	var req dto.CreateVisitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.visits.CreateVisit(ctx.Request.Context(), sup.ID, services.VisitInput{
		StudentID: req.StudentID,
		VisitDate: req.VisitDate,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(res))
}

// Update reschedules a visit or changes its status
// @Summary Update a visit
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param visitId path int true "Visit ID"
// @Param request body dto.UpdateVisitRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.VisitLocation}
// @Failure 404 {object} dto.ErrorResponse "Visit not found"
// @Failure 409 {object} dto.ErrorResponse "Completed visits cannot be reopened"
// @Router /supervisors/me/visits/{visitId} [put]
func (c *VisitController) Update(ctx *gin.Context) {
	visitID, ok := parseIDParam(ctx, "visitId")
	if !ok {
		return
	}
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}

	var req dto.UpdateVisitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.visits.UpdateVisit(ctx.Request.Context(), sup.ID, visitID, services.VisitUpdate{
		VisitDate: req.VisitDate,
		Status:    req.Status,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// SetStatus moves a visit from Pending to Completed
// @Summary Set visit status
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param visitId path int true "Visit ID"
// @Param request body dto.VisitStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.VisitLocation}
// @Failure 404 {object} dto.ErrorResponse "Visit not found"
// @Failure 409 {object} dto.ErrorResponse "Completed visits cannot be reopened"
// @Router /supervisors/me/visits/{visitId}/status [put]
func (c *VisitController) SetStatus(ctx *gin.Context) {
	visitID, ok := parseIDParam(ctx, "visitId")
	if !ok {
		return
	}
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}

	var req dto.VisitStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.visits.SetVisitStatus(ctx.Request.Context(), sup.ID, visitID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Delete removes one of the caller's visits
// @Summary Delete a visit
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param visitId path int true "Visit ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Visit not found"
// @Router /supervisors/me/visits/{visitId} [delete]
func (c *VisitController) Delete(ctx *gin.Context) {
	visitID, ok := parseIDParam(ctx, "visitId")
	if !ok {
		return
	}
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}
	if err := c.visits.DeleteVisit(ctx.Request.Context(), sup.ID, visitID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"visitId": visitID, "deleted": true}))
}

// Evaluate records an evaluation of one of the caller's students
// @Summary Record an evaluation
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param request body dto.CreateEvaluationRequest true "Evaluation"
// @Success 201 {object} dto.APIResponse{data=models.Evaluation}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Student not assigned to caller"
// @Router /supervisors/me/evaluations [post]
func (c *VisitController) Evaluate(ctx *gin.Context) {
	sup, ok := currentSupervisor(ctx, c.supervisors)
	if !ok {
		return
	}

	var req dto.CreateEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	res, err := c.visits.RecordEvaluation(ctx.Request.Context(), sup.ID, services.EvaluationInput{
		StudentID:      req.StudentID,
		EvaluationType: req.EvaluationType,
		TotalScore:     req.TotalScore,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(res))
}
