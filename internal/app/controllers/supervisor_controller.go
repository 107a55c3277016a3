package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/app/models/dto"
	"github.com/yigit/supervision/internal/middleware"
)

// WorkloadAPI reads supervisor workload
type WorkloadAPI interface {
	SupervisorForUser(ctx context.Context, userID int64) (*models.Supervisor, error)
	GetWorkload(ctx context.Context, supervisorID int64) (*dto.WorkloadSummary, error)
	GetDashboard(ctx context.Context, supervisorID int64) (*dto.Dashboard, error)
	GetAssignedStudentsWithStatus(ctx context.Context, supervisorID int64, now time.Time) ([]dto.StudentSupervisionView, error)
	ListStudents(ctx context.Context, supervisorID int64, now time.Time, status string) ([]dto.StudentSupervisionView, error)
	SearchStudents(ctx context.Context, supervisorID int64, query string) ([]dto.StudentSummary, error)
}

// SupervisorController serves a supervisor's own workload views
type SupervisorController struct {
	workload WorkloadAPI
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSupervisorController creates a new SupervisorController
func NewSupervisorController(workload WorkloadAPI, logger zerolog.Logger) *SupervisorController {
	return &SupervisorController{workload: workload, now: time.Now, logger: logger}
}

func (c *SupervisorController) currentSupervisor(ctx *gin.Context) (*models.Supervisor, bool) {
	return currentSupervisor(ctx, c.workload)
}

// Workload returns the caller's student and evaluation counts
// @Summary My workload
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=dto.WorkloadSummary}
// @Failure 403 {object} dto.ErrorResponse "Not a supervisor"
// @Failure 404 {object} dto.ErrorResponse "Supervisor profile not found"
// @Router /supervisors/me/workload [get]
func (c *SupervisorController) Workload(ctx *gin.Context) {
	sup, ok := c.currentSupervisor(ctx)
	if !ok {
		return
	}
	res, err := c.workload.GetWorkload(ctx.Request.Context(), sup.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// WorkloadByID returns any supervisor's workload
// @Summary Supervisor workload
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param supervisorId path int true "Supervisor ID"
// @Success 200 {object} dto.APIResponse{data=dto.WorkloadSummary}
// @Failure 404 {object} dto.ErrorResponse "Supervisor not found"
// @Router /supervisors/{supervisorId}/workload [get]
func (c *SupervisorController) WorkloadByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "supervisorId")
	if !ok {
		return
	}
	res, err := c.workload.GetWorkload(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Students lists the caller's students with supervision status
// @Summary My students
// @Description Lists assigned students with supervision, assessment and visit status and days left on the internship.
// @Description The optional status filter accepts 0, 50 or 100, with or without the percent sign.
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param status query string false "Supervision status filter" Enums(0%, 50%, 100%)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSupervisionView}
// @Failure 400 {object} dto.ErrorResponse "Unknown status filter"
// @Failure 404 {object} dto.ErrorResponse "No students assigned or none match the filter"
// @Router /supervisors/me/students [get]
func (c *SupervisorController) Students(ctx *gin.Context) {
	sup, ok := c.currentSupervisor(ctx)
	if !ok {
		return
	}
	res, err := c.workload.ListStudents(ctx.Request.Context(), sup.ID, c.now(), ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// SearchStudents finds the caller's students by name, email or registration number
// @Summary Search my students
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Param q query string true "Case-insensitive search text"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentSummary}
// @Failure 400 {object} dto.ErrorResponse "Missing search text"
// @Failure 404 {object} dto.ErrorResponse "No students assigned"
// @Router /supervisors/me/students/search [get]
func (c *SupervisorController) SearchStudents(ctx *gin.Context) {
	sup, ok := c.currentSupervisor(ctx)
	if !ok {
		return
	}
	res, err := c.workload.SearchStudents(ctx.Request.Context(), sup.ID, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}

// Dashboard summarises the caller's review progress
// @Summary My dashboard
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Security AppID
// @Security AppKey
// @Success 200 {object} dto.APIResponse{data=dto.Dashboard}
// @Router /supervisors/me/dashboard [get]
func (c *SupervisorController) Dashboard(ctx *gin.Context) {
	sup, ok := c.currentSupervisor(ctx)
	if !ok {
		return
	}
	res, err := c.workload.GetDashboard(ctx.Request.Context(), sup.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(res))
}
