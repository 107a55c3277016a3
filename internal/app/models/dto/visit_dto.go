package dto

import (
	"time"

	"github.com/yigit/supervision/internal/app/models"
)

// CreateVisitRequest plans a visit to one of the supervisor's students
type CreateVisitRequest struct {
	StudentID int64     `json:"studentId" binding:"required,gt=0" example:"12"`
	VisitDate time.Time `json:"visitDate" binding:"required" example:"2026-05-14T00:00:00Z"`
}

// UpdateVisitRequest reschedules a visit or changes its status
type UpdateVisitRequest struct {
	VisitDate *time.Time          `json:"visitDate,omitempty" example:"2026-05-21T00:00:00Z"`
	Status    *models.VisitStatus `json:"status,omitempty" binding:"omitempty,oneof=Pending Completed" example:"Completed"`
}

// VisitStatusRequest moves a visit to a new status
type VisitStatusRequest struct {
	Status models.VisitStatus `json:"status" binding:"required,oneof=Pending Completed" example:"Completed"`
}

// CreateEvaluationRequest records an assessment of a student's placement
type CreateEvaluationRequest struct {
	StudentID      int64   `json:"studentId" binding:"required,gt=0" example:"12"`
	EvaluationType string  `json:"evaluationType" binding:"required,notblank,max=50" example:"Final"`
	TotalScore     float64 `json:"totalScore" binding:"gte=0,lte=100" example:"78.5"`
}
