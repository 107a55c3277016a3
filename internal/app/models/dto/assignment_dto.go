package dto

import "github.com/yigit/supervision/internal/app/models"

// CreateAreaRequest creates an area in a zone and hands it to a supervisor
type CreateAreaRequest struct {
	Name         string `json:"name" binding:"required,notblank,max=100" example:"Tema North"`
	Description  string `json:"description" binding:"max=1000" example:"Industrial area around Tema port"`
	SupervisorID int64  `json:"supervisorId" binding:"required,gt=0" example:"3"`
}

// AreaAssignmentResponse is the result of CreateAreaAndAssign
type AreaAssignmentResponse struct {
	Area                 *models.Area `json:"area"`
	SupervisorID         int64        `json:"supervisorId" example:"3"`
	AssignedStudentIDs   []int64      `json:"assignedStudentIds"`
	AssignedStudentCount int          `json:"assignedStudentCount" example:"10"`
}

// SupervisorAllocation is one supervisor's share after balancing
type SupervisorAllocation struct {
	SupervisorID int64   `json:"supervisorId" example:"3"`
	StudentIDs   []int64 `json:"studentIds"`
	Count        int     `json:"count" example:"7"`
}

// BalanceResponse is the result of BalanceWorkload
type BalanceResponse struct {
	ZoneID        int64                  `json:"zoneId" example:"1"`
	TotalStudents int                    `json:"totalStudents" example:"20"`
	Supervisors   int                    `json:"supervisors" example:"3"`
	Allocations   []SupervisorAllocation `json:"allocations"`
}

// ZoneResponse describes a zone with its areas and supervisors
type ZoneResponse struct {
	Zone        *models.Zone           `json:"zone"`
	Areas       []*models.Area         `json:"areas"`
	Allocations []SupervisorAllocation `json:"allocations"`
}
