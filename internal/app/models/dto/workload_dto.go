package dto

import (
	"strings"
	"time"

	"github.com/yigit/supervision/internal/app/models"
	"github.com/yigit/supervision/internal/pkg/apperrors"
)

// Supervision status values
const (
	SupervisionComplete   = "100%"
	SupervisionHalf       = "50%"
	SupervisionNotStarted = "0%"

	AssessmentCompleted  = "Completed"
	AssessmentNotStarted = "Not started"

	VisitCompleted  = "Completed"
	VisitNotVisited = "Not visited"
)

// ParseSupervisionStatus normalises a status filter. "50" and "50%" are the
// same filter; an empty string means no filter.
func ParseSupervisionStatus(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	status := strings.TrimSuffix(raw, "%") + "%"
	switch status {
	case SupervisionComplete, SupervisionHalf, SupervisionNotStarted:
		return status, nil
	}
	return "", apperrors.NewValidationError("status must be one of 0%, 50%, 100%")
}

// WorkloadSummary counts a supervisor's students and completed evaluations
type WorkloadSummary struct {
	SupervisorID             int64 `json:"supervisorId" example:"3"`
	AssignedStudentCount     int   `json:"assignedStudentCount" example:"10"`
	CompletedEvaluationCount int   `json:"completedEvaluationCount" example:"4"`
}

// StudentSupervisionView is one assigned student with supervision progress
type StudentSupervisionView struct {
	StudentID          int64     `json:"studentId" example:"12"`
	RegistrationNumber string    `json:"registrationNumber" example:"IT-2024-0042"`
	FirstName          string    `json:"firstName" example:"Kojo"`
	LastName           string    `json:"lastName" example:"Owusu"`
	Email              string    `json:"email" example:"kojo@student.edu"`
	CompanyName        string    `json:"companyName,omitempty" example:"Tema Oil Refinery"`
	InternshipTitle    string    `json:"internshipTitle,omitempty" example:"Process Engineering Intern"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	DaysLeft           int       `json:"daysLeft" example:"42"`
	SupervisionStatus  string    `json:"supervisionStatus" example:"50%" enums:"0%,50%,100%"`
	AssessmentStatus   string    `json:"assessmentStatus" example:"Not started" enums:"Completed,Not started"`
	VisitStatus        string    `json:"visitStatus" example:"Completed" enums:"Completed,Not visited"`
}

// Dashboard summarises supervision progress
type Dashboard struct {
	SupervisorID     int64  `json:"supervisorId" example:"3"`
	ZoneID           int64  `json:"zoneId" example:"1"`
	AreaID           *int64 `json:"areaId,omitempty" example:"2"`
	TotalStudents    int    `json:"totalStudents" example:"10"`
	CompletedReviews int    `json:"completedReviews" example:"4"`
	PendingReviews   int    `json:"pendingReviews" example:"6"`
}

// StudentSummary is a search hit among a supervisor's students
type StudentSummary struct {
	StudentID          int64  `json:"studentId" example:"12"`
	RegistrationNumber string `json:"registrationNumber" example:"IT-2024-0042"`
	FirstName          string `json:"firstName" example:"Kojo"`
	LastName           string `json:"lastName" example:"Owusu"`
	Email              string `json:"email" example:"kojo@student.edu"`
	AreaID             *int64 `json:"areaId,omitempty" example:"2"`
}

// NewStudentSummary flattens a student and its user record
func NewStudentSummary(st *models.Student) StudentSummary {
	out := StudentSummary{
		StudentID:          st.ID,
		RegistrationNumber: st.RegistrationNumber,
		AreaID:             st.AreaID,
	}
	if st.User != nil {
		out.FirstName = st.User.FirstName
		out.LastName = st.User.LastName
		out.Email = st.User.Email
	}
	return out
}
