package dto

import (
	"time"

	"github.com/yigit/supervision/internal/app/models"
)

// SupervisorProfile is the signed-in supervisor's own record
type SupervisorProfile struct {
	SupervisorID int64     `json:"supervisorId" example:"3"`
	UserID       int64     `json:"userId" example:"8"`
	Email        string    `json:"email" example:"ama@school.edu"`
	FirstName    string    `json:"firstName" example:"Ama"`
	LastName     string    `json:"lastName" example:"Mensah"`
	Position     string    `json:"position" example:"Senior Lecturer"`
	ZoneID       int64     `json:"zoneId" example:"1"`
	AreaID       *int64    `json:"areaId,omitempty" example:"2"`
	StudentCount int       `json:"studentCount" example:"10"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSupervisorProfile combines a supervisor with its user record
func NewSupervisorProfile(s *models.Supervisor, u *models.User) SupervisorProfile {
	p := SupervisorProfile{
		SupervisorID: s.ID,
		UserID:       s.UserID,
		Position:     s.Position,
		ZoneID:       s.ZoneID,
		AreaID:       s.AreaID,
		StudentCount: len(s.AssignedStudents),
		CreatedAt:    s.CreatedAt,
	}
	if u != nil {
		p.Email = u.Email
		p.FirstName = u.FirstName
		p.LastName = u.LastName
	}
	return p
}

// UpdateProfileRequest changes any subset of name and position. Omitted
// fields keep their current value.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,notblank,max=100" example:"Ama"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,notblank,max=100" example:"Mensah"`
	Position  *string `json:"position,omitempty" binding:"omitempty,max=100" example:"Senior Lecturer"`
}
