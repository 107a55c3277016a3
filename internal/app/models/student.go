package models

import (
	"time"

	"github.com/yigit/supervision/internal/pkg/geo"
)

// Student defines the student model based on the 'students' table
type Student struct {
	ID                   int64           `json:"id" db:"id" example:"1"`
	UserID               int64           `json:"userId" db:"user_id" example:"5"`
	RegistrationNumber   string          `json:"registrationNumber" db:"registration_number" example:"IT-2024-0042"`
	ZoneID               int64           `json:"zoneId" db:"zone_id" example:"1"`
	AreaID               *int64          `json:"areaId,omitempty" db:"area_id"`
	AssignedSupervisorID *int64          `json:"assignedSupervisorId,omitempty" db:"assigned_supervisor_id"`
	CurrentLocation      *geo.Coordinate `json:"currentLocation,omitempty"`
	LocationUpdatedAt    *time.Time      `json:"locationUpdatedAt,omitempty" db:"location_updated_at"`

	User *User `json:"user,omitempty"`
}

// IsAssigned reports whether the student has a supervisor
func (s *Student) IsAssigned() bool {
	return s.AssignedSupervisorID != nil
}
